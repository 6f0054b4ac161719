package echo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blackwell-systems/outcome"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type task struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func newEcho() *echo.Echo {
	h := outcome.NewExceptionHandler(nil, false)
	e := echo.New()
	e.Use(Trace, Recover)
	e.HTTPErrorHandler = HTTPErrorHandler(h)
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestTrace(t *testing.T) {
	e := newEcho()

	e.GET("/test", func(c echo.Context) error {
		if outcome.TraceIDFromRequest(c.Request()) == "" {
			t.Error("expected trace ID to be set")
		}
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestTraceWithExistingHeader(t *testing.T) {
	e := newEcho()

	existingTraceID := "existing-trace-id-123"

	e.GET("/test", func(c echo.Context) error {
		if traceID := outcome.TraceIDFromRequest(c.Request()); traceID != existingTraceID {
			t.Errorf("expected trace ID %s, got %s", existingTraceID, traceID)
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(outcome.HeaderTraceID, existingTraceID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRespond(t *testing.T) {
	e := newEcho()

	e.GET("/tasks/:id", func(c echo.Context) error {
		return Respond(c, outcome.Ok(task{ID: 1, Title: "Call Ada"}))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/tasks/1", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if response := decode(t, rec); response["title"] != "Call Ada" {
		t.Errorf("expected title 'Call Ada', got %v", response["title"])
	}
}

func TestRespondFailure(t *testing.T) {
	e := newEcho()

	e.GET("/tasks/:id", func(c echo.Context) error {
		return Respond(c, outcome.Fail[task](outcome.NewError("Task.NotFound", "The task was not found")))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/tasks/9", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	response := decode(t, rec)
	if response["errorCode"] != "Task.NotFound" {
		t.Errorf("expected errorCode Task.NotFound, got %v", response["errorCode"])
	}
}

func TestCreatedAndNoContent(t *testing.T) {
	e := newEcho()

	e.POST("/tasks", func(c echo.Context) error {
		return Created(c, outcome.Ok(task{ID: 2, Title: "Send deck"}), "/tasks/2")
	})
	e.DELETE("/tasks/:id", func(c echo.Context) error {
		return NoContent(c, outcome.Success())
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("POST", "/tasks", nil))
	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/tasks/2" {
		t.Errorf("expected Location /tasks/2, got %s", loc)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("DELETE", "/tasks/2", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestHTTPErrorHandlerEscapedError(t *testing.T) {
	e := newEcho()

	e.GET("/tasks/:id", func(c echo.Context) error {
		return fmt.Errorf("task %s: %w", c.Param("id"), outcome.ErrNotFound)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/tasks/9", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != outcome.ContentTypeProblem {
		t.Errorf("expected Content-Type %s, got %s", outcome.ContentTypeProblem, ct)
	}
	response := decode(t, rec)
	if response["detail"] != "The requested resource was not found" {
		t.Errorf("expected generic detail, got %v", response["detail"])
	}
}

func TestHTTPErrorHandlerEchoError(t *testing.T) {
	e := newEcho()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/nowhere", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	response := decode(t, rec)
	if response["title"] != "Not Found" {
		t.Errorf("expected title 'Not Found', got %v", response["title"])
	}
	if response["instance"] != "/nowhere" {
		t.Errorf("expected instance /nowhere, got %v", response["instance"])
	}
}

func TestRecover(t *testing.T) {
	e := newEcho()

	e.GET("/panic", func(c echo.Context) error {
		panic(outcome.ErrPermission)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/panic", nil))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestHTTPErrorHandlerAfterCommit(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := echo.New()
	e.Use(Trace, Recover)
	e.HTTPErrorHandler = HTTPErrorHandler(outcome.NewExceptionHandler(zap.New(core), false))

	e.GET("/tasks", func(c echo.Context) error {
		if err := c.String(http.StatusOK, "partial"); err != nil {
			return err
		}
		return outcome.ErrInvalidOperation
	})

	rec := httptest.NewRecorder()
	func() {
		defer func() {
			if v := recover(); v != http.ErrAbortHandler {
				t.Errorf("expected ErrAbortHandler, got %v", v)
			}
		}()
		e.ServeHTTP(rec, httptest.NewRequest("GET", "/tasks", nil))
	}()

	if body := rec.Body.String(); body != "partial" {
		t.Errorf("expected body to be left as written, got %s", body)
	}
	if logs.Len() != 1 {
		t.Errorf("expected 1 log entry, got %d", logs.Len())
	}
}

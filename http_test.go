package outcome

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type deal struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/deals/1", nil)

	WriteOK(w, r, Ok(deal{ID: 1, Name: "Acme renewal"}))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var got deal
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got != (deal{ID: 1, Name: "Acme renewal"}) {
		t.Errorf("expected the value as body, got %+v", got)
	}
}

func TestWriteNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("DELETE", "/deals/1", nil)

	WriteNoContent(w, r, Success())

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if w.Body.Len() != 0 {
		t.Error("expected empty body for 204")
	}
}

func TestWriteResult(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/deals/1/archive", nil)

	WriteResult(w, r, Success())

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Body.Len() != 0 {
		t.Error("expected empty body")
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/deals", nil)

	WriteCreated(w, r, Ok(deal{ID: 7, Name: "New"}), "/deals/7")

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/deals/7" {
		t.Errorf("expected Location /deals/7, got %s", loc)
	}

	var got deal
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("expected id 7, got %d", got.ID)
	}
}

func TestWriteFailures(t *testing.T) {
	failure := NewError("Pipeline.CannotChangeStage", "The stage cannot be changed")

	tests := []struct {
		name  string
		write func(w http.ResponseWriter, r *http.Request)
	}{
		{"WriteOK", func(w http.ResponseWriter, r *http.Request) { WriteOK(w, r, Fail[deal](failure)) }},
		{"WriteCreated", func(w http.ResponseWriter, r *http.Request) {
			WriteCreated(w, r, Fail[deal](failure), "/deals/1")
		}},
		{"WriteNoContent", func(w http.ResponseWriter, r *http.Request) { WriteNoContent(w, r, Failure(failure)) }},
		{"WriteResult", func(w http.ResponseWriter, r *http.Request) { WriteResult(w, r, Failure(failure)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("PUT", "/pipelines/3", nil)
			r.Header.Set(HeaderTraceID, "trace-1")

			tt.write(w, r)

			if w.Code != http.StatusForbidden {
				t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != ContentTypeProblem {
				t.Errorf("expected Content-Type %s, got %s", ContentTypeProblem, ct)
			}
			if w.Header().Get("Location") != "" {
				t.Error("failure must not set Location")
			}
			if w.Header().Get(HeaderTraceID) != "trace-1" {
				t.Errorf("expected trace header trace-1, got %s", w.Header().Get(HeaderTraceID))
			}

			var p Problem
			if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if p.Title != "Forbidden" {
				t.Errorf("expected title Forbidden, got %s", p.Title)
			}
			if p.Type != TypeURI(http.StatusForbidden) {
				t.Errorf("expected type %s, got %s", TypeURI(http.StatusForbidden), p.Type)
			}
			if p.Detail != failure.Description {
				t.Errorf("expected detail %q, got %q", failure.Description, p.Detail)
			}
			if p.Instance != "/pipelines/3" {
				t.Errorf("expected instance /pipelines/3, got %s", p.Instance)
			}
			if p.ErrorCode() != failure.Code {
				t.Errorf("expected errorCode %s, got %s", failure.Code, p.ErrorCode())
			}
		})
	}
}

func TestWriteProblemTypeMatchesStatus(t *testing.T) {
	codes := []string{
		"Deal.NotFound",
		"Auth.InvalidCredentials",
		"Organization.NotOwner",
		"Contact.AlreadyExists",
		"Validation.Required",
	}
	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteProblem(w, httptest.NewRequest("GET", "/", nil), NewError(code, "x"))

			var p Problem
			if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if p.Status != w.Code {
				t.Errorf("body status %d does not match response status %d", p.Status, w.Code)
			}
			if p.Type != TypeURI(w.Code) {
				t.Errorf("expected type %s for %d, got %s", TypeURI(w.Code), w.Code, p.Type)
			}
		})
	}
}

func TestWriteProblemIsDeterministic(t *testing.T) {
	e := NewError("Contact.AlreadyExists", "A contact with this email already exists")

	write := func() string {
		w := httptest.NewRecorder()
		WriteProblem(w, httptest.NewRequest("POST", "/contacts", nil), e)
		return w.Body.String()
	}

	if a, b := write(), write(); a != b {
		t.Errorf("expected byte-identical bodies:\n%s\n%s", a, b)
	}
}

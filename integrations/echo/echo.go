// Package echo provides adapters for using outcome with Echo framework.
package echo

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/blackwell-systems/outcome"
	echofw "github.com/labstack/echo/v4"
)

// Trace adapts outcome trace middleware to Echo's middleware interface.
//
// This generates or propagates trace IDs and makes them available via
// outcome.TraceIDFromRequest(c.Request()).
//
// Example:
//
//	e := echo.New()
//	e.Use(Trace, Recover(h))
//	e.HTTPErrorHandler = HTTPErrorHandler(h)
func Trace(next echofw.HandlerFunc) echofw.HandlerFunc {
	return func(c echofw.Context) error {
		var err error
		handler := outcome.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Update context with traced request
			c.SetRequest(r)
			err = next(c)
		}))

		handler.ServeHTTP(c.Response(), c.Request())
		return err
	}
}

// Recover converts panics into errors that HTTPErrorHandler classifies,
// keeping the panicking goroutine's stack for development responses.
func Recover(next echofw.HandlerFunc) echofw.HandlerFunc {
	return func(c echofw.Context) (err error) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				err = &outcome.PanicError{Value: v, Stack: debug.Stack()}
			}
		}()
		return next(c)
	}
}

// HTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as problem details. Echo's own HTTP errors (unknown route, method
// not allowed, bind failures) keep their status; everything else goes
// through h. An error after the response was committed is logged and the
// connection aborted.
func HTTPErrorHandler(h *outcome.ExceptionHandler) echofw.HTTPErrorHandler {
	return func(err error, c echofw.Context) {
		if c.Response().Committed {
			h.Abandon(c.Request(), err)
		}

		var he *echofw.HTTPError
		if errors.As(err, &he) {
			p := outcome.NewProblem(he.Code, fmt.Sprint(he.Message)).WithInstance(c.Request().URL.Path)
			if id := outcome.TraceIDFromRequest(c.Request()); id != "" {
				p = p.With(outcome.ExtTraceID, id)
			}
			p.Write(c.Response())
			return
		}

		h.Handle(c.Response(), c.Request(), err)
	}
}

// Respond writes 200 with the value, or the problem for a failure.
//
// Example:
//
//	e.GET("/deals/:id", func(c echo.Context) error {
//	    return Respond(c, deals.Get(c.Request().Context(), c.Param("id")))
//	})
func Respond[T any](c echofw.Context, v outcome.Value[T]) error {
	outcome.WriteOK(c.Response(), c.Request(), v)
	return nil
}

// Created writes 201 with the value and a Location header.
func Created[T any](c echofw.Context, v outcome.Value[T], location string) error {
	outcome.WriteCreated(c.Response(), c.Request(), v, location)
	return nil
}

// NoContent writes 204, or the problem for a failure.
func NoContent(c echofw.Context, res outcome.Result) error {
	outcome.WriteNoContent(c.Response(), c.Request(), res)
	return nil
}

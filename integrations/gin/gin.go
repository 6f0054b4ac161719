// Package gin provides adapters for using outcome with Gin framework.
package gin

import (
	"net/http"
	"runtime/debug"

	"github.com/blackwell-systems/outcome"
	"github.com/gin-gonic/gin"
)

// Trace wires outcome trace ID middleware into Gin's middleware chain.
//
// This generates or propagates trace IDs and makes them available via
// outcome.TraceIDFromRequest(c.Request).
//
// Example:
//
//	r := gin.New()
//	r.Use(Trace(), Recovery(h))
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Wrap remaining chain with outcome trace middleware
		handler := outcome.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// Recovery turns panics raised further down the chain into problem
// responses written by h, and aborts the chain. When the handler had
// already written part of its response the connection is aborted instead.
func Recovery(h *outcome.ExceptionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				err := &outcome.PanicError{Value: v, Stack: debug.Stack()}
				if c.Writer.Written() {
					h.Abandon(c.Request, err)
				}
				h.Handle(c.Writer, c.Request, err)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// Respond writes 200 with the value, or the problem for a failure.
//
// Example:
//
//	r.GET("/deals/:id", func(c *gin.Context) {
//	    Respond(c, deals.Get(c.Request.Context(), c.Param("id")))
//	})
func Respond[T any](c *gin.Context, v outcome.Value[T]) {
	outcome.WriteOK(c.Writer, c.Request, v)
}

// Created writes 201 with the value and a Location header.
func Created[T any](c *gin.Context, v outcome.Value[T], location string) {
	outcome.WriteCreated(c.Writer, c.Request, v, location)
}

// NoContent writes 204, or the problem for a failure.
func NoContent(c *gin.Context, res outcome.Result) {
	outcome.WriteNoContent(c.Writer, c.Request, res)
}

// Error hands an escaped failure to h and aborts the chain.
func Error(c *gin.Context, h *outcome.ExceptionHandler, err error) {
	if c.Writer.Written() {
		h.Abandon(c.Request, err)
	}
	h.Handle(c.Writer, c.Request, err)
	c.Abort()
}

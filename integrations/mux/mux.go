// Package mux provides adapters for using outcome with gorilla/mux.
//
// gorilla/mux uses standard net/http handlers, so the middleware here are
// typed as mux.MiddlewareFunc for use with Router.Use.
package mux

import (
	"net/http"

	"github.com/blackwell-systems/outcome"
	"github.com/gorilla/mux"
)

var (
	// RouteNotFound is written for requests that match no route.
	RouteNotFound = outcome.NewError("Route.NotFound", "No route matches the requested path")

	// MethodNotAllowed is written when the path matches but the method does not.
	MethodNotAllowed = outcome.NewError("Route.MethodNotAllowed", "The method is not allowed for the requested path")
)

// Trace generates or propagates trace IDs.
//
// Example:
//
//	r := mux.NewRouter()
//	r.Use(Trace, Recover(h))
var Trace mux.MiddlewareFunc = outcome.TraceMiddleware

// Recover turns panics into problem responses through h.
func Recover(h *outcome.ExceptionHandler) mux.MiddlewareFunc {
	return h.Recover
}

// Install sets problem-details handlers for unmatched routes and methods.
// Router middleware does not run for these, so trace IDs are applied here.
func Install(r *mux.Router) {
	r.NotFoundHandler = outcome.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outcome.WriteProblem(w, r, RouteNotFound)
	}))
	r.MethodNotAllowedHandler = outcome.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := outcome.NewProblem(http.StatusMethodNotAllowed, MethodNotAllowed.Description).
			With(outcome.ExtErrorCode, MethodNotAllowed.Code).
			With(outcome.ExtTraceID, outcome.TraceIDFromRequest(r)).
			WithInstance(r.URL.Path)
		p.Write(w)
	}))
}

// Vars returns the route variables for r.
func Vars(r *http.Request) map[string]string {
	return mux.Vars(r)
}

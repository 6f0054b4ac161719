// Package chi provides thin adapters for using outcome with chi router.
//
// Chi uses standard net/http handlers, so outcome works directly.
// This package exists for discoverability and convenience.
package chi

import (
	"net/http"

	"github.com/blackwell-systems/outcome"
)

// RouteNotFound is written for requests that match no route.
var RouteNotFound = outcome.NewError("Route.NotFound", "No route matches the requested path")

// Trace is a convenience wrapper around outcome.TraceMiddleware
// that returns a standard net/http middleware for chi.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(chi.Trace)
func Trace(next http.Handler) http.Handler {
	return outcome.TraceMiddleware(next)
}

// Recoverer returns chi middleware that turns panics into problem
// responses through h.
//
// Example:
//
//	r.Use(chi.Trace, chi.Recoverer(h))
func Recoverer(h *outcome.ExceptionHandler) func(http.Handler) http.Handler {
	return h.Recover
}

// NotFound is a handler for chi's r.NotFound that answers with a
// problem-details 404 instead of plain text.
func NotFound(w http.ResponseWriter, r *http.Request) {
	outcome.WriteProblem(w, r, RouteNotFound)
}

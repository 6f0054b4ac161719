package outcome

import (
	"encoding/json"
	"net/http"
)

const (
	// HeaderTraceID is the standard header name for trace/request IDs.
	HeaderTraceID = "X-Request-Id"
)

// WriteProblem writes the problem-details response for a business error.
// The request path becomes the problem instance and the trace ID, when
// known, is echoed in the X-Request-Id header.
func WriteProblem(w http.ResponseWriter, r *http.Request, e Error) {
	p := ProblemFor(e)
	if r != nil {
		p = p.WithInstance(r.URL.Path)
	}
	if id := TraceIDFromRequest(r); id != "" {
		w.Header().Set(HeaderTraceID, id)
	}
	p.Write(w)
}

// WriteResult writes 200 with an empty body on success.
func WriteResult(w http.ResponseWriter, r *http.Request, res Result) {
	if res.IsFailure() {
		WriteProblem(w, r, res.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

// WriteNoContent writes 204 on success.
func WriteNoContent(w http.ResponseWriter, r *http.Request, res Result) {
	if res.IsFailure() {
		WriteProblem(w, r, res.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WriteOK writes 200 with the value as JSON on success.
func WriteOK[T any](w http.ResponseWriter, r *http.Request, v Value[T]) {
	if v.IsFailure() {
		WriteProblem(w, r, v.Error())
		return
	}
	writeJSON(w, http.StatusOK, v.Value())
}

// WriteCreated writes 201 with the value as JSON on success. A non-empty
// location is sent in the Location header.
func WriteCreated[T any](w http.ResponseWriter, r *http.Request, v Value[T], location string) {
	if v.IsFailure() {
		WriteProblem(w, r, v.Error())
		return
	}
	if location != "" {
		w.Header().Set("Location", location)
	}
	writeJSON(w, http.StatusCreated, v.Value())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

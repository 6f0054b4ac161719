package outcome

import (
	"errors"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// mapping is the response template for a failure kind.
type mapping struct {
	status int
	title  string
	detail string
}

var kindMappings = map[Kind]mapping{
	KindPermission:      {http.StatusForbidden, "Forbidden", "You are not authorized to perform this action"},
	KindInvalidState:    {http.StatusBadRequest, "Bad Request", "The request was invalid"},
	KindInvalidArgument: {http.StatusBadRequest, "Bad Request", "Invalid argument provided"},
	KindNotFound:        {http.StatusNotFound, "Not Found", "The requested resource was not found"},
	KindCancelled:       {StatusClientClosedRequest, "Request Cancelled", "The request was cancelled"},
	KindOther:           {http.StatusInternalServerError, "Server Error", "An unexpected error occurred"},
}

// ProblemForKind returns the generic problem for a failure kind.
func ProblemForKind(kind Kind) *Problem {
	m, ok := kindMappings[kind]
	if !ok {
		m = kindMappings[KindOther]
	}
	return &Problem{
		Type:   TypeURI(m.status),
		Title:  m.title,
		Status: m.status,
		Detail: m.detail,
	}
}

// ExceptionHandler turns failures that escaped the outcome path into
// problem responses. The zero value is usable: it logs nowhere and never
// exposes internals.
type ExceptionHandler struct {
	// Logger receives one error entry per handled failure.
	Logger *zap.Logger

	// Development replaces the generic detail with the raw error message
	// and adds an exception extension with type and stack trace.
	Development bool

	// Classifiers recognize library-specific errors before the built-in
	// sentinels are consulted.
	Classifiers []Classifier
}

// NewExceptionHandler creates an ExceptionHandler.
func NewExceptionHandler(logger *zap.Logger, development bool, classifiers ...Classifier) *ExceptionHandler {
	return &ExceptionHandler{Logger: logger, Development: development, Classifiers: classifiers}
}

func (h *ExceptionHandler) logger() *zap.Logger {
	if h == nil || h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// ProblemFor builds the problem for an escaped failure without writing it.
// A nil err yields the generic server error.
func (h *ExceptionHandler) ProblemFor(r *http.Request, err error) *Problem {
	var classifiers []Classifier
	dev := false
	if h != nil {
		classifiers = h.Classifiers
		dev = h.Development
	}

	p := ProblemForKind(Classify(err, classifiers...))
	if r != nil {
		p.Instance = r.URL.Path
	}
	traceID := TraceIDFromRequest(r)
	if traceID == "" {
		traceID = NewTraceID()
	}
	p = p.With(ExtTraceID, traceID)

	if dev && err != nil {
		p.Detail = err.Error()
		p = p.With(ExtException, describe(err))
	}
	return p
}

// Handle logs err and writes the matching problem response. A business
// Error that travelled as a Go error keeps its code and goes through
// WriteProblem instead, unless a panic or an explicit Kinder sits above it.
//
// When w comes from Recover or Handler and the response has already
// started, nothing more is written: the failure is passed to Abandon.
func (h *ExceptionHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	if tw, ok := w.(*trackingWriter); ok && tw.wrote {
		h.Abandon(r, err)
	}

	if be, ok := businessError(err); ok {
		WriteProblem(w, r, be)
		return
	}

	p := h.ProblemFor(r, err)
	traceID, _ := p.Extensions[ExtTraceID].(string)
	h.log("unhandled exception occurred", r, err, p.Status, traceID)

	w.Header().Set(HeaderTraceID, traceID)
	p.Write(w)
}

// Abandon logs a failure that happened after the response started and
// panics with http.ErrAbortHandler so net/http drops the connection
// instead of sending a truncated body as if it were complete.
func (h *ExceptionHandler) Abandon(r *http.Request, err error) {
	p := h.ProblemFor(r, err)
	traceID, _ := p.Extensions[ExtTraceID].(string)
	h.log("unhandled exception after response started", r, err, p.Status, traceID)
	panic(http.ErrAbortHandler)
}

func (h *ExceptionHandler) log(msg string, r *http.Request, err error, status int, traceID string) {
	fields := []zap.Field{
		zap.String(ExtTraceID, traceID),
		zap.Int("statusCode", status),
		zap.Error(err),
	}
	if r != nil {
		fields = append(fields, zap.String("path", r.URL.Path), zap.String("method", r.Method))
	}
	h.logger().Error(msg, fields...)
}

// businessError finds an Error in err's chain that was not escalated by a
// panic or by an explicit kind.
func businessError(err error) (Error, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return None, false
	}
	var k Kinder
	if errors.As(err, &k) {
		return None, false
	}
	var be Error
	if errors.As(err, &be) && !be.IsNone() {
		return be, true
	}
	return None, false
}

// Recover returns middleware that converts panics in next into problem
// responses. http.ErrAbortHandler is re-panicked so net/http can abort
// the connection as usual; so is a panic after the response started.
func (h *ExceptionHandler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: w}
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				h.Handle(tw, r, &PanicError{Value: v, Stack: debug.Stack()})
			}
		}()
		next.ServeHTTP(tw, r)
	})
}

// trackingWriter records whether the response has started.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(status int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *trackingWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		w.wrote = true
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *trackingWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// HandlerFunc is an http handler that may return an escaped failure.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts fn to http.Handler. Returned errors and panics both end
// up in Handle.
func (h *ExceptionHandler) Handler(fn HandlerFunc) http.Handler {
	return h.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Handle(w, r, err)
		}
	}))
}

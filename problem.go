package outcome

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ContentTypeProblem is the media type of every non-2xx body.
const ContentTypeProblem = "application/problem+json"

// Extension member names.
const (
	ExtErrorCode = "errorCode"
	ExtTraceID   = "traceId"
	ExtException = "exception"
)

// Problem is an RFC 7807 problem-details document. Extensions are
// serialized as top-level members next to the standard ones.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]any `json:"-"`
}

// ExceptionInfo is the development-only description of an escaped failure.
type ExceptionInfo struct {
	Type       string   `json:"type"`
	Message    string   `json:"message"`
	StackTrace []string `json:"stackTrace,omitempty"`
}

// NewProblem builds a Problem whose title and type derive from status.
func NewProblem(status int, detail string) *Problem {
	return &Problem{
		Type:   TypeURI(status),
		Title:  Title(status),
		Status: status,
		Detail: detail,
	}
}

// ProblemFor translates a business error into a Problem. The status comes
// from StatusFor and the code is kept in the errorCode extension.
func ProblemFor(e Error) *Problem {
	return NewProblem(StatusFor(e.Code), e.Description).With(ExtErrorCode, e.Code)
}

// With returns a copy of p with the extension member set.
func (p *Problem) With(key string, value any) *Problem {
	cp := *p
	cp.Extensions = make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		cp.Extensions[k] = v
	}
	cp.Extensions[key] = value
	return &cp
}

// WithInstance returns a copy of p with the instance reference set.
func (p *Problem) WithInstance(instance string) *Problem {
	cp := *p
	cp.Instance = instance
	return &cp
}

// ErrorCode returns the errorCode extension, if any.
func (p *Problem) ErrorCode() string {
	s, _ := p.Extensions[ExtErrorCode].(string)
	return s
}

var reservedMembers = map[string]bool{
	"type": true, "title": true, "status": true, "detail": true, "instance": true,
}

// MarshalJSON flattens extensions into the document. Standard members come
// first; extensions follow in key order, so equal problems encode to equal
// bytes.
func (p Problem) MarshalJSON() ([]byte, error) {
	type plain Problem
	base, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}

	ext := make(map[string]any, len(p.Extensions))
	for k, v := range p.Extensions {
		if !reservedMembers[k] {
			ext[k] = v
		}
	}
	if len(ext) == 0 {
		return base, nil
	}

	extra, err := json.Marshal(ext)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	buf.WriteByte(',')
	buf.Write(extra[1:])
	return buf.Bytes(), nil
}

// UnmarshalJSON collects unknown members into Extensions.
func (p *Problem) UnmarshalJSON(data []byte) error {
	type plain Problem
	var std plain
	if err := json.Unmarshal(data, &std); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	*p = Problem(std)
	for k, v := range all {
		if reservedMembers[k] {
			continue
		}
		if p.Extensions == nil {
			p.Extensions = make(map[string]any)
		}
		p.Extensions[k] = v
	}
	return nil
}

// Write renders p as the response, using p.Status as the HTTP status.
func (p *Problem) Write(w http.ResponseWriter) {
	status := p.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", ContentTypeProblem)
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(p)
}

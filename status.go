package outcome

import (
	"net/http"
	"slices"
	"strings"
)

// StatusClientClosedRequest is the non-standard status used when the client
// went away before the response was written.
const StatusClientClosedRequest = 499

// rule maps error codes accepted by match to an HTTP status.
type rule struct {
	match  func(code string) bool
	status int
}

// statusRules is evaluated in order; the first match wins. The order is
// part of the contract: do not sort or regroup.
var statusRules = []rule{
	{suffix(".NotFound"), http.StatusNotFound},
	{exact(
		CodeAuthInvalidCredentials,
		CodeAuthEmailNotFound,
		CodeAuthInvalidTwoFactorCode,
		CodeAuthAccountLocked,
		CodeGeneralUnauthorized,
	), http.StatusUnauthorized},
	{anyOf(
		contains("NotOwner", "NotMember", "CannotRemove", "CannotChange", "CannotAssign"),
		exact(CodeGeneralForbidden, CodeTemplateNotOwned, CodeTemplateCannotModifySystem),
	), http.StatusForbidden},
	{anyOf(
		contains(
			"Duplicate",
			"AlreadyExists",
			"AlreadyMember",
			"AlreadyConverted",
			"AlreadyAccepted",
			"AlreadyArchived",
			"AlreadyPending",
			"AlreadyProcessed",
		),
		exact(CodeConflict),
	), http.StatusConflict},
}

// StatusFor resolves the HTTP status for an error code. Codes matching no
// convention fall back to 400.
func StatusFor(code string) int {
	for _, r := range statusRules {
		if r.match(code) {
			return r.status
		}
	}
	return http.StatusBadRequest
}

// Title returns the problem title for a status code.
func Title(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusMethodNotAllowed:
		return "Method Not Allowed"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusInternalServerError:
		return "Server Error"
	default:
		return "Error"
	}
}

// TypeURI returns the problem type reference for a status code.
// Unknown statuses share the 500 reference.
func TypeURI(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "https://tools.ietf.org/html/rfc7231#section-6.5.1"
	case http.StatusUnauthorized:
		return "https://tools.ietf.org/html/rfc7235#section-3.1"
	case http.StatusForbidden:
		return "https://tools.ietf.org/html/rfc7231#section-6.5.3"
	case http.StatusNotFound:
		return "https://tools.ietf.org/html/rfc7231#section-6.5.4"
	case http.StatusMethodNotAllowed:
		return "https://tools.ietf.org/html/rfc7231#section-6.5.5"
	case http.StatusConflict:
		return "https://tools.ietf.org/html/rfc7231#section-6.5.8"
	default:
		return "https://tools.ietf.org/html/rfc7231#section-6.6.1"
	}
}

func suffix(s string) func(string) bool {
	return func(code string) bool { return strings.HasSuffix(code, s) }
}

func exact(codes ...string) func(string) bool {
	return func(code string) bool { return slices.Contains(codes, code) }
}

func contains(parts ...string) func(string) bool {
	return func(code string) bool {
		for _, p := range parts {
			if strings.Contains(code, p) {
				return true
			}
		}
		return false
	}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(code string) bool {
		for _, p := range preds {
			if p(code) {
				return true
			}
		}
		return false
	}
}

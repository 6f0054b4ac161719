package outcome

// Well-known error codes. Codes are open-ended; any collaborator may add
// its own as long as it follows the suffix and substring conventions the
// status table relies on.
const (
	// Generic
	CodeNullValue    = "Error.NullValue"
	CodeNotFound     = "Error.NotFound"
	CodeUnauthorized = "Error.Unauthorized"
	CodeConflict     = "Error.Conflict"
	CodeException    = "Error.Exception"

	// Authentication
	CodeAuthInvalidCredentials   = "Auth.InvalidCredentials"
	CodeAuthEmailNotFound        = "Auth.EmailNotFound"
	CodeAuthInvalidTwoFactorCode = "Auth.InvalidTwoFactorCode"
	CodeAuthAccountLocked        = "Auth.AccountLocked"

	// Shared
	CodeGeneralUnauthorized = "General.Unauthorized"
	CodeGeneralForbidden    = "General.Forbidden"

	// Templates
	CodeTemplateNotOwned           = "Template.NotOwned"
	CodeTemplateCannotModifySystem = "Template.CannotModifySystem"
)

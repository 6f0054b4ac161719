// Package crmerr is the catalog of business errors raised by the CRM
// services. Every code follows the naming conventions outcome.StatusFor
// relies on, so the HTTP status of each entry is implied by its name.
package crmerr

import (
	"github.com/blackwell-systems/outcome"
)

var e = outcome.NewError

// Contacts
var (
	ContactNotFound        = e("Contact.NotFound", "The contact was not found")
	ContactNameRequired    = e("Contact.NameRequired", "Contact name is required")
	ContactEmailRequired   = e("Contact.EmailRequired", "Contact email is required")
	ContactEmailInvalid    = e("Contact.EmailInvalid", "The email format is invalid")
	ContactDuplicateEmail  = e("Contact.DuplicateEmail", "A contact with this email already exists")
	ContactAlreadyArchived = e("Contact.AlreadyArchived", "The contact is already archived")
	ContactNotArchived     = e("Contact.NotArchived", "The contact is not archived")
	ContactDoNotContact    = e("Contact.DoNotContact", "This contact is marked as Do Not Contact. Remove the flag before performing this action.")
)

// DuplicateEmailWithValue reports a duplicate contact email, naming it.
func DuplicateEmailWithValue(email string) outcome.Error {
	return outcome.Errorf("Contact.DuplicateEmail", "A contact with email '%s' already exists", email)
}

// Companies
var (
	CompanyNotFound      = e("Company.NotFound", "The company was not found")
	CompanyNameRequired  = e("Company.NameRequired", "Company name is required")
	CompanyDuplicateName = e("Company.DuplicateName", "A company with this name already exists")
	CompanyDomainInvalid = e("Company.DomainInvalid", "The domain format is invalid")
)

// Leads
var (
	LeadNotFound         = e("Lead.NotFound", "The lead was not found")
	LeadNameRequired     = e("Lead.NameRequired", "Lead name is required")
	LeadEmailRequired    = e("Lead.EmailRequired", "Lead email is required")
	LeadEmailInvalid     = e("Lead.EmailInvalid", "The email format is invalid")
	LeadAlreadyConverted = e("Lead.AlreadyConverted", "This lead has already been converted")
	LeadInvalidStatus    = e("Lead.InvalidStatus", "The lead status is invalid")
	LeadInvalidSource    = e("Lead.InvalidSource", "The lead source is invalid")
)

// Deals
var (
	DealNotFound         = e("Deal.NotFound", "The deal was not found")
	DealNameRequired     = e("Deal.NameRequired", "Deal name is required")
	DealValueRequired    = e("Deal.ValueRequired", "Deal value is required")
	DealValueInvalid     = e("Deal.ValueInvalid", "The deal value must be a valid number")
	DealInvalidStage     = e("Deal.InvalidStage", "The deal stage is invalid")
	DealPipelineNotFound = e("Deal.PipelineNotFound", "The specified pipeline was not found")
	DealAlreadyArchived  = e("Deal.AlreadyArchived", "The deal is already archived")
	DealDuplicateName    = e("Deal.DuplicateName", "A deal with this name already exists")
)

// Tasks
var (
	TaskNotFound         = e("Task.NotFound", "The task was not found")
	TaskTitleRequired    = e("Task.TitleRequired", "Task title is required")
	TaskInvalidStatus    = e("Task.InvalidStatus", "The task status is invalid")
	TaskInvalidPriority  = e("Task.InvalidPriority", "The task priority is invalid")
	TaskDueDateInPast    = e("Task.DueDateInPast", "The due date cannot be in the past")
	TaskAlreadyCompleted = e("Task.AlreadyCompleted", "The task is already completed")
)

// Activities
var (
	ActivityNotFound              = e("Activity.NotFound", "The activity was not found")
	ActivityTypeRequired          = e("Activity.TypeRequired", "Activity type is required")
	ActivityInvalidType           = e("Activity.InvalidType", "The activity type is invalid. Valid types: call, meeting, email, note, task, follow_up, deadline, video, demo")
	ActivityNoRelatedEntity       = e("Activity.NoRelatedEntity", "Activity must be linked to at least one entity (contact, deal, or lead)")
	ActivityRelatedEntityNotFound = e("Activity.RelatedEntityNotFound", "The related entity was not found")
)

// Templates
var (
	TemplateNotFound           = e("Template.NotFound", "The template was not found")
	TemplateTitleRequired      = e("Template.TitleRequired", "Template title is required")
	TemplateContentRequired    = e("Template.ContentRequired", "Template content is required")
	TemplateNotOwned           = e(outcome.CodeTemplateNotOwned, "You do not own this template")
	TemplateCannotModifySystem = e(outcome.CodeTemplateCannotModifySystem, "System templates cannot be modified")
)

// Authentication
var (
	AuthInvalidCredentials   = e(outcome.CodeAuthInvalidCredentials, "Invalid email or password")
	AuthEmailNotFound        = e(outcome.CodeAuthEmailNotFound, "No account found with this email")
	AuthEmailAlreadyExists   = e("Auth.EmailAlreadyExists", "An account with this email already exists")
	AuthInvalidTwoFactorCode = e(outcome.CodeAuthInvalidTwoFactorCode, "The two-factor authentication code is invalid")
	AuthTwoFactorRequired    = e("Auth.TwoFactorRequired", "Two-factor authentication is required")
	AuthPasswordTooWeak      = e("Auth.PasswordTooWeak", "The password does not meet security requirements")
	AuthAccountLocked        = e(outcome.CodeAuthAccountLocked, "The account has been locked due to too many failed attempts")
)

// Organizations
var (
	OrganizationNotFound          = e("Organization.NotFound", "The organization was not found")
	OrganizationNameRequired      = e("Organization.NameRequired", "Organization name is required")
	OrganizationNotMember         = e("Organization.NotMember", "You are not a member of this organization")
	OrganizationNotOwner          = e("Organization.NotOwner", "Only the organization owner can perform this action")
	OrganizationNotOwnerOrManager = e("Organization.NotOwnerOrManager", "Only the owner or a manager can perform this action")
	OrganizationAlreadyMember     = e("Organization.AlreadyMember", "This user is already a member of the organization")
	OrganizationCannotRemoveOwner = e("Organization.CannotRemoveOwner", "The organization owner cannot be removed")
)

// Invites
var (
	InviteNotFound        = e("Invite.NotFound", "The invite was not found")
	InviteExpired         = e("Invite.Expired", "The invite has expired")
	InviteAlreadyAccepted = e("Invite.AlreadyAccepted", "The invite has already been accepted")
	InviteEmailMismatch   = e("Invite.EmailMismatch", "The invite was sent to a different email address")
	InviteInvalidToken    = e("Invite.InvalidToken", "The invite token is invalid")
)

// Pipelines and stages
var (
	PipelineNotFound          = e("Pipeline.NotFound", "The pipeline was not found")
	PipelineNameRequired      = e("Pipeline.NameRequired", "Pipeline name is required")
	PipelineHasDeals          = e("Pipeline.HasDeals", "Cannot delete pipeline with existing deals")
	PipelineCannotChangeStage = e("Pipeline.CannotChangeStage", "The stage of this pipeline cannot be changed")
	DealStageNotFound         = e("DealStage.NotFound", "The deal stage was not found")
	DealStageNameRequired     = e("DealStage.NameRequired", "Deal stage name is required")
)

// Join requests
var (
	JoinRequestNotFound         = e("JoinRequest.NotFound", "The join request was not found")
	JoinRequestAlreadyProcessed = e("JoinRequest.AlreadyProcessed", "The join request has already been processed")
	JoinRequestAlreadyPending   = e("JoinRequest.AlreadyPending", "A pending join request already exists for this user")
)

// Lead sources and statuses
var (
	LeadSourceNotFound     = e("LeadSource.NotFound", "The lead source was not found")
	LeadSourceNameRequired = e("LeadSource.NameRequired", "Lead source name is required")
	LeadStatusNotFound     = e("LeadStatus.NotFound", "The lead status was not found")
	LeadStatusNameRequired = e("LeadStatus.NameRequired", "Lead status name is required")
)

// Shared
var (
	GeneralUnauthorized         = e(outcome.CodeGeneralUnauthorized, "You are not authorized to perform this action")
	GeneralForbidden            = e(outcome.CodeGeneralForbidden, "Access to this resource is forbidden")
	GeneralServerError          = e("General.ServerError", "An unexpected error occurred")
	GeneralInvalidRequest       = e("General.InvalidRequest", "The request is invalid")
	GeneralValidationError      = e("General.ValidationError", "One or more validation errors occurred")
	GeneralOrganizationRequired = e("General.OrganizationRequired", "X-Organization-Id header is required")
)

// All lists every catalog entry, in declaration order.
func All() []outcome.Error {
	return []outcome.Error{
		ContactNotFound, ContactNameRequired, ContactEmailRequired, ContactEmailInvalid,
		ContactDuplicateEmail, ContactAlreadyArchived, ContactNotArchived, ContactDoNotContact,
		CompanyNotFound, CompanyNameRequired, CompanyDuplicateName, CompanyDomainInvalid,
		LeadNotFound, LeadNameRequired, LeadEmailRequired, LeadEmailInvalid,
		LeadAlreadyConverted, LeadInvalidStatus, LeadInvalidSource,
		DealNotFound, DealNameRequired, DealValueRequired, DealValueInvalid,
		DealInvalidStage, DealPipelineNotFound, DealAlreadyArchived, DealDuplicateName,
		TaskNotFound, TaskTitleRequired, TaskInvalidStatus, TaskInvalidPriority,
		TaskDueDateInPast, TaskAlreadyCompleted,
		ActivityNotFound, ActivityTypeRequired, ActivityInvalidType,
		ActivityNoRelatedEntity, ActivityRelatedEntityNotFound,
		TemplateNotFound, TemplateTitleRequired, TemplateContentRequired,
		TemplateNotOwned, TemplateCannotModifySystem,
		AuthInvalidCredentials, AuthEmailNotFound, AuthEmailAlreadyExists,
		AuthInvalidTwoFactorCode, AuthTwoFactorRequired, AuthPasswordTooWeak, AuthAccountLocked,
		OrganizationNotFound, OrganizationNameRequired, OrganizationNotMember, OrganizationNotOwner,
		OrganizationNotOwnerOrManager, OrganizationAlreadyMember, OrganizationCannotRemoveOwner,
		InviteNotFound, InviteExpired, InviteAlreadyAccepted, InviteEmailMismatch, InviteInvalidToken,
		PipelineNotFound, PipelineNameRequired, PipelineHasDeals, PipelineCannotChangeStage,
		DealStageNotFound, DealStageNameRequired,
		JoinRequestNotFound, JoinRequestAlreadyProcessed, JoinRequestAlreadyPending,
		LeadSourceNotFound, LeadSourceNameRequired, LeadStatusNotFound, LeadStatusNameRequired,
		GeneralUnauthorized, GeneralForbidden, GeneralServerError, GeneralInvalidRequest,
		GeneralValidationError, GeneralOrganizationRequired,
	}
}

// Package pgx maps PostgreSQL errors reported by jackc/pgx onto outcome
// errors and failure kinds.
//
// Constraint violations are business failures: the caller sent something
// the schema rejects, and the client can act on it. They become outcome
// errors named after the entity. Everything else stays a Go error and is
// left to the exception handler, where Classifier gives it a kind.
package pgx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/outcome"
	pgxfw "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes recognized by this package.
const (
	CodeNotNullViolation      = "23502"
	CodeForeignKeyViolation   = "23503"
	CodeUniqueViolation       = "23505"
	CodeCheckViolation        = "23514"
	CodeInsufficientPrivilege = "42501"
	CodeQueryCanceled         = "57014"
)

// Classifier recognizes pgx errors for outcome.ExceptionHandler.
//
// Example:
//
//	h := outcome.NewExceptionHandler(logger, false, pgx.Classifier)
func Classifier(err error) (outcome.Kind, bool) {
	if errors.Is(err, pgxfw.ErrNoRows) {
		return outcome.KindNotFound, true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return outcome.KindOther, false
	}
	switch {
	case pgErr.Code == CodeInsufficientPrivilege:
		return outcome.KindPermission, true
	case pgErr.Code == CodeQueryCanceled:
		return outcome.KindCancelled, true
	case strings.HasPrefix(pgErr.Code, "23"):
		return outcome.KindInvalidArgument, true
	}
	return outcome.KindOther, false
}

// Translate converts a constraint violation into an outcome error for
// entity, e.g. "Deal" yields "Deal.Duplicate" for a unique violation.
// It reports false for anything that is not a constraint violation.
func Translate(err error, entity string) (outcome.Error, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return outcome.None, false
	}

	name := strings.ToLower(entity)
	switch pgErr.Code {
	case CodeUniqueViolation:
		return outcome.NewError(entity+".Duplicate", fmt.Sprintf("A %s with the same values already exists", name)), true
	case CodeForeignKeyViolation:
		return outcome.NewError(entity+".InvalidReference", fmt.Sprintf("The %s references a record that does not exist", name)), true
	case CodeCheckViolation, CodeNotNullViolation:
		return outcome.NewError(entity+".Invalid", fmt.Sprintf("The %s is invalid", name)), true
	}
	return outcome.None, false
}

// Mapper translates the errors of one entity's queries.
//
// Example:
//
//	var deals = pgx.Mapper{
//	    Entity:      "Deal",
//	    NotFound:    crmerr.DealNotFound,
//	    Constraints: map[string]outcome.Error{"deals_name_key": crmerr.DealDuplicateName},
//	}
type Mapper struct {
	// Entity prefixes generic constraint errors, e.g. "Deal.Duplicate".
	Entity string

	// NotFound is reported for pgx.ErrNoRows and for statements that
	// affect no rows. None disables the latter.
	NotFound outcome.Error

	// Constraints maps constraint names to specific errors and takes
	// precedence over the generic translation.
	Constraints map[string]outcome.Error
}

// Translate converts a constraint violation into an outcome error.
func (m Mapper) Translate(err error) (outcome.Error, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		if e, ok := m.Constraints[pgErr.ConstraintName]; ok {
			return e, true
		}
	}
	return Translate(err, m.Entity)
}

// Row lifts the result of a single-row query. pgx.ErrNoRows becomes
// m.NotFound and constraint violations become entity errors; any other
// error is returned for the exception handler.
func Row[T any](m Mapper, v T, err error) (outcome.Value[T], error) {
	if err == nil {
		return outcome.Ok(v), nil
	}
	if errors.Is(err, pgxfw.ErrNoRows) && !m.NotFound.IsNone() {
		return outcome.Fail[T](m.NotFound), nil
	}
	if e, ok := m.Translate(err); ok {
		return outcome.Fail[T](e), nil
	}
	return outcome.Value[T]{}, err
}

// Exec lifts the result of a statement that returns no rows. A command
// that affected nothing fails with m.NotFound when it is set.
func (m Mapper) Exec(tag pgconn.CommandTag, err error) (outcome.Result, error) {
	if err != nil {
		if e, ok := m.Translate(err); ok {
			return outcome.Failure(e), nil
		}
		return outcome.Result{}, err
	}
	if tag.RowsAffected() == 0 && !m.NotFound.IsNone() {
		return outcome.Failure(m.NotFound), nil
	}
	return outcome.Success(), nil
}

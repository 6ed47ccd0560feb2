package cli

import (
	"errors"
	"fmt"

	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/shellquote"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	ErrConfigInvalid   = "CONFIG_INVALID"
	ErrEntityExists    = "ENTITY_EXISTS"
	ErrEntityNotFound  = "ENTITY_NOT_FOUND"
	ErrRefInvalid      = "REF_INVALID"
	ErrFileReadError   = "FILE_READ_ERROR"
	ErrFileWriteError  = "FILE_WRITE_ERROR"
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"
	ErrInternal        = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnStructuredSkipped = "STRUCTURED_WRITE_SKIPPED"
	WarnEntityDisabled    = "ENTITY_DISABLED"
)

// classifyError maps an error to a stable code, a suggestion and optional details.
func classifyError(err error) (code, suggestion string, details interface{}) {
	var (
		exists   *errs.AlreadyExistsError
		notFound *errs.NotFoundError
		badRef   *errs.InvalidReferenceError
		badName  *errs.InvalidNameError
		parseErr *errs.ParseError
		ioErr    *errs.IOError
	)

	switch {
	case errors.As(err, &exists):
		return ErrEntityExists,
			fmt.Sprintf("Change it with: occfg %s update %s", exists.Kind, shellquote.QuoteIfNeeded(exists.Name)),
			map[string]string{"location": exists.Location}
	case errors.As(err, &notFound):
		return ErrEntityNotFound,
			fmt.Sprintf("Run 'occfg %s list' to see available names", notFound.Kind), nil
	case errors.As(err, &badRef):
		return ErrRefInvalid, "Fix the {file:...} reference in opencode.json",
			map[string]string{"field": badRef.Field, "ref": badRef.Ref}
	case errors.As(err, &badName):
		if badName.Suggestion != "" {
			return ErrInvalidInput, fmt.Sprintf("Try %q", badName.Suggestion), nil
		}
		return ErrInvalidInput, "", nil
	case errors.As(err, &parseErr):
		return ErrConfigInvalid, "Fix the syntax error and retry", map[string]string{"path": parseErr.Path}
	case errors.As(err, &ioErr):
		if ioErr.Op == "read" {
			return ErrFileReadError, "", map[string]string{"path": ioErr.Path}
		}
		return ErrFileWriteError, "", map[string]string{"path": ioErr.Path, "op": ioErr.Op}
	}
	return ErrInternal, "", nil
}

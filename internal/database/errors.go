package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/types"
)

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Drivers that predate error translation only expose the message.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

// TranslateError converts a storage error into an AppError. resource and id
// name the entity for not-found and conflict messages.
func TranslateError(err error, resource, id string) error {
	if err == nil {
		return nil
	}

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.NewNotFoundError(resource, id)
	case IsUniqueViolation(err):
		return types.NewConflictError(fmt.Sprintf("%s already exists", resource), err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.NewValidationError(fmt.Sprintf("%s references a missing record", resource), err.Error())
	default:
		return types.NewInternalError(fmt.Sprintf("%s storage failure", strings.ToLower(resource)), err)
	}
}

package utils

import (
	"strings"

	"github.com/mantonx/cinevault/internal/types"
)

// RequiredText trims value and returns a validation error naming field when
// nothing is left.
func RequiredText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", types.NewValidationError("request validation failed", field+" should not be empty")
	}
	return trimmed, nil
}

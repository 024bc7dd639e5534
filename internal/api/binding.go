package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/mantonx/cinevault/internal/types"
)

func init() {
	// Unknown request fields are rejected, not dropped.
	binding.EnableDecoderDisallowUnknownFields = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Report JSON field names in violations.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		// Whitespace-only text counts as missing.
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// BindJSON decodes the request body into obj and validates it. Every failure
// comes back as a single VALIDATION_ERROR listing each violation.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return translateBindError(err)
	}
	return nil
}

// Param returns a path parameter; empty values are a validation error.
func Param(c *gin.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		return "", types.NewValidationError("invalid path", name+" is required")
	}
	return v, nil
}

func translateBindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		violations := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			violations = append(violations, describe(fe))
		}
		return types.NewValidationError("request validation failed", violations...)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return types.NewValidationError("request validation failed", "request body is required")
	case errors.As(err, &syntaxErr):
		return types.NewValidationError("request validation failed", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
	case errors.As(err, &typeErr):
		return types.NewValidationError("request validation failed", fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return types.NewValidationError("request validation failed", fmt.Sprintf("property %s should not exist", strings.Trim(field, `"`)))
	}
	return types.NewValidationError("request validation failed", err.Error())
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " should not be empty"
	case "email":
		return field + " must be an email"
	case "url":
		return field + " must be a URL address"
	case "uuid", "uuid4":
		return field + " must be a UUID"
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be longer than or equal to %s characters", field, fe.Param())
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s must not be greater than %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// fieldPath drops the top-level struct name: "CreateFilmRequest.title" -> "title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

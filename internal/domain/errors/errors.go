package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors for handlers and middleware to map to HTTP status.
var (
	// ErrUnauthorized covers missing, invalid and expired tokens as well as
	// tokens whose subject does not resolve to an existing user.
	ErrUnauthorized = errors.New("unauthorized")
)

// Codes raised by the domain services. Each maps to a canonical Romanian
// message; translation to the caller's language happens at render time.
const (
	CodeInvalidMasterPassword = "INVALID_MASTER_PASSWORD"
	CodeEmailInUse            = "EMAIL_IN_USE"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeProjectNotFound       = "PROJECT_NOT_FOUND"
	CodePhotoNotFound         = "PHOTO_NOT_FOUND"
)

var messages = map[string]string{
	CodeInvalidMasterPassword: "Parola master este incorecta",
	CodeEmailInUse:            "Acest email este deja folosit",
	CodeInvalidCredentials:    "Emailul sau parola sunt incorecte",
	CodeProjectNotFound:       "Proiectul nu exista",
	CodePhotoNotFound:         "Fotografia nu exista",
}

// ValidationError is a field-addressable failure: Details maps a field path
// (dot/index form, e.g. "photosToDelete.0") to a human-readable message.
// It always carries at least one field entry and an HTTP status.
type ValidationError struct {
	Status  int
	Details map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for f := range e.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed on %s", strings.Join(fields, ", "))
}

// FromCode builds a domain validation error with status 400. The catalog
// message for code is replicated under every given field path, so callers
// can blame several fields without revealing which one was wrong.
func FromCode(code string, fields ...string) *ValidationError {
	details := make(map[string]string, len(fields))
	for _, f := range fields {
		details[f] = messages[code]
	}
	return &ValidationError{Status: http.StatusBadRequest, Details: details}
}

// Schema builds a coercion/shape failure with status 422.
func Schema(details map[string]string) *ValidationError {
	return &ValidationError{Status: http.StatusUnprocessableEntity, Details: details}
}

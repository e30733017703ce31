package visitor

import (
	"fmt"
	"strings"

	"visitor-reception/internal/storage"
)

// ErrNotFound is returned when an operation references an unknown visitor id.
var ErrNotFound = storage.ErrNoVisitor

// ValidationError reports a missing or malformed registration field with
// enough detail for the client to correct the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return value, nil
}

// Contact numbers are digit-only. The storage layer enforces the same
// constraint, but pre-validating surfaces a clear client error instead of a
// constraint failure.
func digitsOnly(field, value string) error {
	for _, r := range value {
		if r < '0' || r > '9' {
			return &ValidationError{Field: field, Reason: "must contain only digits"}
		}
	}
	return nil
}

// Basic email shape check. Must contain "@" not as the first or last character.
func validEmail(field, value string) error {
	at := strings.Index(value, "@")
	if at < 1 || at == len(value)-1 {
		return &ValidationError{Field: field, Reason: "invalid email format"}
	}
	return nil
}

package account

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUserNotFound indicates no user exists for the given identifier.
	ErrUserNotFound = errors.New("user not found")

	// ErrWalletNotFound indicates no wallet exists for the given owner.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrEmailTaken indicates the email already belongs to a registered user.
	ErrEmailTaken = errors.New("email already taken")

	// ErrCardNumberTaken indicates another wallet already holds the card number.
	ErrCardNumberTaken = errors.New("card number already taken")

	// ErrCardSpaceExhausted indicates card number generation gave up after the
	// bounded number of attempts without finding a free number.
	ErrCardSpaceExhausted = errors.New("card number space exhausted")
)

// ValidationError carries field-level messages for malformed client input.
// Operations that return it have had no side effects.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Add appends a message for the given field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasField reports whether the field already carries a message.
func (e *ValidationError) HasField(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// ProvisioningError reports a transactional or storage failure during
// registration. The enclosing transaction has been rolled back; no partial
// records remain.
type ProvisioningError struct {
	Cause error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("account provisioning failed: %v", e.Cause)
}

func (e *ProvisioningError) Unwrap() error { return e.Cause }

package middleware

import (
	"errors"
	"strings"
	"unicode"
)

// Validation limits.
const (
	// MaxDocumentIDLength bounds caller-supplied entry and tracking IDs.
	MaxDocumentIDLength = 128

	// MaxEmailLength follows the RFC 5321 path limit.
	MaxEmailLength = 254
)

// Validation errors.
var (
	ErrIDRequired    = errors.New("id is required")
	ErrIDTooLong     = errors.New("id exceeds maximum length")
	ErrIDInvalid     = errors.New("id contains whitespace, control characters or '/'")
	ErrEmailRequired = errors.New("email is required")
	ErrEmailTooLong  = errors.New("email exceeds maximum length")
)

// ValidateDocumentID checks an ID that will be addressed as /entries/{id}.
func ValidateDocumentID(id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if len(id) > MaxDocumentIDLength {
		return ErrIDTooLong
	}
	if strings.ContainsFunc(id, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r) || unicode.IsControl(r)
	}) {
		return ErrIDInvalid
	}
	return nil
}

// ValidateAdminEmail only checks presence and length; duplicates are allowed.
func ValidateAdminEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if len(email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	return nil
}

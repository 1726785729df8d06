// Package model defines domain entities for the application.
package model

// AdminEntry is a stored administrator credential.
// Passwords are kept in clear text; there is no access control built on them.
type AdminEntry struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

package admin

import "time"

// Admin is a back-office operator account. Admins authenticate with
// cookie-backed sessions, not bearer tokens, and live in their own credential
// store separate from wallet users.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

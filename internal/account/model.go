package account

import "time"

// User represents a registered account holder.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   []byte    `json:"-"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	KTP            string    `json:"ktp,omitempty"`
	Verified       bool      `json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// Wallet is the stored value account owned 1:1 by a user. The card number is
// unique across all wallets; the database constraint is the authoritative guard.
type Wallet struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Balance    int64     `json:"balance"`
	PIN        string    `json:"-"`
	CardNumber string    `json:"card_number"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats aggregates store-wide counts for the admin dashboard.
type Stats struct {
	Users   int64 `json:"users"`
	Wallets int64 `json:"wallets"`
}

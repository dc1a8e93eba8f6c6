package account

import "github.com/vela-pay/vela_pay/internal/token"

// AuthPayload is the wire response for successful registration and login.
type AuthPayload struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Verified       bool   `json:"verified"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	KTP            string `json:"ktp,omitempty"`
	Token          string `json:"token"`
	TokenExpiresIn int64  `json:"token_expires_in"`
	TokenType      string `json:"token_type"`
}

// NewAuthPayload assembles the response payload from a user value and an
// issued token. Response shaping never reaches back into the store.
func NewAuthPayload(u User, t token.Token) AuthPayload {
	return AuthPayload{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Username:       u.Username,
		Verified:       u.Verified,
		ProfilePicture: u.ProfilePicture,
		KTP:            u.KTP,
		Token:          t.Value,
		TokenExpiresIn: t.ExpiresIn,
		TokenType:      t.Type,
	}
}

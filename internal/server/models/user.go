package models

import "time"

// User is the credential store record. PasswordHash and RefreshToken are
// internal state and must never be serialized into a response; handlers
// expose users through the Public projection instead.
type User struct {
	ID           string
	Username     string
	Email        string
	DisplayName  string
	PhotoURL     string
	PasswordHash string
	RefreshToken string
	CreatedAt    time.Time
}

// PublicUser is the response-boundary projection of a User. Field names
// follow the wire contract of the API.
type PublicUser struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}

// Public returns the serializable projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}

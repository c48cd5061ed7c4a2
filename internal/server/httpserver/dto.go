package httpserver

import (
	"encoding/json"

	"github.com/mkravcov/authgate/internal/server/models"
)

// Request and response shapes. Field names are part of the wire contract
// and must not change.

type authenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type getUserByTokenRequest struct {
	AccessToken string `json:"access_token"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhotoURL    string `json:"photoUrl"`
	DisplayName string `json:"displayName"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
	Username    string `json:"username"`
}

// fieldError is the structured error object returned for business-rule
// failures (HTTP 200 with success:false).
type fieldError struct {
	Message   string `json:"message"`
	FieldName string `json:"fieldName"`
}

// userEnvelope is the `user` object returned by authenticate and
// getUserByToken.
type userEnvelope struct {
	AccessToken string             `json:"access_token"`
	Settings    json.RawMessage    `json:"settings"`
	Data        *models.PublicUser `json:"data"`
	Role        string             `json:"role"`
	Shortcuts   []string           `json:"shortcuts"`
}

// Role and shortcuts are fixed labels; there is no role engine.
const roleAdmin = "admin"

func defaultShortcuts() []string { return []string{"contacts"} }

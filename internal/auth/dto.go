package auth

import (
	user "github.com/stockroomhq/stockroom-backend/internal/users"
)

// RegisterInput holds the validated payload to create an account.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// LoginResult carries the authenticated user and the issued token pair.
type LoginResult struct {
	User         user.UserDTO `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

package dto

import dom "github.com/zulven/arkivia-collab-todo/internal/domain"

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username    string  `json:"username" binding:"required,min=1,max=120"`
	Password    string  `json:"password" binding:"required,min=8"`
	Email       *string `json:"email" binding:"omitempty,email"`
	DisplayName *string `json:"displayName" binding:"omitempty,max=120"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the JSON body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse is the public profile shape; email and displayName are null
// when the user never set them.
type UserResponse struct {
	UID         string  `json:"uid"`
	Username    string  `json:"username"`
	Email       *string `json:"email"`
	DisplayName *string `json:"displayName"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	OK     bool          `json:"ok"`
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

type UserSearchResponse struct {
	Users []UserResponse `json:"users"`
}

// NewUserResponse encodes a domain user for the wire.
func NewUserResponse(u dom.User) UserResponse {
	return UserResponse{
		UID:         u.UID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

func NewUserResponses(list []dom.User) []UserResponse {
	out := make([]UserResponse, len(list))
	for i := range list {
		out[i] = NewUserResponse(list[i])
	}
	return out
}

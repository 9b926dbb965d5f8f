package dto

import (
	"time"

	"bookstop/internal/httpapi/models"
)

type SignUpRequest struct {
	Username    string  `json:"username" binding:"required,min=3,max=30"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8,max=200"`
	DisplayName string  `json:"displayName" binding:"required,max=100"`
	Avatar      *string `json:"avatar"`
	Bio         string  `json:"bio" binding:"max=500"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RevokeTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse is the public view of a user, without the password hash.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Avatar      *string   `json:"avatar,omitempty"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Bio:         user.Bio,
		CreatedAt:   user.CreatedAt,
	}
}

type EditUserRequest struct {
	NewUsername string `json:"newUsername" binding:"required,min=3,max=30"`
	Password    string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=200"`
}

type DeleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

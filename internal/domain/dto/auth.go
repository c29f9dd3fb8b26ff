package dto

import "github.com/IT-Nick/testportal/internal/domain/model"

// LoginRequest тело POST /auth/login
type LoginRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// UserResponse текущий пользователь
type UserResponse struct {
	User *model.User `json:"user"`
}

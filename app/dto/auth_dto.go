// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "time"

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100" example:"cost.controller"`
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string    `json:"token_type" example:"Bearer"`
	ExpiresAt   time.Time `json:"expires_at" example:"2026-01-15T16:30:00Z"`
	User        UserInfo  `json:"user"`
}

// UserInfo represents user information returned in login response
type UserInfo struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"cost.controller"`
	Role     string `json:"role" example:"admin"`
}

// LogoutRequest represents the request payload for logout
type LogoutRequest struct {
	SessionToken string `json:"session_token" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

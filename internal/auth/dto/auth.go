package dto

import authdomain "edufeed-backend/internal/auth/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=standard instructor"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *authdomain.User `json:"user"`
}

type DeviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type MuteRequest struct {
	InstructorID string `json:"instructor_id" binding:"required"`
}

type MutedInstructorResponse struct {
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
	MutedAt        string `json:"muted_at"`
}

type MuteStatusResponse struct {
	InstructorID string `json:"instructor_id"`
	Muted        bool   `json:"muted"`
}

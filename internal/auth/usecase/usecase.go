package usecase

import (
	"errors"

	authdomain "edufeed-backend/internal/auth/domain"
	authdto "edufeed-backend/internal/auth/dto"
)

// Validation errors surfaced to the HTTP layer
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNotInstructor = errors.New("target user is not an instructor")
	ErrSelfMute      = errors.New("cannot mute yourself")
)

// AuthUsecase covers authentication, device-token registration and
// per-instructor mute preferences for the authenticated user.
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(token string) (*authdomain.User, error)

	// RegisterDeviceToken overwrites the user's push delivery address
	RegisterDeviceToken(userID, token string) error
	ClearDeviceToken(userID string) error

	MuteInstructor(userID, instructorID string) error
	UnmuteInstructor(userID, instructorID string) error
	IsMuted(userID, instructorID string) (bool, error)
	ListMutedInstructors(userID string) ([]authdomain.MutedInstructor, error)
}

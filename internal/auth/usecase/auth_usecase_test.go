package usecase

import (
	"testing"
	"time"

	authdomain "edufeed-backend/internal/auth/domain"
	authdto "edufeed-backend/internal/auth/dto"
	"edufeed-backend/internal/auth/repository"
	"edufeed-backend/pkg/config"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUsecase(t *testing.T) (AuthUsecase, repository.UserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.MutedInstructor{},
	))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	userRepo := repository.NewUserRepository(db)
	return NewAuthUsecase(userRepo, repository.NewMuteRepository(db), cfg), userRepo
}

func register(t *testing.T, uc AuthUsecase, email, role string) *authdto.TokenResponse {
	t.Helper()

	resp, err := uc.Register(&authdto.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     email,
		Role:     role,
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := setupUsecase(t)

	resp := register(t, uc, "Student@Example.com", "")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Emails are case-insensitive
	login, err := uc.Login(&authdto.LoginRequest{Email: "student@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = uc.Login(&authdto.LoginRequest{Email: "student@example.com", Password: "wrong-password"})
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := setupUsecase(t)

	register(t, uc, "dup@example.com", "")
	_, err := uc.Register(&authdto.RegisterRequest{
		Email:    "DUP@example.com",
		Password: "password123",
		Name:     "dup",
	})
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	uc, _ := setupUsecase(t)

	resp := register(t, uc, "me@example.com", authdomain.RoleInstructor)

	user, err := uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)
	assert.Equal(t, authdomain.RoleInstructor, user.Role)

	_, err = uc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokenRotation(t *testing.T) {
	uc, _ := setupUsecase(t)

	resp := register(t, uc, "rot@example.com", "")

	rotated, err := uc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	require.NoError(t, uc.Logout(rotated.RefreshToken))
	_, err = uc.RefreshToken(rotated.RefreshToken)
	assert.Error(t, err)
}

func TestRegisterDeviceToken(t *testing.T) {
	uc, userRepo := setupUsecase(t)

	resp := register(t, uc, "device@example.com", "")
	user, err := uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, uc.RegisterDeviceToken(user.ID, "token-abc"))
	got, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", got.DeviceToken)

	assert.Error(t, uc.RegisterDeviceToken(user.ID, ""), "blank tokens are rejected")
	assert.Error(t, uc.RegisterDeviceToken(user.ID, "   "))

	require.NoError(t, uc.ClearDeviceToken(user.ID))
	got, err = userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.DeviceToken)
}

func TestMuteInstructorValidation(t *testing.T) {
	uc, _ := setupUsecase(t)

	studentResp := register(t, uc, "student@example.com", "")
	student, err := uc.ValidateToken(studentResp.AccessToken)
	require.NoError(t, err)

	instructorResp := register(t, uc, "prof@example.com", authdomain.RoleInstructor)
	instructor, err := uc.ValidateToken(instructorResp.AccessToken)
	require.NoError(t, err)

	otherResp := register(t, uc, "other@example.com", "")
	other, err := uc.ValidateToken(otherResp.AccessToken)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.MuteInstructor(student.ID, student.ID), ErrSelfMute)
	assert.ErrorIs(t, uc.MuteInstructor(student.ID, "missing-id"), ErrUserNotFound)
	assert.ErrorIs(t, uc.MuteInstructor(student.ID, other.ID), ErrNotInstructor)

	require.NoError(t, uc.MuteInstructor(student.ID, instructor.ID))
	// Muting twice is a no-op
	require.NoError(t, uc.MuteInstructor(student.ID, instructor.ID))

	muted, err := uc.IsMuted(student.ID, instructor.ID)
	require.NoError(t, err)
	assert.True(t, muted)

	list, err := uc.ListMutedInstructors(student.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, instructor.ID, list[0].InstructorID)

	require.NoError(t, uc.UnmuteInstructor(student.ID, instructor.ID))
	muted, err = uc.IsMuted(student.ID, instructor.ID)
	require.NoError(t, err)
	assert.False(t, muted)
}

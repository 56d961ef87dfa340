package delivery

import (
	"errors"
	"net/http"
	"time"

	authdto "edufeed-backend/internal/auth/dto"
	"edufeed-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes authentication, device-token and mute endpoints
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Register(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the refresh token and clears the device token so the
// logged-out device stops receiving pushes.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Logout(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if userID := c.GetString("userID"); userID != "" {
		_ = h.authUsecase.ClearDeviceToken(userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterDeviceToken stores the caller's push token, overwriting any
// previous one (last write wins).
func (h *AuthHandler) RegisterDeviceToken(c *gin.Context) {
	var req authdto.DeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	if err := h.authUsecase.RegisterDeviceToken(userID, req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device token registered"})
}

func (h *AuthHandler) ClearDeviceToken(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.authUsecase.ClearDeviceToken(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device token cleared"})
}

func (h *AuthHandler) MuteInstructor(c *gin.Context) {
	var req authdto.MuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	if err := h.authUsecase.MuteInstructor(userID, req.InstructorID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, usecase.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "instructor muted"})
}

func (h *AuthHandler) UnmuteInstructor(c *gin.Context) {
	userID := c.GetString("userID")
	instructorID := c.Param("instructorID")

	if err := h.authUsecase.UnmuteInstructor(userID, instructorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "instructor unmuted"})
}

func (h *AuthHandler) ListMutedInstructors(c *gin.Context) {
	userID := c.GetString("userID")

	relations, err := h.authUsecase.ListMutedInstructors(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]authdto.MutedInstructorResponse, 0, len(relations))
	for _, rel := range relations {
		resp = append(resp, authdto.MutedInstructorResponse{
			InstructorID:   rel.InstructorID,
			InstructorName: rel.Instructor.Name,
			MutedAt:        rel.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"muted_instructors": resp})
}

func (h *AuthHandler) MutedStatus(c *gin.Context) {
	userID := c.GetString("userID")
	instructorID := c.Param("instructorID")

	muted, err := h.authUsecase.IsMuted(userID, instructorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, authdto.MuteStatusResponse{
		InstructorID: instructorID,
		Muted:        muted,
	})
}

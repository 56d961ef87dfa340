package repository

import (
	"context"
	"errors"
	"time"

	authdomain "edufeed-backend/internal/auth/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations on user records, including
// the device-token lifecycle used by the notification fan-out.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	// SaveDeviceToken overwrites the user's device token (last write wins).
	SaveDeviceToken(userID, token string) error
	// ClearDeviceToken removes the user's device token, e.g. on logout.
	ClearDeviceToken(userID string) error
	// RecipientTokens returns the device tokens eligible for a fan-out from
	// the given author: every non-empty token whose owner is not the author
	// and has not muted the author.
	RecipientTokens(ctx context.Context, authorID string) ([]string, error)
	// PurgeDeviceTokens clears every user token contained in the given list
	// in one bulk update. Idempotent, returns the number of rows changed.
	PurgeDeviceTokens(ctx context.Context, tokens []string) (int64, error)

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID string) error
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *authdomain.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByEmail(email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *userRepository) SaveDeviceToken(userID, token string) error {
	return r.db.Model(&authdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"device_token": token, "updated_at": time.Now()}).Error
}

func (r *userRepository) ClearDeviceToken(userID string) error {
	return r.SaveDeviceToken(userID, "")
}

func (r *userRepository) RecipientTokens(ctx context.Context, authorID string) ([]string, error) {
	muted := r.db.Model(&authdomain.MutedInstructor{}).
		Select("user_id").
		Where("instructor_id = ?", authorID)

	var tokens []string
	err := r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("device_token IS NOT NULL AND device_token <> ''").
		Where("id <> ?", authorID).
		Where("id NOT IN (?)", muted).
		Pluck("device_token", &tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *userRepository) PurgeDeviceTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	// Single bulk update so concurrent registrations never see a partial purge
	res := r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("device_token IN ?", tokens).
		Update("device_token", "")
	return res.RowsAffected, res.Error
}

func (r *userRepository) SaveRefreshToken(token *authdomain.RefreshToken) error {
	// Expired tokens for the user are cleaned up first, live ones remain so
	// other devices keep their sessions
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND expires_at < ?", token.UserID, time.Now()).Delete(&authdomain.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *userRepository) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	var refreshToken authdomain.RefreshToken
	err := r.db.Where("token = ?", token).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refreshToken, nil
}

func (r *userRepository) DeleteRefreshToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&authdomain.RefreshToken{}).Error
}

func (r *userRepository) DeleteRefreshTokensByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&authdomain.RefreshToken{}).Error
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

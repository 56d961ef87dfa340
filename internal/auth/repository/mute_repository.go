package repository

import (
	"time"

	authdomain "edufeed-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MuteRepository defines the interface for mute relation operations
type MuteRepository interface {
	Mute(userID, instructorID string) error
	Unmute(userID, instructorID string) error
	IsMuted(userID, instructorID string) (bool, error)
	ListByUser(userID string) ([]authdomain.MutedInstructor, error)
}

// muteRepository implements MuteRepository interface
type muteRepository struct {
	db *gorm.DB
}

// NewMuteRepository creates a new instance of muteRepository
func NewMuteRepository(db *gorm.DB) MuteRepository {
	return &muteRepository{
		db: db,
	}
}

// Mute records a mute relation. Idempotent: muting an already muted
// instructor is a no-op (INSERT ... ON CONFLICT DO NOTHING).
func (r *muteRepository) Mute(userID, instructorID string) error {
	relation := &authdomain.MutedInstructor{
		ID:           uuid.New().String(),
		UserID:       userID,
		InstructorID: instructorID,
		CreatedAt:    time.Now(),
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "instructor_id"}},
		DoNothing: true,
	}).Create(relation).Error
}

// Unmute removes the mute relation, no-op if absent
func (r *muteRepository) Unmute(userID, instructorID string) error {
	return r.db.Where("user_id = ? AND instructor_id = ?", userID, instructorID).
		Delete(&authdomain.MutedInstructor{}).Error
}

func (r *muteRepository) IsMuted(userID, instructorID string) (bool, error) {
	var count int64
	err := r.db.Model(&authdomain.MutedInstructor{}).
		Where("user_id = ? AND instructor_id = ?", userID, instructorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *muteRepository) ListByUser(userID string) ([]authdomain.MutedInstructor, error) {
	var relations []authdomain.MutedInstructor
	err := r.db.Where("user_id = ?", userID).
		Preload("Instructor").
		Find(&relations).Error
	if err != nil {
		return nil, err
	}
	return relations, nil
}

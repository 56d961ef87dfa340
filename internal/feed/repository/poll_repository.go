package repository

import (
	"context"
	"errors"
	"time"

	feeddomain "edufeed-backend/internal/feed/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidOption is returned when a vote targets an option that does not
// belong to the poll
var ErrInvalidOption = errors.New("option does not belong to poll")

// PollRepository defines persistence operations for polls and votes
type PollRepository interface {
	Create(ctx context.Context, poll *feeddomain.Poll) error
	FindByID(ctx context.Context, id string) (*feeddomain.Poll, error)
	List(ctx context.Context, page, pageSize int) ([]feeddomain.Poll, int64, error)
	Vote(ctx context.Context, pollID, userID, optionID string) error
}

// pollRepository implements PollRepository interface
type pollRepository struct {
	db *gorm.DB
}

// NewPollRepository creates a new instance of pollRepository
func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{
		db: db,
	}
}

// Create inserts the poll and its options in a single transaction, so a
// half-created poll is never visible to a fan-out.
func (r *pollRepository) Create(ctx context.Context, poll *feeddomain.Poll) error {
	poll.ID = uuid.New().String()
	poll.IsActive = true
	poll.CreatedAt = time.Now()
	poll.UpdatedAt = time.Now()
	for i := range poll.Options {
		poll.Options[i].ID = uuid.New().String()
		poll.Options[i].PollID = poll.ID
		poll.Options[i].Position = i
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(poll).Error
	})
}

func (r *pollRepository) FindByID(ctx context.Context, id string) (*feeddomain.Poll, error) {
	var poll feeddomain.Poll
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.position ASC")
		}).
		Where("id = ? AND is_active = ?", id, true).
		First(&poll).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepository) List(ctx context.Context, page, pageSize int) ([]feeddomain.Poll, int64, error) {
	query := r.db.WithContext(ctx).Model(&feeddomain.Poll{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var polls []feeddomain.Poll
	err := query.
		Preload("Author").
		Preload("Options").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&polls).Error
	if err != nil {
		return nil, 0, err
	}
	return polls, total, nil
}

// Vote records or switches the user's vote. One vote per user per poll;
// voting for the already chosen option is a no-op.
func (r *pollRepository) Vote(ctx context.Context, pollID, userID, optionID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var option feeddomain.PollOption
		err := tx.Where("id = ? AND poll_id = ?", optionID, pollID).First(&option).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidOption
			}
			return err
		}

		var existing feeddomain.PollVote
		err = tx.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&existing).Error
		if err == nil {
			if existing.OptionID == optionID {
				return nil
			}
			// Switch vote: move the counter from the old option to the new one
			if err := tx.Model(&feeddomain.PollOption{}).
				Where("id = ?", existing.OptionID).
				UpdateColumn("votes_count", gorm.Expr("votes_count - 1")).Error; err != nil {
				return err
			}
			existing.OptionID = optionID
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&feeddomain.PollOption{}).
				Where("id = ?", optionID).
				UpdateColumn("votes_count", gorm.Expr("votes_count + 1")).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := &feeddomain.PollVote{
			ID:        uuid.New().String(),
			PollID:    pollID,
			UserID:    userID,
			OptionID:  optionID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		return tx.Model(&feeddomain.PollOption{}).
			Where("id = ?", optionID).
			UpdateColumn("votes_count", gorm.Expr("votes_count + 1")).Error
	})
}

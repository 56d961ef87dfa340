package domain

import (
	"time"

	authdomain "edufeed-backend/internal/auth/domain"
)

type Poll struct {
	ID       string `json:"id" gorm:"primaryKey"`
	AuthorID string `json:"author_id" gorm:"index;not null"`
	Question string `json:"question" gorm:"not null"`
	IsActive bool   `json:"-" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author  authdomain.User `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Options []PollOption    `json:"options" gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

type PollOption struct {
	ID       string `json:"id" gorm:"primaryKey"`
	PollID   string `json:"poll_id" gorm:"index;not null"`
	Text     string `json:"text" gorm:"not null"`
	Position int    `json:"position"`

	VotesCount int `json:"votes_count" gorm:"default:0"`
}

// PollVote records one user's vote on a poll. Unique per (poll, user);
// voting again switches the chosen option.
type PollVote struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	PollID    string    `json:"poll_id" gorm:"uniqueIndex:idx_poll_user;not null"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_poll_user;not null"`
	OptionID  string    `json:"option_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import (
	"time"

	authdomain "edufeed-backend/internal/auth/domain"
)

type Post struct {
	ID       string `json:"id" gorm:"primaryKey"`
	AuthorID string `json:"author_id" gorm:"index;not null"`
	Content  string `json:"content" gorm:"not null"`
	ImageURL string `json:"image_url,omitempty"`
	IsActive bool   `json:"-" gorm:"default:true;index"`

	// Denormalized counters for feed rendering
	ReactionsCount int `json:"reactions_count" gorm:"default:0"`
	CommentsCount  int `json:"comments_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author authdomain.User `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

type Comment struct {
	ID       string  `json:"id" gorm:"primaryKey"`
	PostID   string  `json:"post_id" gorm:"index;not null"`
	AuthorID string  `json:"author_id" gorm:"not null"`
	ParentID *string `json:"parent_id,omitempty" gorm:"index"`
	Content  string  `json:"content" gorm:"not null"`
	IsActive bool    `json:"-" gorm:"default:true"`

	RepliesCount int `json:"replies_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author authdomain.User `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// Reaction types mirror the mobile client's emoji picker
const (
	ReactionLove  = "love"
	ReactionHaha  = "haha"
	ReactionSad   = "sad"
	ReactionAngry = "angry"
)

// ValidReaction reports whether the reaction type is one the feed accepts
func ValidReaction(kind string) bool {
	switch kind {
	case ReactionLove, ReactionHaha, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// PostReaction is one user's reaction to one post, unique per pair
type PostReaction struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	PostID       string    `json:"post_id" gorm:"uniqueIndex:idx_post_user;not null"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex:idx_post_user;not null"`
	ReactionType string    `json:"reaction_type" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

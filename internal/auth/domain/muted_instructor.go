package domain

import "time"

// MutedInstructor is a subscriber's standing preference to suppress push
// notifications from one instructor. Unique per (user, instructor) pair.
// Muting takes effect on the next fan-out, never retroactively.
type MutedInstructor struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex:idx_user_instructor;not null"`
	InstructorID string    `json:"instructor_id" gorm:"uniqueIndex:idx_user_instructor;not null"`
	CreatedAt    time.Time `json:"created_at"`

	// Deleting either side of the relation removes the mute
	User       User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Instructor User `json:"-" gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE"`
}

package domain

import "time"

// User roles. Instructors are the only users whose content triggers fan-out
// and the only valid mute targets.
const (
	RoleStandard   = "standard"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"` // Never return password in JSON
	Name     string `json:"name"`
	Role     string `json:"role" gorm:"default:standard"`
	// DeviceToken is the FCM delivery address for this user's most recently
	// registered device. Single-valued: each registration overwrites the
	// previous one, empty means no registered device.
	DeviceToken string    `json:"-" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsInstructor reports whether the user can be muted and whose publishes
// notify other users.
func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}

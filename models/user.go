package models

import (
	"time"
)

// User roles. "partner" is the organizer role: partners own maps, hunts,
// caches and palette colors.
const (
	RoleAdmin     = "admin"
	RolePartner   = "partner"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// User account statuses.
const (
	UserStatusDisabled = 0
	UserStatusEnabled  = 1
)

// User is the identity row shared by players, partners, moderators and admins.
// Deletion is always soft: status flips to disabled, optionally with a
// suspension window, and the row stays for history.
type User struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Username      string     `json:"username" gorm:"index;not null"`
	Password      string     `json:"-" gorm:"not null"`
	Role          string     `json:"role" gorm:"type:varchar(16);default:'user'"`
	Status        int        `json:"status" gorm:"default:1"`
	DisabledStart *time.Time `json:"disabled_start,omitempty"`
	DisabledEnd   *time.Time `json:"disabled_end,omitempty"`
	Money         float64    `json:"money" gorm:"default:0"`
	AppearanceID  *uint      `json:"appearance_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// Suspended reports whether the account is currently inside a ban window.
// A future disabled_end suspends regardless of the status column.
func (u *User) Suspended(now time.Time) bool {
	return u.DisabledEnd != nil && now.Before(*u.DisabledEnd)
}

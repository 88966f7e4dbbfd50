package models

import (
	"time"
)

// FaqEntry is a published help-center question/answer.
type FaqEntry struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Question  string     `json:"question" gorm:"type:text;not null"`
	Answer    string     `json:"answer" gorm:"type:text"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// HelpRequest is a support ticket opened by a user.
type HelpRequest struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	Subject    string     `json:"subject" gorm:"not null"`
	Message    string     `json:"message" gorm:"type:text"`
	IsResolved bool       `json:"is_resolved" gorm:"default:false"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

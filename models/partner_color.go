package models

import (
	"time"
)

// PartnerColor is one entry of a partner's palette. A partner always keeps at
// least one color: deleting the last remaining one is refused.
type PartnerColor struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	PartnerID uint       `json:"partner_id" gorm:"not null;index"`
	HexColor  string     `json:"hex_color" gorm:"type:varchar(7);not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

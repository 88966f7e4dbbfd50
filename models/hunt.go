package models

import (
	"time"
)

// Hunt lifecycle statuses. Once a hunt is closed no further participant or
// cache mutation is accepted.
const (
	HuntStatusDraft    = 1
	HuntStatusActive   = 2
	HuntStatusInactive = 3
	HuntStatusClosed   = 4
)

// Hunt worlds and modes.
const (
	HuntWorldVirtual = 1
	HuntWorldReal    = 2

	HuntModePublic  = 1
	HuntModePrivate = 2
)

// Hunt is a treasure-hunt event owned by a partner.
type Hunt struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Title            string     `json:"title" gorm:"not null"`
	Slug             string     `json:"slug" gorm:"index"`
	Description      string     `json:"description" gorm:"type:text"`
	World            int        `json:"world" gorm:"default:1"`
	Duration         *time.Time `json:"duration,omitempty"`
	Mode             int        `json:"mode" gorm:"default:1"`
	MaxParticipants  int        `json:"max_participants" gorm:"default:10"`
	ChatEnabled      bool       `json:"chat_enabled" gorm:"default:true"`
	MapID            uint       `json:"map_id" gorm:"default:1;index"`
	ParticipationFee float64    `json:"participation_fee" gorm:"default:0"`
	SearchDelay      string     `json:"search_delay" gorm:"type:varchar(8);default:'00:01:00'"`
	PartnerID        uint       `json:"partner_id" gorm:"not null;index"`
	Status           int        `json:"status" gorm:"default:1"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

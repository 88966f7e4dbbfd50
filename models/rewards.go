package models

import (
	"time"
)

// Catalog entity statuses (artifacts, badges, offers, collections, ...).
const (
	CatalogStatusInactive = 0
	CatalogStatusActive   = 1
)

// Collection groups reward-catalog entities.
type Collection struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null"`
	AdminID   uint       `json:"admin_id" gorm:"not null;index"`
	Status    int        `json:"status" gorm:"default:1"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// Theme classifies artifacts.
type Theme struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null"`
	Status    int        `json:"status" gorm:"default:1"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// Illustration is the artwork attached to an artifact.
type Illustration struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null"`
	URL       string     `json:"url" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// Artifact is a collectible reward item.
type Artifact struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	AdminID        uint       `json:"admin_id" gorm:"not null;index"`
	Type           *int       `json:"type,omitempty"`
	ThemeID        *uint      `json:"theme_id,omitempty" gorm:"index"`
	Rarity         *int       `json:"rarity,omitempty"`
	IllustrationID *uint      `json:"illustration_id,omitempty"`
	CollectionID   *uint      `json:"collection_id,omitempty" gorm:"index"`
	Usage          *int       `json:"usage,omitempty"`
	Status         int        `json:"status" gorm:"default:1"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// Badge is an achievement players earn.
type Badge struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	AdminID      uint       `json:"admin_id" gorm:"not null;index"`
	CollectionID *uint      `json:"collection_id,omitempty" gorm:"index"`
	Type         *int       `json:"type,omitempty"`
	Rarity       *int       `json:"rarity,omitempty"`
	Status       int        `json:"status" gorm:"default:1"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// Offer is a redeemable partner reward. Only active offers can be claimed.
type Offer struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	AdminID      uint       `json:"admin_id" gorm:"not null;index"`
	CollectionID *uint      `json:"collection_id,omitempty" gorm:"index"`
	Amount       float64    `json:"amount" gorm:"default:0"`
	Status       int        `json:"status" gorm:"default:1"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// OtherReward covers the miscellaneous reward kinds outside offers and badges.
type OtherReward struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	AdminID      uint       `json:"admin_id" gorm:"not null;index"`
	CollectionID *uint      `json:"collection_id,omitempty" gorm:"index"`
	Type         *int       `json:"type,omitempty"`
	Status       int        `json:"status" gorm:"default:1"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

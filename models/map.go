package models

import (
	"time"

	"gorm.io/gorm"
)

// Map is a named geographic area owned by a partner. Hunts reference a map,
// and a referenced map cannot be deleted.
type Map struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null"`
	Scale     float64    `json:"scale" gorm:"default:1"`
	Location  Point      `json:"-"`
	Latitude  float64    `json:"latitude" gorm:"-"`
	Longitude float64    `json:"longitude" gorm:"-"`
	PartnerID uint       `json:"partner_id" gorm:"not null;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

func (Map) TableName() string { return "maps" }

func (m *Map) BeforeSave(tx *gorm.DB) error {
	m.Location = Point{Lng: m.Longitude, Lat: m.Latitude}
	return nil
}

func (m *Map) AfterFind(tx *gorm.DB) error {
	m.Latitude = m.Location.Lat
	m.Longitude = m.Location.Lng
	return nil
}

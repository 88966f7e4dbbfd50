package models

import (
	"time"

	"gorm.io/gorm"
)

// Cache is a geolocated waypoint of a hunt, owned by a partner.
type Cache struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	HuntID      *uint      `json:"hunt_id,omitempty" gorm:"index"`
	PartnerID   uint       `json:"partner_id" gorm:"not null;index"`
	Description string     `json:"description" gorm:"type:text"`
	Location    Point      `json:"-"`
	Latitude    float64    `json:"latitude" gorm:"-"`
	Longitude   float64    `json:"longitude" gorm:"-"`
	Visible     bool       `json:"visible" gorm:"default:true"`
	Size        int        `json:"size" gorm:"default:1"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

func (c *Cache) BeforeSave(tx *gorm.DB) error {
	c.Location = Point{Lng: c.Longitude, Lat: c.Latitude}
	return nil
}

func (c *Cache) AfterFind(tx *gorm.DB) error {
	c.Latitude = c.Location.Lat
	c.Longitude = c.Location.Lng
	return nil
}

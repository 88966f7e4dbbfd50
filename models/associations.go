package models

import (
	"time"
)

// Join rows linking two primary entities. Each pair is unique; GETs return the
// row with both sides preloaded so clients get display fields without a second
// round trip.

type UserBadge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:uq_user_badge"`
	BadgeID   uint      `json:"badge_id" gorm:"not null;index;uniqueIndex:uq_user_badge"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Badge *Badge `json:"badge,omitempty" gorm:"foreignKey:BadgeID"`
}

type UserArtifact struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index;uniqueIndex:uq_user_artifact"`
	ArtifactID uint      `json:"artifact_id" gorm:"not null;index;uniqueIndex:uq_user_artifact"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Artifact *Artifact `json:"artifact,omitempty" gorm:"foreignKey:ArtifactID"`
}

type UserOffer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:uq_user_offer"`
	OfferID   uint      `json:"offer_id" gorm:"not null;index;uniqueIndex:uq_user_offer"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Offer *Offer `json:"offer,omitempty" gorm:"foreignKey:OfferID"`
}

type UserOtherReward struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index;uniqueIndex:uq_user_other_reward"`
	OtherRewardID uint      `json:"other_reward_id" gorm:"not null;index;uniqueIndex:uq_user_other_reward"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`

	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	OtherReward *OtherReward `json:"other_reward,omitempty" gorm:"foreignKey:OtherRewardID"`
}

type HuntArtifact struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	HuntID     uint      `json:"hunt_id" gorm:"not null;index;uniqueIndex:uq_hunt_artifact"`
	ArtifactID uint      `json:"artifact_id" gorm:"not null;index;uniqueIndex:uq_hunt_artifact"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	Hunt     *Hunt     `json:"hunt,omitempty" gorm:"foreignKey:HuntID"`
	Artifact *Artifact `json:"artifact,omitempty" gorm:"foreignKey:ArtifactID"`
}

// HuntParticipant carries an excluded flag so a participant can be soft-banned
// from a hunt without losing their history.
type HuntParticipant struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	HuntID    uint       `json:"hunt_id" gorm:"not null;index;uniqueIndex:uq_hunt_participant"`
	UserID    uint       `json:"user_id" gorm:"not null;index;uniqueIndex:uq_hunt_participant"`
	Excluded  bool       `json:"excluded" gorm:"default:false"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`

	Hunt *Hunt `json:"hunt,omitempty" gorm:"foreignKey:HuntID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (HuntParticipant) TableName() string { return "hunts_participants" }

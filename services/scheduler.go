package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"lootopia-service/models"
)

// HuntLifecycle closes active hunts whose duration has elapsed.
type HuntLifecycle struct {
	DB *gorm.DB
}

func NewHuntLifecycle(db *gorm.DB) *HuntLifecycle {
	return &HuntLifecycle{DB: db}
}

func (s *HuntLifecycle) StartScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: close expired hunts
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(s.CloseExpired),
	)
}

func (s *HuntLifecycle) CloseExpired() {
	var hunts []models.Hunt
	now := time.Now()
	err := s.DB.Where("status = ? AND duration IS NOT NULL AND duration <= ?", models.HuntStatusActive, now).
		Find(&hunts).Error
	if err != nil {
		log.Printf("[Scheduler] DB error: %v", err)
		return
	}

	for _, h := range hunts {
		updates := map[string]interface{}{
			"status":     models.HuntStatusClosed,
			"updated_at": now.UTC(),
		}
		if err := s.DB.Model(&h).Updates(updates).Error; err != nil {
			log.Printf("[Scheduler] Failed to close hunt %d: %v", h.ID, err)
		} else {
			log.Printf("✅ Auto-closed hunt: %s", h.Title)
		}
	}
}

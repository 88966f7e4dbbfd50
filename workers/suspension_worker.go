package workers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"lootopia-service/models"
)

// PollSuspensions re-enables users whose ban window has elapsed. Login does
// the same check lazily; this keeps listing endpoints truthful for users who
// never come back.
func PollSuspensions(ctx context.Context, db *gorm.DB, pollInterval time.Duration) {
	log.Println("Starting suspension polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Suspension polling stopped.")
			return
		case <-ticker.C:
			LiftExpired(db)
		}
	}
}

func LiftExpired(db *gorm.DB) {
	now := time.Now().UTC()
	res := db.Model(&models.User{}).
		Where("status = ? AND disabled_end IS NOT NULL AND disabled_end <= ?", models.UserStatusDisabled, now).
		Updates(map[string]interface{}{
			"status":         models.UserStatusEnabled,
			"disabled_start": nil,
			"disabled_end":   nil,
			"updated_at":     now,
		})
	if res.Error != nil {
		log.Printf("[Suspensions] DB error: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("✅ Lifted %d expired suspensions", res.RowsAffected)
	}
}

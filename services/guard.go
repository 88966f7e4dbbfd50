package services

import (
	"strings"

	"gorm.io/gorm"

	"lootopia-service/apperr"
)

// Dependent declares a child table whose rows block deletion of the parent.
type Dependent struct {
	Model  func() interface{}
	Column string
	Label  string
}

// checkDependents refuses deletion while any dependent row exists, naming
// every blocking child table in the message.
func checkDependents(tx *gorm.DB, cfg EntityConfig, id uint) error {
	var blocking []string
	for _, dep := range cfg.Dependents {
		var count int64
		if err := tx.Model(dep.Model()).Where(dep.Column+" = ?", id).Count(&count).Error; err != nil {
			return apperr.FromDB(err)
		}
		if count > 0 {
			blocking = append(blocking, dep.Label)
		}
	}
	if len(blocking) > 0 {
		return apperr.Conflict("cannot delete: still referenced by %s", strings.Join(blocking, ", "))
	}
	return nil
}

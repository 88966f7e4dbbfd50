package services

import (
	"reflect"

	"gorm.io/gorm"

	"lootopia-service/apperr"
)

// Reference declares one foreign key of an entity: which field holds it,
// which model it must resolve against and an optional extra predicate
// (e.g. the referenced user must have role=partner, the referenced offer
// must still be active).
type Reference struct {
	Field   string
	Model   func() interface{}
	Where   string
	Args    []interface{}
	Message string
}

// checkReferences confirms every foreign key present and non-null in the
// payload resolves to an existing row. On update (existing != nil) only
// changed keys are checked, so a record may keep a now-stale reference it
// already had.
func checkReferences(tx *gorm.DB, refs []Reference, payload, existing map[string]interface{}) error {
	for _, ref := range refs {
		value, present := payload[ref.Field]
		if !present || value == nil {
			continue
		}
		if existing != nil && reflect.DeepEqual(value, existing[ref.Field]) {
			continue
		}
		q := tx.Model(ref.Model()).Where("id = ?", value)
		if ref.Where != "" {
			q = q.Where(ref.Where, ref.Args...)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return apperr.FromDB(err)
		}
		if count == 0 {
			return apperr.NotFound("%s", ref.Message)
		}
	}
	return nil
}

// Unique declares a single-column uniqueness constraint checked explicitly
// before persistence (the DB index stays as the race backstop).
type Unique struct {
	Field   string
	Message string
}

func checkUniques(tx *gorm.DB, cfg EntityConfig, payload map[string]interface{}, excludeID uint) error {
	for _, u := range cfg.Uniques {
		value, present := payload[u.Field]
		if !present || value == nil {
			continue
		}
		q := tx.Model(cfg.New()).Where(u.Field+" = ?", value)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return apperr.FromDB(err)
		}
		if count > 0 {
			return apperr.Conflict("%s", u.Message)
		}
	}
	return nil
}

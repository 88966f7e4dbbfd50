package services

import (
	"encoding/json"
	"reflect"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lootopia-service/apperr"
	"lootopia-service/schema"
)

// EntityConfig wires one entity kind into the shared mutation pipeline:
// declarative schema, reference checks, uniqueness pre-checks, deletion
// dependents and the entity-specific hooks.
type EntityConfig struct {
	Kind     string
	New      func() interface{}
	NewSlice func() interface{}
	Schema   schema.Schema
	Refs     []Reference
	Uniques  []Unique
	// Filters maps allowed query parameters to columns for list endpoints.
	Filters    map[string]string
	Dependents []Dependent
	// Check runs on every validated payload (the merged record on update);
	// CheckCreate runs on create only, for rules that cannot survive a merge
	// (e.g. password presence, which never round-trips through JSON).
	Check       func(payload map[string]interface{}) []apperr.FieldViolation
	CheckCreate func(payload map[string]interface{}) []apperr.FieldViolation
	// PostDecode runs after the payload is decoded into the model, inside the
	// transaction (password hashing, slug derivation).
	PostDecode func(tx *gorm.DB, rec interface{}, payload map[string]interface{}) error
	// Persist replaces the plain insert when creation has side effects
	// (wallet movement on transactions).
	Persist func(tx *gorm.DB, rec interface{}) error
	// PreDelete refuses deletions beyond the dependent-row guard
	// (last partner color).
	PreDelete func(tx *gorm.DB, rec interface{}) error
	// SoftDelete replaces the row removal (user disablement).
	SoftDelete func(tx *gorm.DB, rec interface{}) error
	Preloads   []string
	// Immutable kinds (transactions) get no PUT/DELETE routes: rewriting a
	// settled transfer would desync the wallets it moved.
	Immutable bool
}

// CrudService serves one entity kind over GET/POST/PUT/DELETE with the
// uniform pipeline: validate, check references, apply defaults, persist,
// reload for the response.
type CrudService struct {
	DB  *gorm.DB
	cfg EntityConfig
}

func NewCrudService(db *gorm.DB, cfg EntityConfig) *CrudService {
	return &CrudService{DB: db, cfg: cfg}
}

func (s *CrudService) Kind() string    { return s.cfg.Kind }
func (s *CrudService) Immutable() bool { return s.cfg.Immutable }

// Get returns a single record when ?id= is given, otherwise the filtered list.
func (s *CrudService) Get(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		id, err := parseID(c)
		if err != nil {
			return apperr.Respond(c, err)
		}
		rec := s.cfg.New()
		if err := s.preload(s.DB).First(rec, id).Error; err != nil {
			return apperr.Respond(c, apperr.FromDB(err))
		}
		return c.JSON(rec)
	}

	q := s.preload(s.DB)
	for param, column := range s.cfg.Filters {
		if v := c.Query(param); v != "" {
			q = q.Where(column+" = ?", v)
		}
	}
	list := s.cfg.NewSlice()
	if err := q.Order("id").Find(list).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}
	return c.JSON(list)
}

func (s *CrudService) Create(c *fiber.Ctx) error {
	payload, err := parseBody(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	s.cfg.Schema.Strip(payload)

	violations := s.cfg.Schema.Validate(payload)
	if s.cfg.CheckCreate != nil {
		violations = append(violations, s.cfg.CheckCreate(payload)...)
	}
	if s.cfg.Check != nil {
		violations = append(violations, s.cfg.Check(payload)...)
	}
	if len(violations) > 0 {
		return apperr.Respond(c, apperr.Validation(violations))
	}

	rec := s.cfg.New()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, s.cfg.Refs, payload, nil); err != nil {
			return err
		}
		if err := checkUniques(tx, s.cfg, payload, 0); err != nil {
			return err
		}
		s.cfg.Schema.ApplyDefaults(payload)
		if err := decodeInto(payload, rec); err != nil {
			return apperr.Internal(err)
		}
		if s.cfg.PostDecode != nil {
			if err := s.cfg.PostDecode(tx, rec, payload); err != nil {
				return err
			}
		}
		if s.cfg.Persist != nil {
			return s.cfg.Persist(tx, rec)
		}
		if err := tx.Create(rec).Error; err != nil {
			return apperr.FromDB(err)
		}
		return nil
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	fresh := s.cfg.New()
	if err := s.preload(s.DB).First(fresh, recordID(rec)).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}
	return c.Status(fiber.StatusCreated).JSON(fresh)
}

// Update merges the provided fields over the stored record, revalidates the
// merged result and saves it with updated_at set. Reference checks only run
// for foreign keys whose value actually changed.
func (s *CrudService) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	payload, err := parseBody(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	s.cfg.Schema.Strip(payload)

	existing := s.cfg.New()
	if err := s.DB.First(existing, id).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}
	existingMap, err := toMap(existing)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	merged := make(map[string]interface{}, len(existingMap)+len(payload))
	for k, v := range existingMap {
		merged[k] = v
	}
	for k, v := range payload {
		merged[k] = v
	}

	violations := s.cfg.Schema.Validate(merged)
	if s.cfg.Check != nil {
		violations = append(violations, s.cfg.Check(merged)...)
	}
	if len(violations) > 0 {
		return apperr.Respond(c, apperr.Validation(violations))
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, s.cfg.Refs, payload, existingMap); err != nil {
			return err
		}
		if err := checkUniques(tx, s.cfg, payload, id); err != nil {
			return err
		}
		merged["updated_at"] = time.Now().UTC()
		if err := decodeInto(merged, existing); err != nil {
			return apperr.Internal(err)
		}
		if s.cfg.PostDecode != nil {
			if err := s.cfg.PostDecode(tx, existing, payload); err != nil {
				return err
			}
		}
		if err := tx.Save(existing).Error; err != nil {
			return apperr.FromDB(err)
		}
		return nil
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	fresh := s.cfg.New()
	if err := s.preload(s.DB).First(fresh, id).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}
	return c.JSON(fresh)
}

// Delete removes the record after the deletion guard passes and echoes the
// full prior state back for audit display. Soft-deleting kinds (users) update
// in place instead of removing the row.
func (s *CrudService) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	existing := s.cfg.New()
	if err := s.DB.First(existing, id).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}
	prior, err := toMap(existing)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := checkDependents(tx, s.cfg, id); err != nil {
			return err
		}
		if s.cfg.PreDelete != nil {
			if err := s.cfg.PreDelete(tx, existing); err != nil {
				return err
			}
		}
		if s.cfg.SoftDelete != nil {
			return s.cfg.SoftDelete(tx, existing)
		}
		if err := tx.Delete(existing).Error; err != nil {
			return apperr.FromDB(err)
		}
		return nil
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(prior)
}

func (s *CrudService) preload(db *gorm.DB) *gorm.DB {
	q := db.Model(s.cfg.New())
	for _, name := range s.cfg.Preloads {
		q = q.Preload(name)
	}
	return q
}

func parseBody(c *fiber.Ctx) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	if len(c.Body()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return nil, apperr.Validation([]apperr.FieldViolation{
			{Field: "body", Message: "body must be a JSON object"},
		})
	}
	return payload, nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Query("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation([]apperr.FieldViolation{
			{Field: "id", Message: "id must be a positive integer"},
		})
	}
	return uint(id), nil
}

// toMap and decodeInto round-trip records through JSON so the pipeline works
// on plain field maps while persistence stays on the typed models.
func toMap(rec interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeInto(payload map[string]interface{}, rec interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, rec)
}

func recordID(rec interface{}) uint {
	v := reflect.ValueOf(rec).Elem().FieldByName("ID")
	if !v.IsValid() {
		return 0
	}
	return uint(v.Uint())
}

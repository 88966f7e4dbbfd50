package services

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lootopia-service/apperr"
)

// AssociationConfig wires one many-to-many join kind (user↔badge,
// hunt↔artifact, ...) into the shared association manager.
type AssociationConfig struct {
	Kind     string
	New      func() interface{}
	NewSlice func() interface{}
	// FieldA/FieldB are the pair columns; the (A,B) pair is unique.
	FieldA, FieldB string
	RefA, RefB     Reference
	Filters        map[string]string
	Preloads       []string
	// Resolve rewrites the payload before checks run: hunts_participants
	// accepts email|username instead of a numeric user id.
	Resolve func(tx *gorm.DB, payload map[string]interface{}) error
	// PreCreate refuses the association for state reasons (closed hunt,
	// full hunt) before the duplicate check.
	PreCreate func(tx *gorm.DB, payload map[string]interface{}) error
	// Updatable lists the mutable extra columns (the participant excluded
	// flag); kinds with none get no PUT route.
	Updatable []string
	Conflict  string
}

// AssociationService enforces, in order: both sides exist (with their
// predicates), the pair is not already associated (409 echoing the existing
// row), then inserts with created_at set.
type AssociationService struct {
	DB  *gorm.DB
	cfg AssociationConfig
}

func NewAssociationService(db *gorm.DB, cfg AssociationConfig) *AssociationService {
	return &AssociationService{DB: db, cfg: cfg}
}

func (s *AssociationService) Kind() string    { return s.cfg.Kind }
func (s *AssociationService) Updatable() bool { return len(s.cfg.Updatable) > 0 }

func (s *AssociationService) Get(c *fiber.Ctx) error {
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

func (s *AssociationService) Create(c *fiber.Ctx) error {
	payload, err := parseBody(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	rec := s.cfg.New()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if s.cfg.Resolve != nil {
			if err := s.cfg.Resolve(tx, payload); err != nil {
				return err
			}
		}
		if err := s.requirePair(payload); err != nil {
			return err
		}
		if err := checkReferences(tx, []Reference{s.cfg.RefA, s.cfg.RefB}, payload, nil); err != nil {
			return err
		}
		if s.cfg.PreCreate != nil {
			if err := s.cfg.PreCreate(tx, payload); err != nil {
				return err
			}
		}

		existing := s.cfg.New()
		err := s.preload(tx).
			Where(s.cfg.FieldA+" = ?", payload[s.cfg.FieldA]).
			Where(s.cfg.FieldB+" = ?", payload[s.cfg.FieldB]).
			First(existing).Error
		if err == nil {
			return apperr.ConflictWith(existing, "%s", s.cfg.Conflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.FromDB(err)
		}

		row := map[string]interface{}{
			s.cfg.FieldA: payload[s.cfg.FieldA],
			s.cfg.FieldB: payload[s.cfg.FieldB],
		}
		for _, field := range s.cfg.Updatable {
			if v, ok := payload[field]; ok {
				row[field] = v
			}
		}
		if err := decodeInto(row, rec); err != nil {
			return apperr.Internal(err)
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

// Update mutates the extra columns only (the participant excluded flag);
// the pair itself is immutable.
func (s *AssociationService) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	payload, err := parseBody(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	existing := s.cfg.New()
	if err := s.DB.First(existing, id).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}

	changes := map[string]interface{}{}
	for _, field := range s.cfg.Updatable {
		if v, ok := payload[field]; ok {
			changes[field] = v
		}
	}
	if len(changes) == 0 {
		return apperr.Respond(c, apperr.Validation([]apperr.FieldViolation{
			{Field: "body", Message: "no updatable field provided"},
		}))
	}
	changes["updated_at"] = time.Now().UTC()

	if err := s.DB.Model(existing).Updates(changes).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}

	fresh := s.cfg.New()
	if err := s.preload(s.DB).First(fresh, id).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}
	return c.JSON(fresh)
}

func (s *AssociationService) Delete(c *fiber.Ctx) error {
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
	if err := s.DB.Delete(existing).Error; err != nil {
		return apperr.Respond(c, apperr.FromDB(err))
	}
	return c.JSON(prior)
}

func (s *AssociationService) requirePair(payload map[string]interface{}) error {
	var violations []apperr.FieldViolation
	for _, field := range []string{s.cfg.FieldA, s.cfg.FieldB} {
		v, ok := payload[field]
		if !ok || v == nil {
			violations = append(violations, apperr.FieldViolation{Field: field, Message: field + " is required"})
			continue
		}
		if _, ok := v.(float64); !ok {
			violations = append(violations, apperr.FieldViolation{Field: field, Message: field + " must be a number"})
		}
	}
	if len(violations) > 0 {
		return apperr.Validation(violations)
	}
	return nil
}

func (s *AssociationService) preload(db *gorm.DB) *gorm.DB {
	q := db.Model(s.cfg.New())
	for _, name := range s.cfg.Preloads {
		q = q.Preload(name)
	}
	return q
}

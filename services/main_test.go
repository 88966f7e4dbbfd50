package services_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lootopia-service/handlers"
	"lootopia-service/models"
	"lootopia-service/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// one in-memory database per test, one connection so it stays alive
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Map{},
		&models.Hunt{},
		&models.Cache{},
		&models.Collection{},
		&models.Theme{},
		&models.Illustration{},
		&models.Artifact{},
		&models.Badge{},
		&models.Offer{},
		&models.OtherReward{},
		&models.Transaction{},
		&models.PartnerColor{},
		&models.FaqEntry{},
		&models.HelpRequest{},
		&models.UserBadge{},
		&models.UserArtifact{},
		&models.UserOffer{},
		&models.UserOtherReward{},
		&models.HuntArtifact{},
		&models.HuntParticipant{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *services.Catalog) {
	t.Helper()
	db := newTestDB(t)
	cat := services.NewCatalog(db)
	app := fiber.New()
	handlers.SetupRoutes(app, cat)
	return app, db, cat
}

// doJSON performs a request against the app and decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	status, raw := doRaw(t, app, method, path, body)
	if len(raw) == 0 {
		return status, nil
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, raw, err)
	}
	return status, out
}

func doJSONList(t *testing.T, app *fiber.App, path string) (int, []interface{}) {
	t.Helper()
	status, raw := doRaw(t, app, "GET", path, nil)
	var out []interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("GET %s: decode list %q: %v", path, raw, err)
	}
	return status, out
}

func doRaw(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("%s %s: read body: %v", method, path, err)
	}
	return resp.StatusCode, buf.Bytes()
}

// doLogin posts credentials and returns the decoded body plus the Set-Cookie header.
func doLogin(t *testing.T, app *fiber.App, email, password string) (int, map[string]interface{}, string) {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{"email": email, "password": password})
	if err != nil {
		t.Fatalf("marshal credentials: %v", err)
	}
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	defer resp.Body.Close()
	out := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("POST /login: decode response: %v", err)
	}
	return resp.StatusCode, out, resp.Header.Get("Set-Cookie")
}

const testPassword = "hunter2hunter2"

func seedUser(t *testing.T, db *gorm.DB, email, role string, status int) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:    email,
		Username: email[:len(email)-len("@lootopia.test")],
		Password: string(hash),
		Role:     role,
		Status:   status,
		Money:    100,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedPartner(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	return seedUser(t, db, "partner@lootopia.test", models.RolePartner, models.UserStatusEnabled)
}

func seedAdmin(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	return seedUser(t, db, "admin@lootopia.test", models.RoleAdmin, models.UserStatusEnabled)
}

func seedMap(t *testing.T, db *gorm.DB, partnerID uint) models.Map {
	t.Helper()
	m := models.Map{Name: "Paris", Scale: 1, Latitude: 48.8566, Longitude: 2.3522, PartnerID: partnerID}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed map: %v", err)
	}
	return m
}

func seedHunt(t *testing.T, db *gorm.DB, partnerID uint, status int) models.Hunt {
	t.Helper()
	h := models.Hunt{
		Title:           "Chasse au trésor",
		World:           models.HuntWorldReal,
		Mode:            models.HuntModePublic,
		MaxParticipants: 10,
		ChatEnabled:     true,
		MapID:           1,
		SearchDelay:     "00:01:00",
		PartnerID:       partnerID,
		Status:          status,
	}
	if err := db.Create(&h).Error; err != nil {
		t.Fatalf("seed hunt: %v", err)
	}
	return h
}

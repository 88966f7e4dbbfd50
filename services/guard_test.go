package services_test

import (
	"fmt"
	"testing"

	"lootopia-service/models"
)

func TestMapDeleteBlockedByHunt(t *testing.T) {
	app, db, _ := newTestApp(t)
	partner := seedPartner(t, db)
	m := seedMap(t, db, partner.ID)

	hunt := seedHunt(t, db, partner.ID, models.HuntStatusActive)
	if err := db.Model(&hunt).Update("map_id", m.ID).Error; err != nil {
		t.Fatalf("attach hunt to map: %v", err)
	}

	status, body := doJSON(t, app, "DELETE", fmt.Sprintf("/maps?id=%d", m.ID), nil)
	if status != 409 {
		t.Fatalf("expected 409 for referenced map, got %d (%v)", status, body)
	}

	var mapCount, huntCount int64
	db.Model(&models.Map{}).Count(&mapCount)
	db.Model(&models.Hunt{}).Count(&huntCount)
	if mapCount != 1 || huntCount != 1 {
		t.Errorf("refused deletion mutated rows: maps=%d hunts=%d", mapCount, huntCount)
	}
}

func TestBadgeDeleteBlockedByAward(t *testing.T) {
	app, db, _ := newTestApp(t)
	admin := seedAdmin(t, db)

	badge := models.Badge{Name: "Première chasse", AdminID: admin.ID, Status: 1}
	if err := db.Create(&badge).Error; err != nil {
		t.Fatalf("seed badge: %v", err)
	}
	award := models.UserBadge{UserID: admin.ID, BadgeID: badge.ID}
	if err := db.Create(&award).Error; err != nil {
		t.Fatalf("seed award: %v", err)
	}

	status, body := doJSON(t, app, "DELETE", fmt.Sprintf("/badges?id=%d", badge.ID), nil)
	if status != 409 {
		t.Fatalf("expected 409 for awarded badge, got %d (%v)", status, body)
	}
}

func TestHuntDeleteBlockedByParticipants(t *testing.T) {
	app, db, _ := newTestApp(t)
	partner := seedPartner(t, db)
	player := seedUser(t, db, "player@lootopia.test", models.RoleUser, models.UserStatusEnabled)
	hunt := seedHunt(t, db, partner.ID, models.HuntStatusActive)

	participant := models.HuntParticipant{HuntID: hunt.ID, UserID: player.ID}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("seed participant: %v", err)
	}

	status, body := doJSON(t, app, "DELETE", fmt.Sprintf("/hunts?id=%d", hunt.ID), nil)
	if status != 409 {
		t.Fatalf("expected 409 for hunt with participants, got %d (%v)", status, body)
	}
}

func TestDeleteEchoesPriorState(t *testing.T) {
	app, db, _ := newTestApp(t)
	admin := seedAdmin(t, db)

	badge := models.Badge{Name: "Exploratrice", AdminID: admin.ID, Status: 1}
	if err := db.Create(&badge).Error; err != nil {
		t.Fatalf("seed badge: %v", err)
	}

	status, body := doJSON(t, app, "DELETE", fmt.Sprintf("/badges?id=%d", badge.ID), nil)
	if status != 200 {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}
	if body["name"] != "Exploratrice" {
		t.Errorf("deleted record state not echoed back: %v", body)
	}

	var count int64
	db.Model(&models.Badge{}).Count(&count)
	if count != 0 {
		t.Errorf("badge row still present after delete")
	}
}

func TestPartnerColorLastColorRefused(t *testing.T) {
	app, db, _ := newTestApp(t)
	partner := seedPartner(t, db)

	only := models.PartnerColor{PartnerID: partner.ID, HexColor: "#AA00FF"}
	if err := db.Create(&only).Error; err != nil {
		t.Fatalf("seed color: %v", err)
	}

	status, body := doJSON(t, app, "DELETE", fmt.Sprintf("/partner_colors?id=%d", only.ID), nil)
	if status != 409 {
		t.Fatalf("expected 409 for last color, got %d (%v)", status, body)
	}

	second := models.PartnerColor{PartnerID: partner.ID, HexColor: "#00FF00"}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("seed second color: %v", err)
	}

	status, body = doJSON(t, app, "DELETE", fmt.Sprintf("/partner_colors?id=%d", only.ID), nil)
	if status != 200 {
		t.Fatalf("expected 200 with two colors, got %d (%v)", status, body)
	}

	var remaining []models.PartnerColor
	db.Find(&remaining)
	if len(remaining) != 1 || remaining[0].HexColor != "#00FF00" {
		t.Errorf("remaining palette wrong: %v", remaining)
	}
}

func TestPartnerColorRejectsBadFormat(t *testing.T) {
	app, db, _ := newTestApp(t)
	partner := seedPartner(t, db)

	status, body := doJSON(t, app, "POST", "/partner_colors", map[string]interface{}{
		"partner_id": partner.ID,
		"hex_color":  "bleu",
	})
	if status != 400 {
		t.Fatalf("expected 400 for malformed color, got %d (%v)", status, body)
	}
}

func TestPartnerColorRequiresPartnerRole(t *testing.T) {
	app, db, _ := newTestApp(t)
	player := seedUser(t, db, "player@lootopia.test", models.RoleUser, models.UserStatusEnabled)

	status, body := doJSON(t, app, "POST", "/partner_colors", map[string]interface{}{
		"partner_id": player.ID,
		"hex_color":  "#123ABC",
	})
	if status != 404 {
		t.Fatalf("expected 404 for non-partner owner, got %d (%v)", status, body)
	}
}

func TestClosedHuntRefusesCaches(t *testing.T) {
	app, db, _ := newTestApp(t)
	partner := seedPartner(t, db)
	closed := seedHunt(t, db, partner.ID, models.HuntStatusClosed)

	status, body := doJSON(t, app, "POST", "/caches", map[string]interface{}{
		"partner_id": partner.ID,
		"hunt_id":    closed.ID,
		"latitude":   48.85,
		"longitude":  2.35,
	})
	if status != 409 {
		t.Fatalf("expected 409 creating a cache on a closed hunt, got %d (%v)", status, body)
	}
	var count int64
	db.Model(&models.Cache{}).Count(&count)
	if count != 0 {
		t.Errorf("no cache row should exist, found %d", count)
	}

	// Attaching an existing cache to the closed hunt is refused too.
	cache := models.Cache{PartnerID: partner.ID, Latitude: 48.85, Longitude: 2.35}
	if err := db.Create(&cache).Error; err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	status, body = doJSON(t, app, "PUT", fmt.Sprintf("/caches?id=%d", cache.ID),
		map[string]interface{}{"hunt_id": closed.ID})
	if status != 409 {
		t.Fatalf("expected 409 attaching a cache to a closed hunt, got %d (%v)", status, body)
	}

	// An open hunt accepts the same attachment.
	open := seedHunt(t, db, partner.ID, models.HuntStatusActive)
	status, body = doJSON(t, app, "PUT", fmt.Sprintf("/caches?id=%d", cache.ID),
		map[string]interface{}{"hunt_id": open.ID})
	if status != 200 {
		t.Fatalf("expected 200 attaching a cache to an open hunt, got %d (%v)", status, body)
	}
}

package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"

	"lootopia-service/middleware"
	"lootopia-service/models"
)

// AuthService issues the session cookie on login. Role gating lives at the
// gateway; this service only authenticates credentials and enforces the
// account status and ban window.
type AuthService struct {
	DB *gorm.DB
	fr *message.Printer
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, fr: message.NewPrinter(language.French)}
}

func (s *AuthService) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil || body.Email == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
	}

	var user models.User
	if err := s.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	now := time.Now()
	if user.Suspended(now) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": s.fr.Sprintf("Votre compte est suspendu jusqu'au %s",
				user.DisabledEnd.Format("02/01/2006 15:04")),
		})
	}
	if user.Status == models.UserStatusDisabled {
		if user.DisabledEnd == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": s.fr.Sprintf("Votre compte est désactivé"),
			})
		}
		// Ban window elapsed: lift the suspension and let the login proceed.
		updates := map[string]interface{}{
			"status":         models.UserStatusEnabled,
			"disabled_start": nil,
			"disabled_end":   nil,
			"updated_at":     now.UTC(),
		}
		if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		user.Status = models.UserStatusEnabled
		user.DisabledStart = nil
		user.DisabledEnd = nil
	}

	middleware.IssueSession(c, &user)
	return c.JSON(fiber.Map{"user": user})
}

func (s *AuthService) Logout(c *fiber.Ctx) error {
	middleware.ClearSession(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}

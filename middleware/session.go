package middleware

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lootopia-service/models"
)

const SessionCookie = "lootopia_session"

// SessionClaims is the identity blob held client-side in the HTTP-only
// session cookie. The token is opaque; nothing server-side is stored.
type SessionClaims struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Username     string `json:"username"`
	AppearanceID *uint  `json:"appearance_id,omitempty"`
	Token        string `json:"token"`
}

func IssueSession(c *fiber.Ctx, u *models.User) {
	claims := SessionClaims{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		Username:     u.Username,
		AppearanceID: u.AppearanceID,
		Token:        uuid.NewString(),
	}
	raw, _ := json.Marshal(claims)
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func ClearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func ResolveSession(c *fiber.Ctx) (*SessionClaims, bool) {
	raw := c.Cookies(SessionCookie)
	if raw == "" {
		return nil, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, false
	}
	var claims SessionClaims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, false
	}
	return &claims, true
}

// SessionMiddleware attaches the resolved claims to the request context and
// logs the acting user. It never rejects: role gating lives at the gateway.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, ok := ResolveSession(c); ok {
			c.Locals("session", claims)
			log.Printf("👤 [SESSION] user=%d role=%s | %s %s", claims.ID, claims.Role, c.Method(), c.Path())
		}
		return c.Next()
	}
}

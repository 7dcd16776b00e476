package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultHeader carries the API key.
const DefaultHeader = "X-API-Key"

// Config configures the API key middleware.
type Config struct {
	// ApiKey is the shared secret. Empty disables the check.
	ApiKey string
	// Header is the request header holding the key; DefaultHeader when empty.
	Header string
	// PublicPaths are served without a key.
	PublicPaths []string
}

// New returns a middleware rejecting requests without the configured API key.
// The key is read from the configured header, then from a Bearer
// Authorization header.
func New(cfg Config) fiber.Handler {
	header := cfg.Header
	if header == "" {
		header = DefaultHeader
	}
	expected := []byte(cfg.ApiKey)

	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" || isPublic(c.Path(), cfg.PublicPaths) {
			return c.Next()
		}

		key := c.Get(header)
		if key == "" {
			key = strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		}
		if key == "" || subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or missing API key"})
		}
		return c.Next()
	}
}

func isPublic(path string, public []string) bool {
	for _, p := range public {
		if path == p {
			return true
		}
	}
	return false
}

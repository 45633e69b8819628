package auth

import (
	"crypto/subtle"
	"fmt"
	"strconv"

	"store-ops/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

// Request headers.
const (
	HeaderAPIKey      = "X-API-Key"
	HeaderUserID      = "X-User-ID"
	HeaderRoleID      = "X-Role-ID"
	HeaderAccessKeyID = "X-Access-Key-ID"
)

const actorKey = "actor"

// Config holds the middleware settings.
type Config struct {
	// ApiKey is the shared secret. Empty disables the key check.
	ApiKey string
	// Skip lists paths served without a key.
	Skip []string
}

// New returns a middleware that checks the API key and resolves the acting user.
// The actor headers are optional here; handlers that need an actor call ActorFrom.
func New(cfg Config) fiber.Handler {
	skip := make(map[string]struct{}, len(cfg.Skip))
	for _, p := range cfg.Skip {
		skip[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}

		if cfg.ApiKey != "" {
			key := c.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid or missing API key",
				})
			}
		}

		actor, err := parseActor(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// ActorFrom returns the actor resolved by the middleware.
// ok is false when no user id was supplied.
func ActorFrom(c *fiber.Ctx) (reconcile.Actor, bool) {
	actor, ok := c.Locals(actorKey).(reconcile.Actor)
	if !ok || actor.UserID == 0 {
		return reconcile.Actor{}, false
	}
	return actor, true
}

func parseActor(c *fiber.Ctx) (reconcile.Actor, error) {
	var actor reconcile.Actor
	for _, h := range []struct {
		name string
		dst  *uint
	}{
		{HeaderUserID, &actor.UserID},
		{HeaderRoleID, &actor.RoleID},
		{HeaderAccessKeyID, &actor.AccessKeyID},
	} {
		raw := c.Get(h.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return reconcile.Actor{}, fmt.Errorf("invalid %s header %q", h.name, raw)
		}
		*h.dst = uint(v)
	}
	return actor, nil
}

package auth

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(actor)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestNew(t *testing.T) {
	app := newApp(Config{ApiKey: "secret", Skip: []string{"/metrics"}})

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		status  int
		body    string
	}{
		{"MissingKey", "/whoami", nil, fiber.StatusUnauthorized, ""},
		{"WrongKey", "/whoami", map[string]string{HeaderAPIKey: "nope"}, fiber.StatusUnauthorized, ""},
		{"SkippedPath", "/metrics", nil, fiber.StatusOK, "ok"},
		{"NoActor", "/whoami", map[string]string{HeaderAPIKey: "secret"}, fiber.StatusNoContent, ""},
		{"BadActor", "/whoami", map[string]string{HeaderAPIKey: "secret", HeaderUserID: "abc"}, fiber.StatusBadRequest, ""},
		{
			"Actor", "/whoami",
			map[string]string{HeaderAPIKey: "secret", HeaderUserID: "7", HeaderRoleID: "3", HeaderAccessKeyID: "11"},
			fiber.StatusOK,
			`{"user_id":7,"role_id":3,"access_key_id":11}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.body != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.body, string(body))
			}
		})
	}
}

func TestNew_KeyDisabled(t *testing.T) {
	resp, err := newApp(Config{}).Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/noteduco342/readgroup-backend/internal/logging"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct{}

func (stubAuth) Authenticate(token string) (*models.Identity, error) {
	if token == "good" {
		return &models.Identity{ID: "u1", Username: "alice"}, nil
	}
	return nil, errors.New("bad token")
}

func newGatedApp(reached *bool) *fiber.App {
	app := fiber.New()
	app.Get("/private", AuthRequired(stubAuth{}), func(c *fiber.Ctx) error {
		*reached = true
		id := Identity(c)
		return c.JSON(id)
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantReached bool
	}{
		{"No header", "", fiber.StatusUnauthorized, false},
		{"Bad token", "Bearer nope", fiber.StatusForbidden, false},
		{"Malformed header", "Token good", fiber.StatusForbidden, false},
		{"Bearer without token", "Bearer", fiber.StatusForbidden, false},
		{"Valid token", "Bearer good", fiber.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			app := newGatedApp(&reached)

			req := httptest.NewRequest("GET", "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantReached, reached)

			if tt.wantReached {
				var id models.Identity
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&id))
				assert.Equal(t, "u1", id.ID)
				assert.Equal(t, "alice", id.Username)
			}
		})
	}
}

func TestAuthUnless(t *testing.T) {
	app := fiber.New()
	skip := func(c *fiber.Ctx) bool { return c.Query("open") == "1" }
	app.Get("/maybe", AuthUnless(stubAuth{}, skip), func(c *fiber.Ctx) error {
		if Identity(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString("authenticated")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/maybe?open=1", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "anonymous", string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/maybe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/maybe", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "authenticated", string(body))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "debug")

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(RequestLogger(base))
	app.Get("/ok", func(c *fiber.Ctx) error {
		logging.FromContext(c.UserContext()).Info("inside handler")
		return c.SendString("ok")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)

	var inside, done, failed map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &done))
	require.NoError(t, json.Unmarshal(lines[2], &failed))

	assert.Equal(t, "inside handler", inside["msg"])
	assert.NotEmpty(t, inside["request_id"])
	assert.Equal(t, "/ok", done["path"])
	assert.Equal(t, float64(200), done["status"])
	assert.Equal(t, "ERROR", failed["level"])
	assert.Equal(t, float64(fiber.StatusTeapot), failed["status"])
}

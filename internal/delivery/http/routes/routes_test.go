package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoutes struct{ path string }

func (s stubRoutes) RegisterRoutes(r fiber.Router) {
	r.Get(s.path, func(c fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })
}

func TestRegistry_MountsStreamUnderAPIGroup(t *testing.T) {
	app := fiber.New()
	(&Registry{Stream: stubRoutes{path: "/ws"}}).Register(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/datatrail/ws", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	r.Register(fiber.New())
	(&Registry{}).Register(nil)
}

package handler

import (
	"context"
	"time"

	"datatrail/internal/delivery/http/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler reports liveness. The database is required for a 200; a
// missing cache only degrades the report.
func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Handle)
}

type healthStatus struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func (h *HealthHandler) Handle(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	st := healthStatus{Database: probe(ctx, h.db), Cache: probe(ctx, h.cache)}
	if st.Database != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, st)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}

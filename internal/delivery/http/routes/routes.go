package routes

import (
	"datatrail/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type routeRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

// Registry mounts the service endpoints. Nil handlers are skipped so tests
// can register a subset.
type Registry struct {
	Health      *handler.HealthHandler
	Metrics     *handler.MetricsHandler
	Products    *handler.ProductHandler
	HealthCheck *handler.HealthCheckHandler
	Lineage     *handler.LineageHandler
	Stream      routeRegistrar
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app.Group("/datatrail"))
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Metrics != nil {
		r.Metrics.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(api fiber.Router) {
	if r.Products != nil {
		r.Products.RegisterRoutes(api)
	}
	if r.HealthCheck != nil {
		r.HealthCheck.RegisterRoutes(api)
	}
	if r.Lineage != nil {
		r.Lineage.RegisterRoutes(api)
	}
	if r.Stream != nil {
		r.Stream.RegisterRoutes(api)
	}
}

package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"datatrail/internal/config"
	"datatrail/internal/delivery/http/handler"
	"datatrail/internal/delivery/http/middleware"
	"datatrail/internal/delivery/http/routes"
	"datatrail/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Config, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects the backing services, starts the background workers and
// returns a cleanup that stops them.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init container: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)

	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(cors.New(cors.Config{AllowOrigins: cfg.App.CORSAllowOrigins}))
	app.Use(middleware.NewAccessLogMiddleware(logger, "/health", "/metrics").Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	var dbPinger, cachePinger handler.Pinger
	if c.DB != nil {
		dbPinger = c.DB
	}
	if c.Cache != nil && c.Cache.Available() {
		cachePinger = c.Cache
	}

	r := &routes.Registry{
		Health:      handler.NewHealthHandler(dbPinger, cachePinger),
		Metrics:     handler.NewMetricsHandler(c.Registry),
		Products:    handler.NewProductHandler(c.ProductUC, c.MappingUC),
		HealthCheck: handler.NewHealthCheckHandler(c.HealthUC, c.Cache),
		Lineage:     handler.NewLineageHandler(c.HighlightUC),
		Stream:      ws.NewHandler(c.Hub, c.Logger),
	}
	r.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

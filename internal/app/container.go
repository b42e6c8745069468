package app

import (
	"context"
	"log"
	"time"

	"datatrail/internal/config"
	"datatrail/internal/database"
	dbpostgres "datatrail/internal/database/postgres"
	"datatrail/internal/infrastructure/cache"
	"datatrail/internal/metrics"
	"datatrail/internal/repository"
	"datatrail/internal/usecase"
	"datatrail/internal/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Container struct {
	Config   config.Config
	Logger   *log.Logger
	DB       database.DB
	Cache    *cache.Redis
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Hub      *ws.Hub

	Products     repository.ProductRepository
	Observations repository.ObservationRepository

	ProductUC   *usecase.Product
	HealthUC    *usecase.HealthCheck
	MappingUC   *usecase.ProductMapping
	HighlightUC *usecase.Highlight
	Warmer      *usecase.HealthWarmer
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}
	c.wire(cache.NewRedis(cfg.Redis, logger))
	return c, nil
}

// NewContainerWithDB wires every component around an existing database and
// cache.
func NewContainerWithDB(cfg config.Config, db database.DB, rc *cache.Redis, logger *log.Logger) *Container {
	if logger == nil {
		logger = log.Default()
	}
	if rc == nil {
		rc = cache.NewNoop()
	}
	c := &Container{Config: cfg, Logger: logger, DB: db}
	c.wire(rc)
	return c
}

func (c *Container) wire(rc *cache.Redis) {
	c.Cache = rc

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c.Metrics = metrics.New(c.Registry)

	c.Hub = ws.NewHub(c.Logger)

	c.Products = repository.NewPostgresProductRepository(c.DB)
	c.Observations = repository.NewPostgresObservationRepository(c.DB)

	hc := c.Config.HealthCheck
	c.ProductUC = usecase.NewProductUsecase(c.Products)
	c.HealthUC = usecase.NewHealthCheckUsecase(c.Products, c.Observations, c.Cache, hubNotifier{hub: c.Hub}, c.Metrics, hc.CacheTTL, c.Logger)
	c.MappingUC = usecase.NewProductMappingUsecase(c.Products, c.HealthUC, c.Logger)
	c.HighlightUC = usecase.NewHighlightUsecase(c.Metrics)
	c.Warmer = usecase.NewHealthWarmer(c.Products, c.HealthUC, c.Cache, c.Metrics, hc, c.Logger)
}

// Start runs the websocket hub and the warmer until ctx is done.
func (c *Container) Start(ctx context.Context) {
	if c == nil {
		return
	}
	go c.Hub.Run(ctx)
	if c.Warmer.Enabled() {
		go c.Warmer.Run(ctx)
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("[App] cache close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"datatrail/internal/config"
	"datatrail/internal/metrics"
	"datatrail/internal/repository"
	"datatrail/internal/worker"
)

const warmWindowLayout = "2006-01-02-15"

type WarmLocker interface {
	Available() bool
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// HealthWarmer periodically audits the trailing lookback window of every
// product so the cache and the websocket subscribers stay current.
type HealthWarmer struct {
	products repository.ProductRepository
	health   HealthCheckUsecase
	locker   WarmLocker
	metrics  *metrics.Metrics
	cfg      config.HealthCheckConfig
	logger   *log.Logger
	now      func() time.Time
}

func NewHealthWarmer(products repository.ProductRepository, health HealthCheckUsecase, locker WarmLocker, m *metrics.Metrics, cfg config.HealthCheckConfig, logger *log.Logger) *HealthWarmer {
	return &HealthWarmer{
		products: products,
		health:   health,
		locker:   locker,
		metrics:  m,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (w *HealthWarmer) Enabled() bool {
	return w != nil && w.cfg.WarmInterval > 0 && w.health != nil && w.products != nil
}

// Run warms once immediately and then on every interval tick until ctx is
// done.
func (w *HealthWarmer) Run(ctx context.Context) {
	if !w.Enabled() {
		return
	}
	if w.logger != nil {
		w.logger.Printf("[Warmer] started interval=%s lookback=%s workers=%d", w.cfg.WarmInterval, w.cfg.WarmLookback, w.cfg.WarmWorkers)
	}

	t := time.NewTicker(w.cfg.WarmInterval)
	defer t.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil && w.logger != nil && !errors.Is(err, context.Canceled) {
			w.logger.Printf("[Warmer] run failed: %v", err)
		}
		select {
		case <-ctx.Done():
			if w.logger != nil {
				w.logger.Printf("[Warmer] stopped")
			}
			return
		case <-t.C:
		}
	}
}

// Window returns the trailing lookback window ending at the current hour.
func (w *HealthWarmer) Window() (string, string) {
	lookback := w.cfg.WarmLookback
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	end := w.now().UTC().Truncate(time.Hour)
	start := end.Add(-lookback)
	return start.Format(warmWindowLayout), end.Format(warmWindowLayout)
}

// RunOnce audits every product once. Another instance holding the warm lock
// makes it a no-op; without Redis the lock is skipped.
func (w *HealthWarmer) RunOnce(ctx context.Context) error {
	if w == nil || w.health == nil || w.products == nil {
		return nil
	}

	if w.locker != nil && w.locker.Available() {
		ttl := w.cfg.WarmInterval
		if ttl <= 0 {
			ttl = time.Minute
		}
		ok, err := w.locker.SetIfNotExists(ctx, WarmLockKey(), "1", ttl)
		if err != nil {
			w.metrics.ObserveWarmRun(err)
			return fmt.Errorf("acquire warm lock: %w", err)
		}
		if !ok {
			if w.logger != nil {
				w.logger.Printf("[Warmer] lock held elsewhere, skipping")
			}
			return nil
		}
	}

	products, err := w.products.ListProducts(ctx)
	if err != nil {
		w.metrics.ObserveWarmRun(err)
		return fmt.Errorf("list products: %w", err)
	}

	start, end := w.Window()
	started := time.Now()

	pool := worker.NewWorkerPool(w.cfg.WarmWorkers, len(products))
	pool.SetRateLimit(w.cfg.WarmRateLimit)
	results := pool.Run(ctx)

	for _, p := range products {
		product := p
		pool.Submit(product, func(ctx context.Context) error {
			_, err := w.health.Check(ctx, HealthCheckParams{
				ProductName: product,
				StartDate:   start,
				EndDate:     end,
				SkipCache:   true,
				Source:      "warmer",
			})
			return err
		})
	}
	pool.Close()

	var errs []error
	for r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
			if w.logger != nil {
				w.logger.Printf("[Warmer] product=%s status=error err=%v", r.Name, r.Err)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	runErr := errors.Join(errs...)
	w.metrics.ObserveWarmRun(runErr)
	if w.logger != nil {
		w.logger.Printf("[Warmer] run finished products=%d failed=%d start=%s end=%s took=%s", len(products), len(errs), start, end, time.Since(started))
	}
	return runErr
}

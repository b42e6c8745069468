package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"datatrail/internal/domain/healthcheck"
	"datatrail/internal/metrics"
	"datatrail/internal/repository"
)

type HealthCheckParams struct {
	ProductName string
	StartDate   string
	EndDate     string
	SkipCache   bool
	Source      string
}

type HealthCheckOutput struct {
	ProductName string             `json:"productName"`
	Report      healthcheck.Report `json:"report"`
	Cached      bool               `json:"cached"`
}

// UnhealthyJobs counts results with at least one missing timestamp.
func (o HealthCheckOutput) UnhealthyJobs() int {
	n := 0
	for _, r := range o.Report.Results {
		if !r.Healthy() {
			n++
		}
	}
	return n
}

type HealthCheckUsecase interface {
	Check(ctx context.Context, params HealthCheckParams) (HealthCheckOutput, error)
}

// HealthNotifier receives a summary after every computed audit.
type HealthNotifier interface {
	NotifyHealthCheck(out HealthCheckOutput, window healthcheck.TimeWindow, source string)
}

type HealthCheck struct {
	products repository.ProductRepository
	auditor  *healthcheck.Auditor
	cache    ResultCache
	notifier HealthNotifier
	metrics  *metrics.Metrics
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewHealthCheckUsecase(products repository.ProductRepository, observations repository.ObservationRepository, cache ResultCache, notifier HealthNotifier, m *metrics.Metrics, cacheTTL time.Duration, logger *log.Logger) *HealthCheck {
	return &HealthCheck{
		products: products,
		auditor:  healthcheck.NewAuditor(observations),
		cache:    cache,
		notifier: notifier,
		metrics:  m,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (u *HealthCheck) Check(ctx context.Context, params HealthCheckParams) (HealthCheckOutput, error) {
	product := strings.TrimSpace(params.ProductName)
	window := healthcheck.TimeWindow{
		Start: strings.TrimSpace(params.StartDate),
		End:   strings.TrimSpace(params.EndDate),
	}
	if product == "" || window.Start == "" || window.End == "" {
		return HealthCheckOutput{}, ErrInvalidInput
	}

	key := HealthCheckCacheKey(product, window)
	if !params.SkipCache && u.cache != nil && u.cacheTTL > 0 {
		var cached HealthCheckOutput
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		u.metrics.ObserveCache(err == nil && hit)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[HealthCheck] Cache HIT: %s", key)
			}
			cached.Cached = true
			return cached, nil
		}
	}

	started := time.Now()
	jobs, err := u.products.ListJobs(ctx, product)
	if err != nil {
		u.metrics.ObserveAudit(product, healthcheck.Report{}, time.Since(started), err)
		return HealthCheckOutput{}, fmt.Errorf("%w: list jobs: %v", ErrInternal, err)
	}

	report, err := u.auditor.Audit(ctx, jobs, window)
	u.metrics.ObserveAudit(product, report, time.Since(started), err)
	if err != nil {
		return HealthCheckOutput{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	out := HealthCheckOutput{ProductName: product, Report: report}
	if u.logger != nil {
		u.logger.Printf("[HealthCheck] product=%s start=%s end=%s jobs=%d unhealthy=%d dropped=%d took=%s",
			product, window.Start, window.End, len(report.Results), out.UnhealthyJobs(), report.DroppedJobs, time.Since(started))
	}

	if u.cache != nil && u.cacheTTL > 0 {
		if err := u.cache.SetJSON(ctx, key, out, u.cacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[HealthCheck] cache set failed key=%s err=%v", key, err)
		}
	}

	if u.notifier != nil {
		source := params.Source
		if source == "" {
			source = "api"
		}
		u.notifier.NotifyHealthCheck(out, window, source)
	}
	return out, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"datatrail/internal/domain/healthcheck"
	"datatrail/internal/domain/lineage"
)

type fakeProducts struct {
	products []string
	deps     map[string][]lineage.Dependency
	jobs     map[string][]healthcheck.Job

	productsErr error
	depsErr     error
	jobsErr     error

	mu       sync.Mutex
	jobCalls int
}

func (f *fakeProducts) ListProducts(context.Context) ([]string, error) {
	return f.products, f.productsErr
}

func (f *fakeProducts) ListDependencies(_ context.Context, product string) ([]lineage.Dependency, error) {
	if f.depsErr != nil {
		return nil, f.depsErr
	}
	return f.deps[product], nil
}

func (f *fakeProducts) ListJobs(_ context.Context, product string) ([]healthcheck.Job, error) {
	f.mu.Lock()
	f.jobCalls++
	f.mu.Unlock()
	if f.jobsErr != nil {
		return nil, f.jobsErr
	}
	return f.jobs[product], nil
}

func (f *fakeProducts) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobCalls
}

type memCache struct {
	mu        sync.Mutex
	items     map[string][]byte
	locks     map[string]bool
	available bool
	lockErr   error
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}, locks: map[string]bool{}, available: true}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items[key] = b
	c.mu.Unlock()
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	if c.lockErr != nil {
		return false, c.lockErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *memCache) Available() bool { return c.available }

type recordingNotifier struct {
	mu      sync.Mutex
	outs    []HealthCheckOutput
	sources []string
}

func (n *recordingNotifier) NotifyHealthCheck(out HealthCheckOutput, _ healthcheck.TimeWindow, source string) {
	n.mu.Lock()
	n.outs = append(n.outs, out)
	n.sources = append(n.sources, source)
	n.mu.Unlock()
}

type failingSource struct{}

func (failingSource) ListObservations(context.Context, []string, healthcheck.TimeWindow) ([]healthcheck.ObservationRecord, error) {
	return nil, errors.New("db down")
}

func audienceProducts() *fakeProducts {
	return &fakeProducts{
		products: []string{"Audience"},
		deps: map[string][]lineage.Dependency{
			"Audience": {
				{View: "audience_daily", RawInput: "s3_events"},
				{View: "audience_summary", Input: "audience_daily"},
				{View: "audience_hourly", RawInput: "s3_events"},
			},
		},
		jobs: map[string][]healthcheck.Job{
			"Audience": {
				{Name: "audience_daily", Frequency: "daily"},
				{Name: "audience_summary", Frequency: "DAILY"},
				{Name: "audience_hourly", Frequency: "hourly"},
				{Name: "audience_weekly", Frequency: "weekly"},
			},
		},
	}
}

func audienceObservations() healthcheck.MemorySource {
	return healthcheck.MemorySource{
		{JobName: "audience_daily", Timestamp: "2024-01-01"},
		{JobName: "audience_daily", Timestamp: "2024-01-02"},
		{JobName: "audience_daily", Timestamp: "2024-01-03"},
		{JobName: "audience_summary", Timestamp: "2024-01-01"},
		{JobName: "audience_summary", Timestamp: "2024-01-03"},
		{JobName: "audience_hourly", Timestamp: "2024-01-01-00"},
		{JobName: "audience_hourly", Timestamp: "2024-01-01-01"},
	}
}

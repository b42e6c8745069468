package usecase

import (
	"strings"

	"datatrail/internal/domain/healthcheck"
)

const (
	healthCheckKeyPrefix = "healthcheck:"
	warmLockKey          = "healthcheck:lock:warm"
)

// HealthCheckCacheKey keeps the product name readable so a whole product can
// be invalidated with a healthcheck:<product>:* scan.
func HealthCheckCacheKey(product string, window healthcheck.TimeWindow) string {
	return healthCheckKeyPrefix + strings.TrimSpace(product) + ":" +
		strings.TrimSpace(window.Start) + ":" + strings.TrimSpace(window.End)
}

func WarmLockKey() string {
	return warmLockKey
}

package dto

import "datatrail/internal/domain/healthcheck"

// HealthCheckRequest boundaries are YYYY-MM-DD or YYYY-MM-DD-HH. Malformed
// values are accepted and produce an empty expectation.
type HealthCheckRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	SkipCache bool   `json:"skipCache"`
}

type HealthCheckResponse struct {
	ProductName     string               `json:"productName"`
	Results         []healthcheck.Result `json:"results"`
	DroppedJobs     int                  `json:"droppedJobs"`
	DroppedJobNames []string             `json:"droppedJobNames,omitempty"`
	UnhealthyJobs   int                  `json:"unhealthyJobs"`
	Cached          bool                 `json:"cached"`
}

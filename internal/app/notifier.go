package app

import (
	"datatrail/internal/domain/healthcheck"
	"datatrail/internal/usecase"
	"datatrail/internal/ws"
)

// hubNotifier forwards audit summaries to websocket subscribers.
type hubNotifier struct {
	hub *ws.Hub
}

func (n hubNotifier) NotifyHealthCheck(out usecase.HealthCheckOutput, window healthcheck.TimeWindow, source string) {
	n.hub.PublishHealthCheck(ws.HealthCheckEvent{
		ProductName:   out.ProductName,
		StartDate:     window.Start,
		EndDate:       window.End,
		UnhealthyJobs: out.UnhealthyJobs(),
		DroppedJobs:   out.Report.DroppedJobs,
		Source:        source,
	})
}

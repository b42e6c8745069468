package ws

import (
	"encoding/json"
	"time"
)

type HealthCheckEvent struct {
	Type          string `json:"type"`
	ProductName   string `json:"productName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	UnhealthyJobs int    `json:"unhealthyJobs"`
	DroppedJobs   int    `json:"droppedJobs"`
	Source        string `json:"source"`
	Timestamp     string `json:"timestamp"`
}

// PublishHealthCheck broadcasts a healthcheck_completed event to every
// connected client.
func (h *Hub) PublishHealthCheck(evt HealthCheckEvent) {
	if h == nil {
		return
	}
	evt.Type = "healthcheck_completed"
	if evt.Timestamp == "" {
		evt.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

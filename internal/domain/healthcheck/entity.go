package healthcheck

import "strings"

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyHourly Frequency = "hourly"
)

// ParseFrequency normalizes a raw frequency tag. The second return value is
// false for anything other than daily or hourly.
func ParseFrequency(raw string) (Frequency, bool) {
	switch Frequency(strings.ToLower(strings.TrimSpace(raw))) {
	case FrequencyDaily:
		return FrequencyDaily, true
	case FrequencyHourly:
		return FrequencyHourly, true
	default:
		return "", false
	}
}

type Job struct {
	Name      string `json:"jobName"`
	Frequency string `json:"frequency"`
}

type ObservationRecord struct {
	JobName   string `json:"jobName"`
	Timestamp string `json:"timestamp"`
}

// TimeWindow boundaries are YYYY-MM-DD or YYYY-MM-DD-HH strings and compare
// lexicographically.
type TimeWindow struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// Daily truncates both boundaries to their date portion.
func (w TimeWindow) Daily() TimeWindow {
	return TimeWindow{Start: datePart(w.Start), End: datePart(w.End)}
}

func datePart(s string) string {
	if len(s) > len(dayLayout) {
		return s[:len(dayLayout)]
	}
	return s
}

type Result struct {
	JobName           string    `json:"jobName"`
	Frequency         Frequency `json:"frequency"`
	ExpectedCount     int       `json:"expectedCount"`
	PresentCount      int       `json:"presentCount"`
	MissingTimestamps []string  `json:"missingTimestamps"`
}

func (r Result) Healthy() bool {
	return len(r.MissingTimestamps) == 0
}

type Report struct {
	Results         []Result `json:"results"`
	DroppedJobs     int      `json:"droppedJobs"`
	DroppedJobNames []string `json:"droppedJobNames,omitempty"`
}

// MissingByJob returns the number of missing timestamps per job name.
func (r Report) MissingByJob() map[string]int {
	out := make(map[string]int, len(r.Results))
	for _, res := range r.Results {
		out[res.JobName] = len(res.MissingTimestamps)
	}
	return out
}

package healthcheck

import "time"

const (
	dayLayout  = "2006-01-02"
	hourLayout = "2006-01-02-15"
)

// Enumerate returns every expected reporting instant between window.Start and
// window.End inclusive. Boundaries are parsed as naive wall-clock values in
// UTC so hour arithmetic never skips or repeats around DST changes.
//
// An unknown frequency, an unparseable boundary or Start > End all yield an
// empty sequence.
func Enumerate(window TimeWindow, freq Frequency) []string {
	var (
		layout string
		step   func(time.Time) time.Time
	)
	switch freq {
	case FrequencyDaily:
		layout = dayLayout
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	case FrequencyHourly:
		layout = hourLayout
		step = func(t time.Time) time.Time { return t.Add(time.Hour) }
	default:
		return []string{}
	}

	start, err := time.ParseInLocation(layout, window.Start, time.UTC)
	if err != nil {
		return []string{}
	}
	end, err := time.ParseInLocation(layout, window.End, time.UTC)
	if err != nil {
		return []string{}
	}
	if start.After(end) {
		return []string{}
	}

	out := make([]string, 0, expectedLen(start, end, freq))
	for t := start; !t.After(end); t = step(t) {
		out = append(out, t.Format(layout))
	}
	return out
}

func expectedLen(start, end time.Time, freq Frequency) int {
	d := end.Sub(start)
	if freq == FrequencyDaily {
		return int(d/(24*time.Hour)) + 1
	}
	return int(d/time.Hour) + 1
}

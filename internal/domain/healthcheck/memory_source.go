package healthcheck

import "context"

// MemorySource serves observations from a slice, filtering the way the SQL
// source does: exact job name match and a lexicographic BETWEEN on the
// timestamp.
type MemorySource []ObservationRecord

func (m MemorySource) ListObservations(_ context.Context, jobNames []string, window TimeWindow) ([]ObservationRecord, error) {
	return m.filter(jobNames, window), nil
}

func (m MemorySource) filter(jobNames []string, window TimeWindow) []ObservationRecord {
	want := make(map[string]struct{}, len(jobNames))
	for _, n := range jobNames {
		want[n] = struct{}{}
	}
	out := make([]ObservationRecord, 0, len(m))
	for _, rec := range m {
		if _, ok := want[rec.JobName]; !ok {
			continue
		}
		if rec.Timestamp < window.Start || rec.Timestamp > window.End {
			continue
		}
		out = append(out, rec)
	}
	return out
}

package healthcheck

type TimestampSet map[string]struct{}

func (s TimestampSet) Has(ts string) bool {
	_, ok := s[ts]
	return ok
}

// Index maps a job name to the timestamps observed for it.
type Index map[string]TimestampSet

// Observed never returns nil, also for jobs that were not indexed.
func (idx Index) Observed(jobName string) TimestampSet {
	if s, ok := idx[jobName]; ok {
		return s
	}
	return TimestampSet{}
}

// BuildIndex groups records by job. Every name in jobNames gets an entry, even
// without observations. Records for other jobs are ignored and duplicate
// timestamps collapse.
func BuildIndex(records []ObservationRecord, jobNames []string) Index {
	idx := make(Index, len(jobNames))
	for _, name := range jobNames {
		idx[name] = TimestampSet{}
	}
	for _, rec := range records {
		set, ok := idx[rec.JobName]
		if !ok {
			continue
		}
		set[rec.Timestamp] = struct{}{}
	}
	return idx
}

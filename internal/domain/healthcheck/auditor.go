package healthcheck

import (
	"context"
	"fmt"
)

// ObservationSource returns the observation records of the given jobs whose
// timestamp falls inside window. Duplicates are allowed.
type ObservationSource interface {
	ListObservations(ctx context.Context, jobNames []string, window TimeWindow) ([]ObservationRecord, error)
}

// Auditor holds no state besides its source and is safe for concurrent use.
type Auditor struct {
	source ObservationSource
}

func NewAuditor(source ObservationSource) *Auditor {
	return &Auditor{source: source}
}

// Audit computes the missing reporting windows of every daily and hourly job.
// Daily results come first, then hourly, each in input order. Jobs with any
// other frequency are left out of Results and only counted in DroppedJobs.
//
// A job whose observed count reaches the expected count is reported complete
// without comparing the timestamps themselves. That is only exact while the
// source never returns timestamps outside the expected sequence.
func (a *Auditor) Audit(ctx context.Context, jobs []Job, window TimeWindow) (Report, error) {
	return audit(jobs, window, func(names []string, w TimeWindow) ([]ObservationRecord, error) {
		if a == nil || a.source == nil {
			return nil, nil
		}
		recs, err := a.source.ListObservations(ctx, names, w)
		if err != nil {
			return nil, fmt.Errorf("list observations: %w", err)
		}
		return recs, nil
	})
}

// AuditRecords runs the same audit against an in-memory record collection.
func AuditRecords(jobs []Job, window TimeWindow, records []ObservationRecord) Report {
	src := MemorySource(records)
	r, _ := audit(jobs, window, func(names []string, w TimeWindow) ([]ObservationRecord, error) {
		return src.filter(names, w), nil
	})
	return r
}

type fetchFunc func(jobNames []string, window TimeWindow) ([]ObservationRecord, error)

func audit(jobs []Job, window TimeWindow, fetch fetchFunc) (Report, error) {
	var daily, hourly, dropped []Job
	for _, j := range jobs {
		freq, ok := ParseFrequency(j.Frequency)
		switch {
		case !ok:
			dropped = append(dropped, j)
		case freq == FrequencyDaily:
			daily = append(daily, j)
		default:
			hourly = append(hourly, j)
		}
	}

	report := Report{Results: make([]Result, 0, len(daily)+len(hourly)), DroppedJobs: len(dropped)}
	for _, j := range dropped {
		report.DroppedJobNames = append(report.DroppedJobNames, j.Name)
	}

	if len(daily) > 0 {
		res, err := auditPartition(daily, FrequencyDaily, window.Daily(), fetch)
		if err != nil {
			return Report{}, err
		}
		report.Results = append(report.Results, res...)
	}
	if len(hourly) > 0 {
		res, err := auditPartition(hourly, FrequencyHourly, window, fetch)
		if err != nil {
			return Report{}, err
		}
		report.Results = append(report.Results, res...)
	}
	return report, nil
}

func auditPartition(jobs []Job, freq Frequency, window TimeWindow, fetch fetchFunc) ([]Result, error) {
	expected := Enumerate(window, freq)

	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name)
	}
	records, err := fetch(names, window)
	if err != nil {
		return nil, err
	}
	idx := BuildIndex(records, names)

	out := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		observed := idx.Observed(j.Name)
		missing := []string{}
		if len(observed) < len(expected) {
			for _, ts := range expected {
				if !observed.Has(ts) {
					missing = append(missing, ts)
				}
			}
		}
		out = append(out, Result{
			JobName:           j.Name,
			Frequency:         freq,
			ExpectedCount:     len(expected),
			PresentCount:      len(observed),
			MissingTimestamps: missing,
		})
	}
	return out, nil
}

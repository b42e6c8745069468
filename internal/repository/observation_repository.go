package repository

import (
	"context"

	"datatrail/internal/database"
	"datatrail/internal/domain/healthcheck"
)

type ObservationRepository interface {
	healthcheck.ObservationSource
}

type PostgresObservationRepository struct {
	db database.Querier
}

func NewPostgresObservationRepository(db database.Querier) *PostgresObservationRepository {
	return &PostgresObservationRepository{db: db}
}

// ListObservations compares report_time as text, so a daily window also
// matches hourly stamps of the days strictly inside it.
func (r *PostgresObservationRepository) ListObservations(ctx context.Context, jobNames []string, window healthcheck.TimeWindow) ([]healthcheck.ObservationRecord, error) {
	if len(jobNames) == 0 {
		return []healthcheck.ObservationRecord{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT job_name, report_time
		 FROM job_stage_stats
		 WHERE report_time BETWEEN $1 AND $2
		   AND job_name = ANY($3)`,
		window.Start, window.End, jobNames,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]healthcheck.ObservationRecord, 0)
	for rows.Next() {
		var rec healthcheck.ObservationRecord
		if err := rows.Scan(&rec.JobName, &rec.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

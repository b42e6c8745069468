package repository

import (
	"context"

	"datatrail/internal/database"
	"datatrail/internal/domain/healthcheck"
	"datatrail/internal/domain/lineage"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]string, error)
	ListDependencies(ctx context.Context, productName string) ([]lineage.Dependency, error)
	ListJobs(ctx context.Context, productName string) ([]healthcheck.Job, error)
}

type PostgresProductRepository struct {
	db database.Querier
}

func NewPostgresProductRepository(db database.Querier) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) ListProducts(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT product_name FROM views ORDER BY product_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProductRepository) ListDependencies(ctx context.Context, productName string) ([]lineage.Dependency, error) {
	rows, err := r.db.Query(ctx,
		`SELECT vd.view_name, COALESCE(vd.input_view_name, ''), COALESCE(vd.raw_input, '')
		 FROM view_dependencies vd
		 WHERE vd.view_name IN (SELECT view_name FROM views WHERE product_name = $1)
		 ORDER BY vd.id ASC`,
		productName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lineage.Dependency, 0)
	for rows.Next() {
		var d lineage.Dependency
		if err := rows.Scan(&d.View, &d.Input, &d.RawInput); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProductRepository) ListJobs(ctx context.Context, productName string) ([]healthcheck.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT view_name, LOWER(frequency)
		 FROM views
		 WHERE product_name = $1
		 ORDER BY view_name ASC`,
		productName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]healthcheck.Job, 0)
	for rows.Next() {
		var j healthcheck.Job
		if err := rows.Scan(&j.Name, &j.Frequency); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

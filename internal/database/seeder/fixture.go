package seeder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"datatrail/internal/database"
	"datatrail/internal/domain/healthcheck"

	"gopkg.in/yaml.v3"
)

type Fixture struct {
	Products     []FixtureProduct     `yaml:"products"`
	Observations []FixtureObservation `yaml:"observations"`
}

type FixtureProduct struct {
	Name  string        `yaml:"name"`
	Views []FixtureView `yaml:"views"`
}

type FixtureView struct {
	Name      string   `yaml:"name"`
	Frequency string   `yaml:"frequency"`
	Inputs    []string `yaml:"inputs"`
	RawInputs []string `yaml:"raw_inputs"`
}

// FixtureObservation expands to one job_stage_stats row per expected
// timestamp between From and To, minus Skip.
type FixtureObservation struct {
	Job  string   `yaml:"job"`
	From string   `yaml:"from"`
	To   string   `yaml:"to"`
	Skip []string `yaml:"skip"`
}

func ParseFixture(b []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}

	views := map[string]string{}
	for _, p := range f.Products {
		if strings.TrimSpace(p.Name) == "" {
			return Fixture{}, fmt.Errorf("fixture: product without name")
		}
		for _, v := range p.Views {
			if strings.TrimSpace(v.Name) == "" {
				return Fixture{}, fmt.Errorf("fixture: view without name in product %s", p.Name)
			}
			if prev, ok := views[v.Name]; ok {
				return Fixture{}, fmt.Errorf("fixture: view %s declared in %s and %s", v.Name, prev, p.Name)
			}
			views[v.Name] = p.Name
		}
	}
	for _, o := range f.Observations {
		if _, ok := views[o.Job]; !ok {
			return Fixture{}, fmt.Errorf("fixture: observations for unknown view %s", o.Job)
		}
	}
	return f, nil
}

// Timestamps expands an observation block using the view's frequency.
func (o FixtureObservation) Timestamps(freq healthcheck.Frequency) []string {
	skip := make(map[string]struct{}, len(o.Skip))
	for _, s := range o.Skip {
		skip[s] = struct{}{}
	}
	all := healthcheck.Enumerate(healthcheck.TimeWindow{Start: o.From, End: o.To}, freq)
	out := make([]string, 0, len(all))
	for _, ts := range all {
		if _, ok := skip[ts]; ok {
			continue
		}
		out = append(out, ts)
	}
	return out
}

func (f Fixture) frequencies() map[string]healthcheck.Frequency {
	out := map[string]healthcheck.Frequency{}
	for _, p := range f.Products {
		for _, v := range p.Views {
			freq, ok := healthcheck.ParseFrequency(v.Frequency)
			if !ok {
				freq = healthcheck.Frequency(strings.ToLower(strings.TrimSpace(v.Frequency)))
			}
			out[v.Name] = freq
		}
	}
	return out
}

// Jobs lists the views of product in declaration order.
func (f Fixture) Jobs(product string) []healthcheck.Job {
	out := []healthcheck.Job{}
	for _, p := range f.Products {
		if p.Name != product {
			continue
		}
		for _, v := range p.Views {
			out = append(out, healthcheck.Job{Name: v.Name, Frequency: v.Frequency})
		}
	}
	return out
}

// Records expands every observation block the same way the seeder does.
func (f Fixture) Records() []healthcheck.ObservationRecord {
	freqs := f.frequencies()
	out := []healthcheck.ObservationRecord{}
	for _, o := range f.Observations {
		for _, ts := range o.Timestamps(freqs[o.Job]) {
			out = append(out, healthcheck.ObservationRecord{JobName: o.Job, Timestamp: ts})
		}
	}
	return out
}

func LoadFixture(path string) (Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, err
	}
	return ParseFixture(b)
}

type FixtureSeeder struct {
	Path string
}

func (FixtureSeeder) Name() string { return "fixture" }

func (s FixtureSeeder) Run(ctx context.Context, db database.DB) error {
	f, err := LoadFixture(s.Path)
	if err != nil {
		return err
	}

	if err := EnsureTableColumns(ctx, db, "views", "view_name", "product_name", "frequency"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "view_dependencies", "view_name", "input_view_name", "raw_input"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "job_stage_stats", "job_name", "report_time"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := insertFixture(ctx, tx, f); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertFixture(ctx context.Context, q database.Querier, f Fixture) error {
	for _, p := range f.Products {
		for _, v := range p.Views {
			_, err := q.Exec(ctx,
				`INSERT INTO views (view_name, product_name, frequency) VALUES ($1, $2, $3)
				 ON CONFLICT (view_name) DO UPDATE SET product_name = EXCLUDED.product_name, frequency = EXCLUDED.frequency`,
				v.Name, p.Name, v.Frequency,
			)
			if err != nil {
				return fmt.Errorf("insert view %s: %w", v.Name, err)
			}
		}
	}

	for _, p := range f.Products {
		for _, v := range p.Views {
			for _, in := range v.Inputs {
				if err := insertDependency(ctx, q, v.Name, in, ""); err != nil {
					return err
				}
			}
			for _, raw := range v.RawInputs {
				if err := insertDependency(ctx, q, v.Name, "", raw); err != nil {
					return err
				}
			}
		}
	}

	freqs := f.frequencies()
	for _, o := range f.Observations {
		for _, ts := range o.Timestamps(freqs[o.Job]) {
			_, err := q.Exec(ctx,
				`INSERT INTO job_stage_stats (job_name, report_time)
				 SELECT $1::text, $2::text
				 WHERE NOT EXISTS (SELECT 1 FROM job_stage_stats WHERE job_name = $1 AND report_time = $2)`,
				o.Job, ts,
			)
			if err != nil {
				return fmt.Errorf("insert observation %s@%s: %w", o.Job, ts, err)
			}
		}
	}
	return nil
}

func insertDependency(ctx context.Context, q database.Querier, view, input, raw string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO view_dependencies (view_name, input_view_name, raw_input) VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		 ON CONFLICT DO NOTHING`,
		view, input, raw,
	)
	if err != nil {
		return fmt.Errorf("insert dependency %s: %w", view, err)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"datatrail/internal/database/seeder"
	"datatrail/internal/domain/healthcheck"
	"datatrail/internal/repository"

	"github.com/spf13/cobra"
)

type auditOptions struct {
	start   string
	end     string
	fixture string
	asJSON  bool
}

func newAuditCmd() *cobra.Command {
	var opts auditOptions
	cmd := &cobra.Command{
		Use:   "audit <product>",
		Short: "Report missing reporting windows of every job in a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product := strings.TrimSpace(args[0])
			window := healthcheck.TimeWindow{Start: opts.start, End: opts.end}

			if opts.fixture != "" {
				f, err := seeder.LoadFixture(opts.fixture)
				if err != nil {
					return err
				}
				report := healthcheck.AuditRecords(f.Jobs(product), window, f.Records())
				return writeReport(cmd.OutOrStdout(), product, report, opts.asJSON)
			}

			_, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := auditProduct(cmd.Context(), repository.NewPostgresProductRepository(db), repository.NewPostgresObservationRepository(db), product, window)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), product, report, opts.asJSON)
		},
	}
	cmd.Flags().StringVar(&opts.start, "start", "", "window start, YYYY-MM-DD or YYYY-MM-DD-HH")
	cmd.Flags().StringVar(&opts.end, "end", "", "window end, YYYY-MM-DD or YYYY-MM-DD-HH")
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "audit a YAML fixture instead of the database")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func auditProduct(ctx context.Context, products repository.ProductRepository, source healthcheck.ObservationSource, product string, window healthcheck.TimeWindow) (healthcheck.Report, error) {
	jobs, err := products.ListJobs(ctx, product)
	if err != nil {
		return healthcheck.Report{}, fmt.Errorf("list jobs: %w", err)
	}
	return healthcheck.NewAuditor(source).Audit(ctx, jobs, window)
}

func writeReport(w io.Writer, product string, report healthcheck.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			ProductName string `json:"productName"`
			healthcheck.Report
		}{ProductName: product, Report: report})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "JOB\tFREQUENCY\tEXPECTED\tPRESENT\tMISSING\n")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.JobName, r.Frequency, r.ExpectedCount, r.PresentCount, summarizeMissing(r.MissingTimestamps))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if report.DroppedJobs > 0 {
		fmt.Fprintf(w, "dropped %d job(s) with unknown frequency: %s\n", report.DroppedJobs, strings.Join(report.DroppedJobNames, ", "))
	}
	return nil
}

func summarizeMissing(ts []string) string {
	switch {
	case len(ts) == 0:
		return "-"
	case len(ts) <= 3:
		return strings.Join(ts, ",")
	default:
		return fmt.Sprintf("%s,... (%d)", strings.Join(ts[:3], ","), len(ts))
	}
}

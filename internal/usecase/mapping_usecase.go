package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"datatrail/internal/domain/lineage"
	"datatrail/internal/repository"

	"golang.org/x/sync/errgroup"
)

type MappingParams struct {
	ProductName string
	StartDate   string
	EndDate     string
	Selected    string
}

type MappingOutput struct {
	ProductName  string               `json:"productName"`
	Dependencies []lineage.Dependency `json:"dependencies"`
	Graph        lineage.Graph        `json:"graph"`
}

type ProductMappingUsecase interface {
	GetMapping(ctx context.Context, params MappingParams) (MappingOutput, error)
}

type ProductMapping struct {
	products repository.ProductRepository
	health   HealthCheckUsecase
	layout   lineage.LayoutOptions
	logger   *log.Logger
}

func NewProductMappingUsecase(products repository.ProductRepository, health HealthCheckUsecase, logger *log.Logger) *ProductMapping {
	return &ProductMapping{
		products: products,
		health:   health,
		layout:   lineage.DefaultLayoutOptions(),
		logger:   logger,
	}
}

// GetMapping loads the dependency graph of a product. With a complete window
// the health overlay is fetched alongside the dependencies; an overlay
// failure is logged and the graph is returned without it.
func (u *ProductMapping) GetMapping(ctx context.Context, params MappingParams) (MappingOutput, error) {
	product := strings.TrimSpace(params.ProductName)
	if product == "" {
		return MappingOutput{}, ErrInvalidInput
	}
	start := strings.TrimSpace(params.StartDate)
	end := strings.TrimSpace(params.EndDate)
	withHealth := u.health != nil && start != "" && end != ""

	var (
		deps    []lineage.Dependency
		missing map[string]int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := u.products.ListDependencies(gCtx, product)
		if err != nil {
			return fmt.Errorf("list dependencies: %w", err)
		}
		deps = rows
		return nil
	})
	if withHealth {
		g.Go(func() error {
			out, err := u.health.Check(gCtx, HealthCheckParams{ProductName: product, StartDate: start, EndDate: end, Source: "mapping"})
			if err != nil {
				if u.logger != nil {
					u.logger.Printf("[Mapping] health overlay skipped product=%s err=%v", product, err)
				}
				return nil
			}
			missing = out.Report.MissingByJob()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MappingOutput{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if deps == nil {
		deps = []lineage.Dependency{}
	}

	graph := lineage.BuildGraph(deps)
	if missing != nil {
		graph = graph.ApplyHealth(missing)
	}
	if sel := strings.TrimSpace(params.Selected); sel != "" {
		graph = graph.Highlight(sel)
	}
	graph = lineage.Layout(graph, u.layout)

	return MappingOutput{ProductName: product, Dependencies: deps, Graph: graph}, nil
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"datatrail/internal/domain/lineage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeByID(g lineage.Graph, id string) (lineage.Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return lineage.Node{}, false
}

func TestProductMapping_GetMapping_WithoutWindow(t *testing.T) {
	products := audienceProducts()
	health := NewHealthCheckUsecase(products, audienceObservations(), nil, nil, nil, 0, nil)
	uc := NewProductMappingUsecase(products, health, nil)

	out, err := uc.GetMapping(context.Background(), MappingParams{ProductName: "Audience"})
	require.NoError(t, err)

	assert.Equal(t, "Audience", out.ProductName)
	assert.Len(t, out.Dependencies, 3)
	assert.Len(t, out.Graph.Nodes, 4)
	assert.Len(t, out.Graph.Edges, 3)
	assert.Zero(t, products.calls(), "no window means no health overlay")

	raw, ok := nodeByID(out.Graph, "s3_events")
	require.True(t, ok)
	assert.Equal(t, lineage.StatusRaw, raw.Status)

	for _, e := range out.Graph.Edges {
		assert.False(t, e.Highlighted)
	}
}

func TestProductMapping_GetMapping_OverlaysHealthAndHighlights(t *testing.T) {
	products := audienceProducts()
	health := NewHealthCheckUsecase(products, audienceObservations(), nil, nil, nil, 0, nil)
	uc := NewProductMappingUsecase(products, health, nil)

	out, err := uc.GetMapping(context.Background(), MappingParams{
		ProductName: "Audience",
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-03",
		Selected:    "audience_summary",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, products.calls())

	summary, ok := nodeByID(out.Graph, "audience_summary")
	require.True(t, ok)
	assert.Equal(t, lineage.StatusUnhealthy, summary.Status)
	assert.Equal(t, 1, summary.Missing)

	daily, ok := nodeByID(out.Graph, "audience_daily")
	require.True(t, ok)
	assert.Equal(t, lineage.StatusHealthy, daily.Status)

	highlighted := map[string]bool{}
	for _, e := range out.Graph.Edges {
		highlighted[e.ID] = e.Highlighted
	}
	assert.Equal(t, map[string]bool{
		"e-s3_events->audience_daily":        true,
		"e-audience_daily->audience_summary": true,
		"e-s3_events->audience_hourly":       false,
	}, highlighted)
}

func TestProductMapping_GetMapping_HealthFailureIsBestEffort(t *testing.T) {
	products := audienceProducts()
	products.jobsErr = errors.New("boom")
	health := NewHealthCheckUsecase(products, audienceObservations(), nil, nil, nil, 0, nil)
	uc := NewProductMappingUsecase(products, health, nil)

	out, err := uc.GetMapping(context.Background(), MappingParams{ProductName: "Audience", StartDate: "2024-01-01", EndDate: "2024-01-03"})
	require.NoError(t, err)
	for _, n := range out.Graph.Nodes {
		assert.NotEqual(t, lineage.StatusUnhealthy, n.Status)
	}
}

func TestProductMapping_GetMapping_Errors(t *testing.T) {
	products := audienceProducts()
	uc := NewProductMappingUsecase(products, nil, nil)

	_, err := uc.GetMapping(context.Background(), MappingParams{ProductName: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	products.depsErr = errors.New("boom")
	_, err = uc.GetMapping(context.Background(), MappingParams{ProductName: "Audience"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestProductMapping_GetMapping_UnknownProductIsEmpty(t *testing.T) {
	uc := NewProductMappingUsecase(audienceProducts(), nil, nil)

	out, err := uc.GetMapping(context.Background(), MappingParams{ProductName: "Nope"})
	require.NoError(t, err)
	assert.NotNil(t, out.Dependencies)
	assert.Empty(t, out.Dependencies)
	assert.Empty(t, out.Graph.Nodes)
}

func TestProduct_ListProducts(t *testing.T) {
	uc := NewProductUsecase(&fakeProducts{})
	out, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)

	uc = NewProductUsecase(&fakeProducts{productsErr: errors.New("boom")})
	_, err = uc.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestProduct_ListDependencies(t *testing.T) {
	uc := NewProductUsecase(audienceProducts())

	deps, err := uc.ListDependencies(context.Background(), "Audience")
	require.NoError(t, err)
	assert.Len(t, deps, 3)

	_, err = uc.ListDependencies(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHighlight_Highlight(t *testing.T) {
	uc := NewHighlightUsecase(nil)
	edges := []lineage.Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "x", Target: "y"},
	}

	out, err := uc.Highlight(edges, "c")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.True(t, out[0].Highlighted)
	assert.True(t, out[1].Highlighted)
	assert.False(t, out[2].Highlighted)

	out, err = uc.Highlight(edges, "missing")
	require.NoError(t, err)
	for _, e := range out {
		assert.False(t, e.Highlighted)
	}

	_, err = uc.Highlight(edges, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Highlight([]lineage.Edge{{Source: "", Target: "b"}}, "b")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

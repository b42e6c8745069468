package usecase

import (
	"strings"

	"datatrail/internal/domain/lineage"
	"datatrail/internal/metrics"
)

type HighlightUsecase interface {
	Highlight(edges []lineage.Edge, selected string) ([]lineage.ClassifiedEdge, error)
}

type Highlight struct {
	metrics *metrics.Metrics
}

func NewHighlightUsecase(m *metrics.Metrics) *Highlight {
	return &Highlight{metrics: m}
}

// Highlight rejects edges with an empty endpoint. A selected id that does not
// appear in edges yields no highlighted edge.
func (u *Highlight) Highlight(edges []lineage.Edge, selected string) ([]lineage.ClassifiedEdge, error) {
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return nil, ErrInvalidInput
	}
	for _, e := range edges {
		if e.Source == "" || e.Target == "" {
			return nil, ErrInvalidInput
		}
	}

	out := lineage.ClassifyEdges(edges, selected)
	n := 0
	for _, e := range out {
		if e.Highlighted {
			n++
		}
	}
	u.metrics.ObserveHighlight(n)
	return out, nil
}

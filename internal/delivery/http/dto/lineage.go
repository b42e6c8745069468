package dto

import "datatrail/internal/domain/lineage"

type EdgeRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

type HighlightRequest struct {
	Edges    []EdgeRequest `json:"edges" validate:"dive"`
	Selected string        `json:"selected" validate:"required"`
}

func (r HighlightRequest) DomainEdges() []lineage.Edge {
	out := make([]lineage.Edge, 0, len(r.Edges))
	for _, e := range r.Edges {
		out = append(out, lineage.Edge{Source: e.Source, Target: e.Target})
	}
	return out
}

type HighlightResponse struct {
	Edges []lineage.ClassifiedEdge `json:"edges"`
}

package lineage

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type EdgeSet map[Edge]struct{}

func (s EdgeSet) Has(e Edge) bool {
	_, ok := s[e]
	return ok
}

// ParentMap maps a node to the sources of the edges that end at it. Build it
// once per edge list and reuse it across selections.
type ParentMap map[string][]string

func BuildParentMap(edges []Edge) ParentMap {
	pm := make(ParentMap)
	for _, e := range edges {
		pm[e.Target] = append(pm[e.Target], e.Source)
	}
	return pm
}

// Ancestors returns every edge lying on a directed path that ends at selected.
// The walk tracks visited nodes so it also terminates on cyclic input.
func (pm ParentMap) Ancestors(selected string) EdgeSet {
	out := EdgeSet{}
	visited := map[string]struct{}{selected: {}}
	stack := []string{selected}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, p := range pm[cur] {
			out[Edge{Source: p, Target: cur}] = struct{}{}
			if _, seen := visited[p]; seen {
				continue
			}
			visited[p] = struct{}{}
			stack = append(stack, p)
		}
	}
	return out
}

func HighlightAncestors(edges []Edge, selected string) EdgeSet {
	return BuildParentMap(edges).Ancestors(selected)
}

type ClassifiedEdge struct {
	Edge
	Highlighted bool `json:"highlighted"`
}

// ClassifyEdges flags each edge that lies on an ancestor path of selected.
// Order and identity of the input edges are kept.
func ClassifyEdges(edges []Edge, selected string) []ClassifiedEdge {
	hl := HighlightAncestors(edges, selected)
	out := make([]ClassifiedEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, ClassifiedEdge{Edge: e, Highlighted: hl.Has(e)})
	}
	return out
}

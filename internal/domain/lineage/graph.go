package lineage

// Dependency is one row of a product's view dependency table. A view reads
// either another view (Input) or a raw source (RawInput).
type Dependency struct {
	View     string `json:"view"`
	Input    string `json:"input,omitempty"`
	RawInput string `json:"raw_input,omitempty"`
}

func (d Dependency) Source() string {
	if d.Input != "" {
		return d.Input
	}
	return d.RawInput
}

type NodeStatus string

const (
	StatusHealthy   NodeStatus = "healthy"
	StatusUnhealthy NodeStatus = "unhealthy"
	StatusRaw       NodeStatus = "raw"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Node struct {
	ID       string     `json:"id"`
	Raw      bool       `json:"raw"`
	Status   NodeStatus `json:"status"`
	Missing  int        `json:"missing"`
	Position Position   `json:"position"`
}

type GraphEdge struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Highlighted bool   `json:"highlighted"`
}

type Graph struct {
	Nodes []Node      `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// BuildGraph turns dependency rows into nodes and edges. Node order follows
// first appearance (view before its source) and empty ids are skipped.
func BuildGraph(deps []Dependency) Graph {
	g := Graph{Nodes: []Node{}, Edges: []GraphEdge{}}

	raw := make(map[string]bool)
	for _, d := range deps {
		if d.RawInput != "" {
			raw[d.RawInput] = true
		}
	}

	seen := make(map[string]bool)
	addNode := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		st := StatusHealthy
		if raw[id] {
			st = StatusRaw
		}
		g.Nodes = append(g.Nodes, Node{ID: id, Raw: raw[id], Status: st})
	}

	for _, d := range deps {
		addNode(d.View)
		addNode(d.Source())
	}

	for _, d := range deps {
		src := d.Source()
		if src == "" || d.View == "" {
			continue
		}
		g.Edges = append(g.Edges, GraphEdge{
			ID:     "e-" + src + "->" + d.View,
			Source: src,
			Target: d.View,
		})
	}
	return g
}

func (g Graph) EdgeList() []Edge {
	out := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		out = append(out, Edge{Source: e.Source, Target: e.Target})
	}
	return out
}

// ApplyHealth marks nodes with missing reporting windows as unhealthy. An
// unhealthy status wins over the raw-input status.
func (g Graph) ApplyHealth(missing map[string]int) Graph {
	nodes := make([]Node, len(g.Nodes))
	for i, n := range g.Nodes {
		n.Missing = missing[n.ID]
		if n.Missing > 0 {
			n.Status = StatusUnhealthy
		}
		nodes[i] = n
	}
	return Graph{Nodes: nodes, Edges: g.Edges}
}

func (g Graph) Highlight(selected string) Graph {
	hl := HighlightAncestors(g.EdgeList(), selected)
	edges := make([]GraphEdge, len(g.Edges))
	for i, e := range g.Edges {
		e.Highlighted = hl.Has(Edge{Source: e.Source, Target: e.Target})
		edges[i] = e
	}
	return Graph{Nodes: g.Nodes, Edges: edges}
}

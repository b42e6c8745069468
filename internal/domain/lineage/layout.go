package lineage

type LayoutOptions struct {
	NodeWidth  float64
	NodeHeight float64
	RankSep    float64
	NodeSep    float64
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{NodeWidth: 320, NodeHeight: 80, RankSep: 350, NodeSep: 80}
}

// Layout places nodes top to bottom, one row per rank. A node's rank is the
// length of the longest path reaching it, capped at len(nodes)-1 so cyclic
// input still settles. Rows are centred on the widest one and positions are
// top-left corners.
func Layout(g Graph, opts LayoutOptions) Graph {
	def := DefaultLayoutOptions()
	if opts.NodeWidth <= 0 {
		opts.NodeWidth = def.NodeWidth
	}
	if opts.NodeHeight <= 0 {
		opts.NodeHeight = def.NodeHeight
	}
	if opts.RankSep < 0 {
		opts.RankSep = def.RankSep
	}
	if opts.NodeSep < 0 {
		opts.NodeSep = def.NodeSep
	}

	n := len(g.Nodes)
	if n == 0 {
		return g
	}

	rank := make(map[string]int, n)
	for _, node := range g.Nodes {
		rank[node.ID] = 0
	}
	for iter := 0; iter < n; iter++ {
		changed := false
		for _, e := range g.Edges {
			rs, okS := rank[e.Source]
			rt, okT := rank[e.Target]
			if !okS || !okT {
				continue
			}
			if next := rs + 1; next > rt && next < n {
				rank[e.Target] = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	rows := map[int][]int{}
	maxRank, widest := 0, 0
	for i, node := range g.Nodes {
		r := rank[node.ID]
		rows[r] = append(rows[r], i)
		if r > maxRank {
			maxRank = r
		}
		if len(rows[r]) > widest {
			widest = len(rows[r])
		}
	}

	rowWidth := func(count int) float64 {
		return float64(count)*opts.NodeWidth + float64(count-1)*opts.NodeSep
	}
	total := rowWidth(widest)

	nodes := make([]Node, n)
	copy(nodes, g.Nodes)
	for r := 0; r <= maxRank; r++ {
		row := rows[r]
		offset := (total - rowWidth(len(row))) / 2
		for col, idx := range row {
			nodes[idx].Position = Position{
				X: offset + float64(col)*(opts.NodeWidth+opts.NodeSep),
				Y: float64(r) * (opts.NodeHeight + opts.RankSep),
			}
		}
	}
	return Graph{Nodes: nodes, Edges: g.Edges}
}

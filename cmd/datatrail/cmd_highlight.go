package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"datatrail/internal/domain/lineage"

	"github.com/spf13/cobra"
)

func newHighlightCmd() *cobra.Command {
	var (
		edgesFlag string
		selected  string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "highlight",
		Short: "Mark the edges on every upstream path of a node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			edges, err := parseEdges(edgesFlag)
			if err != nil {
				return err
			}
			out := lineage.ClassifyEdges(edges, strings.TrimSpace(selected))

			w := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(w).Encode(out)
			}
			for _, e := range out {
				mark := " "
				if e.Highlighted {
					mark = "*"
				}
				fmt.Fprintf(w, "%s %s -> %s\n", mark, e.Source, e.Target)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&edgesFlag, "edges", "", "comma separated source>target pairs")
	cmd.Flags().StringVar(&selected, "selected", "", "node whose ancestors are highlighted")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print edges as JSON")
	_ = cmd.MarkFlagRequired("selected")
	return cmd
}

// parseEdges reads "a>b,b>c". Blank entries are skipped.
func parseEdges(raw string) ([]lineage.Edge, error) {
	out := []lineage.Edge{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		src, dst, ok := strings.Cut(part, ">")
		src, dst = strings.TrimSpace(src), strings.TrimSpace(dst)
		if !ok || src == "" || dst == "" {
			return nil, fmt.Errorf("invalid edge %q, want source>target", part)
		}
		out = append(out, lineage.Edge{Source: src, Target: dst})
	}
	return out, nil
}

// Copyright 2024-2026 Firefly Software Solutions Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fireflyframework/dbt-oxide/internal/graph"
	"github.com/fireflyframework/dbt-oxide/internal/graphbuilder"
	"github.com/fireflyframework/dbt-oxide/internal/manifest"
	"github.com/fireflyframework/dbt-oxide/internal/ui"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Query the dependency graph built from a loaded manifest",
}

var graphShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display every node and its direct dependencies",
	RunE:  runGraphShow,
}

var graphLayersCmd = &cobra.Command{
	Use:   "layers",
	Short: "Show nodes grouped by levelized topological-sort layer",
	RunE:  runGraphLayers,
}

var (
	graphLimit int
	graphJSON  bool
)

var graphAncestorsCmd = &cobra.Command{
	Use:   "ancestors <uid>",
	Short: "List ancestors of a node (optionally depth-limited)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphAncestors,
}

var graphDescendantsCmd = &cobra.Command{
	Use:   "descendants <uid>",
	Short: "List descendants of a node (optionally depth-limited)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphDescendants,
}

var graphCycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Report a cycle in the graph, if one exists",
	RunE:  runGraphCycle,
}

var graphSubsetCmd = &cobra.Command{
	Use:   "subset <uid> [uid...]",
	Short: "Contract the graph to the given nodes, preserving transitive reachability",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGraphSubset,
}

func init() {
	graphAncestorsCmd.Flags().IntVar(&graphLimit, "depth", graph.Unlimited, "maximum traversal depth (-1 = unlimited)")
	graphDescendantsCmd.Flags().IntVar(&graphLimit, "depth", graph.Unlimited, "maximum traversal depth (-1 = unlimited)")
	graphAncestorsCmd.Flags().BoolVar(&graphJSON, "json", false, "output as JSON")
	graphDescendantsCmd.Flags().BoolVar(&graphJSON, "json", false, "output as JSON")

	graphCmd.AddCommand(graphShowCmd, graphLayersCmd, graphAncestorsCmd, graphDescendantsCmd, graphCycleCmd, graphSubsetCmd)
	rootCmd.AddCommand(graphCmd)
}

func buildGraph() (*graph.Graph, error) {
	s, err := openManifestStore(manifestPath)
	if err != nil {
		return nil, err
	}
	var g *graph.Graph
	err = s.View(func(m *manifest.Manifest) error {
		g = graphbuilder.Build(m)
		return nil
	})
	return g, err
}

func runGraphShow(_ *cobra.Command, _ []string) error {
	g, err := buildGraph()
	if err != nil {
		return err
	}

	p := ui.NewPrinter()
	p.Header("Dependency Graph")
	p.Newline()

	for _, uid := range g.Nodes() {
		deps, _ := g.Predecessors(uid)
		if len(deps) == 0 {
			fmt.Printf("  %s\n", ui.StylePrimary.Render(uid))
			continue
		}
		arrow := ui.StyleMuted.Render(" <- ")
		depList := ui.StyleMuted.Render(fmt.Sprintf("%v", deps))
		fmt.Printf("  %s%s%s\n", ui.StyleBold.Render(uid), arrow, depList)
	}

	p.Newline()
	p.Info(fmt.Sprintf("%d nodes, %d edges", g.NodeCount(), len(g.Edges())))
	return nil
}

func runGraphLayers(_ *cobra.Command, _ []string) error {
	g, err := buildGraph()
	if err != nil {
		return err
	}

	layers, err := g.TopologicalSortGrouped()
	if err != nil {
		return err
	}

	p := ui.NewPrinter()
	p.Header("Build Layers")
	p.Newline()

	for i, layer := range layers {
		p.LayerHeader(i, len(layers), len(layer))
		for _, uid := range layer {
			fmt.Printf("    %s %s\n", ui.StyleMuted.Render("-"), uid)
		}
		p.Newline()
	}
	p.Info(fmt.Sprintf("%d nodes across %d layers", g.NodeCount(), len(layers)))
	return nil
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func printNodeSet(p *ui.Printer, title string, set map[string]bool, asJSON bool) {
	names := sortedSet(set)
	if asJSON {
		data, _ := json.MarshalIndent(names, "", "  ")
		fmt.Println(string(data))
		return
	}
	p.Header(title)
	p.Newline()
	if len(names) == 0 {
		p.Info("none")
		return
	}
	for _, n := range names {
		fmt.Printf("  %s %s\n", ui.StyleMuted.Render("-"), n)
	}
	p.Newline()
	p.Info(fmt.Sprintf("%d nodes", len(names)))
}

func runGraphAncestors(_ *cobra.Command, args []string) error {
	g, err := buildGraph()
	if err != nil {
		return err
	}
	set := g.Ancestors(args[0], graphLimit)
	printNodeSet(ui.NewPrinter(), fmt.Sprintf("Ancestors of %s", args[0]), set, graphJSON)
	return nil
}

func runGraphDescendants(_ *cobra.Command, args []string) error {
	g, err := buildGraph()
	if err != nil {
		return err
	}
	set := g.Descendants(args[0], graphLimit)
	printNodeSet(ui.NewPrinter(), fmt.Sprintf("Descendants of %s", args[0]), set, graphJSON)
	return nil
}

func runGraphCycle(_ *cobra.Command, _ []string) error {
	g, err := buildGraph()
	if err != nil {
		return err
	}

	p := ui.NewPrinter()
	edges, found := g.FindCycle()
	if !found {
		p.Success("no cycle detected")
		return nil
	}

	p.Error("cycle detected")
	for _, e := range edges {
		fmt.Printf("  %s -> %s\n", e.Src, e.Dst)
	}
	return fmt.Errorf("dependency graph is cyclic")
}

func runGraphSubset(_ *cobra.Command, args []string) error {
	g, err := buildGraph()
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(args))
	for _, uid := range args {
		keep[uid] = true
	}

	sub := g.GetSubsetGraph(keep)

	p := ui.NewPrinter()
	p.Header("Subset Graph")
	p.Newline()
	for _, e := range sub.Edges() {
		fmt.Printf("  %s -> %s\n", e.Src, e.Dst)
	}
	p.Newline()
	p.Info(fmt.Sprintf("%d nodes, %d edges", sub.NodeCount(), len(sub.Edges())))
	return nil
}

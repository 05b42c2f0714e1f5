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

// Package graphbuilder reads a manifest snapshot and emits the directed
// graph it induces: one node per entity, one edge per declared
// dependency, direction dependency -> dependent.
package graphbuilder

import (
	"github.com/fireflyframework/dbt-oxide/internal/graph"
	"github.com/fireflyframework/dbt-oxide/internal/manifest"
)

// Build walks m's collections in this order — sources, nodes, exposures,
// metrics, semantic models, saved queries, unit tests — and returns the
// resulting graph. Entries within a collection are visited in map
// iteration order, so the graph's node insertion order is not stable
// across runs.
//
// A generic test's edge from its attached_node is labeled parent_test;
// every other dependency edge, across every entity kind, is a data edge
// (empty label).
func Build(m *manifest.Manifest) *graph.Graph {
	g := graph.New()

	for uid := range m.Sources {
		g.AddNode(uid)
	}

	for uid, n := range m.Nodes {
		g.AddNode(uid)
		attached := ""
		if gt, ok := n.(*manifest.GenericTest); ok {
			attached = gt.AttachedNode
		}
		for _, dep := range n.DependsOn().Nodes {
			label := ""
			if attached != "" && dep == attached {
				label = graph.TestEdgeLabel
			}
			g.AddEdge(dep, uid, label)
		}
	}

	for uid, e := range m.Exposures {
		g.AddNode(uid)
		addDataEdges(g, uid, e.DependsOnField.Nodes)
	}

	for uid, me := range m.Metrics {
		g.AddNode(uid)
		addDataEdges(g, uid, me.DependsOnField.Nodes)
	}

	for uid, sm := range m.SemanticModels {
		g.AddNode(uid)
		addDataEdges(g, uid, sm.DependsOnField.Nodes)
	}

	for uid, sq := range m.SavedQueries {
		g.AddNode(uid)
		addDataEdges(g, uid, sq.DependsOnField.Nodes)
	}

	for uid, ut := range m.UnitTests {
		g.AddNode(uid)
		addDataEdges(g, uid, ut.DependsOnField.Nodes)
	}

	return g
}

func addDataEdges(g *graph.Graph, uid string, deps []string) {
	for _, dep := range deps {
		g.AddEdge(dep, uid, "")
	}
}

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

// Package graph implements a directed, labeled, single-edge-per-ordered-pair
// graph over string node identities, plus the traversal, ordering and
// contraction operations a build orchestrator needs on top of it.
package graph

import "sort"

// TestEdgeLabel marks an edge as a test edge. Traversals that reason about
// data reachability (ancestors, descendants, select_parents, select_children)
// skip edges carrying this label; degree counts and the levelized
// topological sort do not.
const TestEdgeLabel = "parent_test"

// Unlimited indicates no depth bound on a traversal.
const Unlimited = -1

// Edge is an ordered pair with its label, as returned by Edges and FindCycle.
type Edge struct {
	Src   string
	Dst   string
	Label string
}

// Graph is a single-owner mutable structure; it is not safe for concurrent
// mutation. Concurrent readers are safe only while no mutation is in
// flight.
type Graph struct {
	nodes   map[string]bool
	out     map[string]map[string]string // out[src][dst] = label
	in      map[string]map[string]string // in[dst][src] = label
	ordered []string                     // insertion order, for deterministic Nodes() iteration
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		out:   make(map[string]map[string]string),
		in:    make(map[string]map[string]string),
	}
}

// AddNode inserts id if absent and is a no-op otherwise. Idempotent.
func (g *Graph) AddNode(id string) string {
	if g.nodes[id] {
		return id
	}
	g.nodes[id] = true
	g.out[id] = make(map[string]string)
	g.in[id] = make(map[string]string)
	g.ordered = append(g.ordered, id)
	return id
}

// AddEdge creates src and dst as nodes if missing. If src→dst already
// exists its label is overwritten; no parallel edge is ever created.
func (g *Graph) AddEdge(src, dst, label string) {
	g.AddNode(src)
	g.AddNode(dst)
	g.out[src][dst] = label
	g.in[dst][src] = label
}

// RemoveNode removes id and every incident edge. No-op if id is absent.
func (g *Graph) RemoveNode(id string) {
	if !g.nodes[id] {
		return
	}
	for dst := range g.out[id] {
		delete(g.in[dst], id)
	}
	for src := range g.in[id] {
		delete(g.out[src], id)
	}
	delete(g.out, id)
	delete(g.in, id)
	delete(g.nodes, id)

	kept := g.ordered[:0:0]
	for _, n := range g.ordered {
		if n != id {
			kept = append(kept, n)
		}
	}
	g.ordered = kept
}

// HasNode reports whether id has been inserted.
func (g *Graph) HasNode(id string) bool {
	return g.nodes[id]
}

// Nodes returns the node set in insertion order. Order is a convenience for
// stable display; the contract treats the result as unordered.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.ordered))
	copy(out, g.ordered)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Edges returns every (src, dst, label) triple. Sources come in node
// insertion order and each source's destinations in sorted order; the
// order is not contractually meaningful.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, src := range g.ordered {
		dsts := make([]string, 0, len(g.out[src]))
		for dst := range g.out[src] {
			dsts = append(dsts, dst)
		}
		sort.Strings(dsts)
		for _, dst := range dsts {
			edges = append(edges, Edge{Src: src, Dst: dst, Label: g.out[src][dst]})
		}
	}
	return edges
}

// InDegree returns the number of incoming edges to id, or ok=false if id
// is absent.
func (g *Graph) InDegree(id string) (count int, ok bool) {
	if !g.nodes[id] {
		return 0, false
	}
	return len(g.in[id]), true
}

// OutDegree returns the number of outgoing edges from id, or ok=false if
// id is absent.
func (g *Graph) OutDegree(id string) (count int, ok bool) {
	if !g.nodes[id] {
		return 0, false
	}
	return len(g.out[id]), true
}

// Successors returns the immediate outgoing neighbors of id (all edges,
// including test edges), or ok=false if id is absent.
func (g *Graph) Successors(id string) (ids []string, ok bool) {
	if !g.nodes[id] {
		return nil, false
	}
	for dst := range g.out[id] {
		ids = append(ids, dst)
	}
	sort.Strings(ids)
	return ids, true
}

// Predecessors returns the immediate incoming neighbors of id (all edges,
// including test edges), or ok=false if id is absent.
func (g *Graph) Predecessors(id string) (ids []string, ok bool) {
	if !g.nodes[id] {
		return nil, false
	}
	for src := range g.in[id] {
		ids = append(ids, src)
	}
	sort.Strings(ids)
	return ids, true
}

// EdgeWeight returns the label of edge src→dst, or ok=false if no such
// edge exists.
func (g *Graph) EdgeWeight(src, dst string) (label string, ok bool) {
	m, exists := g.out[src]
	if !exists {
		return "", false
	}
	label, ok = m[dst]
	return label, ok
}

// Subgraph returns the induced subgraph on keep: only nodes in keep survive,
// and only edges with both endpoints in keep, with labels preserved.
func (g *Graph) Subgraph(keep map[string]bool) *Graph {
	sub := New()
	for _, id := range g.ordered {
		if keep[id] {
			sub.AddNode(id)
		}
	}
	for _, e := range g.Edges() {
		if keep[e.Src] && keep[e.Dst] {
			sub.AddEdge(e.Src, e.Dst, e.Label)
		}
	}
	return sub
}

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

package graph

import "sort"

// clone returns a deep copy of g.
func (g *Graph) clone() *Graph {
	c := New()
	for _, id := range g.ordered {
		c.AddNode(id)
	}
	for _, e := range g.Edges() {
		c.AddEdge(e.Src, e.Dst, e.Label)
	}
	return c
}

// GetSubsetGraph returns a graph on exactly the nodes in keep such that,
// for every pair (u,v) both in keep, an edge u→v exists in the result iff
// v was reachable from u in the original graph via a path whose interior
// nodes all lie outside keep.
//
// It follows the documented bypass algorithm: clone the graph; for every
// node not in keep, for every predecessor p and successor s of that node,
// add edge p→s (empty label) unless p == s; then remove the node. Bypass
// edges overwrite any pre-existing p→s edge per the normal add_edge
// contract, so label information on bypass edges is not preserved.
func (g *Graph) GetSubsetGraph(keep map[string]bool) *Graph {
	result := g.clone()

	var toRemove []string
	for _, id := range g.ordered {
		if !keep[id] {
			toRemove = append(toRemove, id)
		}
	}
	sort.Strings(toRemove)

	for _, n := range toRemove {
		preds, _ := result.Predecessors(n)
		succs, _ := result.Successors(n)
		for _, p := range preds {
			for _, s := range succs {
				if p == s {
					continue
				}
				result.AddEdge(p, s, "")
			}
		}
		result.RemoveNode(n)
	}

	return result
}

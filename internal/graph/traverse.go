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

// direction selects which adjacency map a traversal expands through.
type direction int

const (
	outgoing direction = iota // descendants: follow out-edges
	incoming                  // ancestors: follow in-edges
)

// bfsTraversal is the shared engine behind Ancestors/Descendants and
// select_parents/select_children: a multi-seed breadth-first walk that
// skips parent_test-labeled edges and stops expanding a frontier entry
// once its depth reaches limit. Seeds start at depth 0 and land in the
// result only if discovered via an edge from another processed node —
// including, at positive depth, another seed.
func (g *Graph) bfsTraversal(seeds []string, dir direction, limit int) map[string]bool {
	result := make(map[string]bool)

	type frontierEntry struct {
		id    string
		depth int
	}

	enqueued := make(map[string]bool, len(seeds))
	queue := make([]frontierEntry, 0, len(seeds))
	for _, s := range seeds {
		if !g.nodes[s] || enqueued[s] {
			continue
		}
		enqueued[s] = true
		queue = append(queue, frontierEntry{id: s, depth: 0})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if limit != Unlimited && cur.depth >= limit {
			continue
		}

		var adjacency map[string]string
		if dir == outgoing {
			adjacency = g.out[cur.id]
		} else {
			adjacency = g.in[cur.id]
		}

		for next, label := range adjacency {
			if label == TestEdgeLabel {
				continue
			}
			result[next] = true
			if enqueued[next] {
				continue
			}
			enqueued[next] = true
			queue = append(queue, frontierEntry{id: next, depth: cur.depth + 1})
		}
	}

	return result
}

// Ancestors returns every node reachable from id by following data edges
// backward, limited to depth <= limit (Unlimited for no bound). id itself
// is never included.
func (g *Graph) Ancestors(id string, limit int) map[string]bool {
	return g.bfsTraversal([]string{id}, incoming, limit)
}

// Descendants returns every node reachable from id by following data edges
// forward, limited to depth <= limit (Unlimited for no bound). id itself
// is never included.
func (g *Graph) Descendants(id string, limit int) map[string]bool {
	return g.bfsTraversal([]string{id}, outgoing, limit)
}

// SelectParents is Ancestors generalized to a set of seeds, all starting
// at depth 0.
func (g *Graph) SelectParents(seeds []string, limit int) map[string]bool {
	return g.bfsTraversal(seeds, incoming, limit)
}

// SelectChildren is Descendants generalized to a set of seeds, all
// starting at depth 0.
func (g *Graph) SelectChildren(seeds []string, limit int) map[string]bool {
	return g.bfsTraversal(seeds, outgoing, limit)
}

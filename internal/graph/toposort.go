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

// TopologicalSortGrouped produces levels of nodes with no mutual
// dependencies. Level 0 holds every node with in-degree 0 over the full
// graph (all edge labels counted, including test edges). Within a level,
// nodes are emitted in lexicographic order of UID for deterministic
// output. Returns ErrCycle if the graph is not acyclic.
func (g *Graph) TopologicalSortGrouped() ([][]string, error) {
	inDegree := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = len(g.in[id])
	}

	var queue []string
	for id, d := range inDegree {
		if d == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	var levels [][]string
	processed := 0

	for len(queue) > 0 {
		level := make([]string, len(queue))
		copy(level, queue)
		levels = append(levels, level)
		processed += len(level)

		var next []string
		for _, id := range queue {
			for succ := range g.out[id] {
				inDegree[succ]--
				if inDegree[succ] == 0 {
					next = append(next, succ)
				}
			}
		}
		sort.Strings(next)
		queue = next
	}

	if processed != len(g.nodes) {
		return nil, ErrCycle
	}
	return levels, nil
}

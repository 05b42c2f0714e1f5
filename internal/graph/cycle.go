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

// FindCycle performs a depth-first search maintaining a recursion-stack
// set. On revisiting a node already on the stack, it reports the cycle as
// the ordered list of edges obtained by slicing the current DFS path from
// the first occurrence of the revisited node to the end. Returns
// (nil, false) if the graph is acyclic. The exact cycle chosen among
// several is implementation-defined but is always a genuine cycle.
func (g *Graph) FindCycle() ([]Edge, bool) {
	var startNodes []string
	for id := range g.nodes {
		startNodes = append(startNodes, id)
	}
	sort.Strings(startNodes)

	visited := make(map[string]bool, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))
	var path []string

	var cycle []Edge

	var visit func(id string) bool
	visit = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		succs := make([]string, 0, len(g.out[id]))
		for s := range g.out[id] {
			succs = append(succs, s)
		}
		sort.Strings(succs)

		for _, next := range succs {
			if onStack[next] {
				start := 0
				for i, n := range path {
					if n == next {
						start = i
						break
					}
				}
				walk := path[start:]
				for i := 0; i < len(walk); i++ {
					src := walk[i]
					var dst string
					if i+1 < len(walk) {
						dst = walk[i+1]
					} else {
						dst = next
					}
					cycle = append(cycle, Edge{Src: src, Dst: dst, Label: g.out[src][dst]})
				}
				return true
			}
			if !visited[next] {
				if visit(next) {
					return true
				}
			}
		}

		path = path[:len(path)-1]
		onStack[id] = false
		return false
	}

	for _, id := range startNodes {
		if visited[id] {
			continue
		}
		if visit(id) {
			return cycle, true
		}
	}
	return nil, false
}

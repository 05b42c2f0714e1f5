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

import "errors"

// ErrCycle is returned by TopologicalSortGrouped when the graph is not
// acyclic. It carries no witness; call FindCycle for one.
var ErrCycle = errors.New("graph: cycle detected")

// ErrEdgeCreation is reserved for future edge validation. AddEdge never
// returns it today; it exists so callers can already branch on it.
var ErrEdgeCreation = errors.New("graph: edge creation failed")

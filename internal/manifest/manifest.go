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

package manifest

import "encoding/json"

// Manifest is the decoded, in-memory catalog of every entity a project
// declares. It is a plain value; concurrent access is the Store's job,
// not the Manifest's, and no process-wide singleton exists — callers
// that want a shared global own that choice themselves.
type Manifest struct {
	Metadata       Metadata                 `json:"metadata"`
	Nodes          map[string]Node          `json:"nodes"`
	Sources        map[string]Source        `json:"sources"`
	Macros         map[string]Macro         `json:"macros"`
	Docs           map[string]Doc           `json:"docs"`
	Exposures      map[string]Exposure      `json:"exposures"`
	Metrics        map[string]Metric        `json:"metrics"`
	Groups         map[string]Group         `json:"groups"`
	Selectors      json.RawMessage          `json:"selectors,omitempty"`
	Disabled       json.RawMessage          `json:"disabled,omitempty"`
	SemanticModels map[string]SemanticModel `json:"semantic_models"`
	SavedQueries   map[string]SavedQuery    `json:"saved_queries"`
	UnitTests      map[string]UnitTest      `json:"unit_tests"`
}

// New returns an empty manifest with every collection initialized, so
// callers can build one up programmatically without nil-map panics.
func New() *Manifest {
	return &Manifest{
		Nodes:          make(map[string]Node),
		Sources:        make(map[string]Source),
		Macros:         make(map[string]Macro),
		Docs:           make(map[string]Doc),
		Exposures:      make(map[string]Exposure),
		Metrics:        make(map[string]Metric),
		Groups:         make(map[string]Group),
		SemanticModels: make(map[string]SemanticModel),
		SavedQueries:   make(map[string]SavedQuery),
		UnitTests:      make(map[string]UnitTest),
	}
}

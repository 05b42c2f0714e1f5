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

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// wireManifest mirrors Manifest but leaves `nodes` as raw JSON, since a
// Node is a tagged union that must be dispatched by resource_type before
// it can be unmarshaled into a concrete Go type.
type wireManifest struct {
	Metadata       Metadata                   `json:"metadata"`
	Nodes          map[string]json.RawMessage `json:"nodes"`
	Sources        map[string]Source          `json:"sources"`
	Macros         map[string]Macro           `json:"macros"`
	Docs           map[string]Doc             `json:"docs"`
	Exposures      map[string]Exposure        `json:"exposures"`
	Metrics        map[string]Metric          `json:"metrics"`
	Groups         map[string]Group           `json:"groups"`
	Selectors      json.RawMessage            `json:"selectors"`
	Disabled       json.RawMessage            `json:"disabled"`
	SemanticModels map[string]SemanticModel   `json:"semantic_models"`
	SavedQueries   map[string]SavedQuery      `json:"saved_queries"`
	UnitTests      map[string]UnitTest        `json:"unit_tests"`
}

// Decode reads a manifest JSON document from r. Missing optional fields
// take their documented defaults, unknown fields are ignored, and
// structurally invalid JSON is reported as a *ParseError naming the
// offending field where the decoder can identify one.
func Decode(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Detail: err.Error()}
	}

	var wire wireManifest
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&wire); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, &ParseError{Field: typeErr.Field, Detail: typeErr.Error()}
		}
		return nil, &ParseError{Detail: err.Error()}
	}

	m := New()
	m.Metadata = wire.Metadata
	m.Selectors = wire.Selectors
	m.Disabled = wire.Disabled

	if wire.Sources != nil {
		m.Sources = wire.Sources
	}
	if wire.Macros != nil {
		m.Macros = wire.Macros
	}
	if wire.Docs != nil {
		m.Docs = wire.Docs
	}
	if wire.Exposures != nil {
		m.Exposures = wire.Exposures
	}
	if wire.Metrics != nil {
		m.Metrics = wire.Metrics
	}
	if wire.Groups != nil {
		m.Groups = wire.Groups
	}
	if wire.SemanticModels != nil {
		m.SemanticModels = wire.SemanticModels
	}
	if wire.SavedQueries != nil {
		m.SavedQueries = wire.SavedQueries
	}
	if wire.UnitTests != nil {
		m.UnitTests = wire.UnitTests
	}

	for uid, raw := range wire.Nodes {
		node, err := UnmarshalNode(raw)
		if err != nil {
			return nil, &ParseError{Field: fmt.Sprintf("nodes.%s", uid), Detail: err.Error()}
		}
		m.Nodes[uid] = node
	}

	return m, nil
}

// DecodeBytes is a convenience wrapper around Decode for callers already
// holding the manifest document in memory.
func DecodeBytes(data []byte) (*Manifest, error) {
	return Decode(bytes.NewReader(data))
}

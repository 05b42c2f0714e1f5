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
	"encoding/json"
	"fmt"
)

// VersionValue coerces a JSON string or number into its string form, the
// way a model's `version` field must be compared against a requested
// version string during ref resolution.
type VersionValue string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (v *VersionValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = VersionValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*v = VersionValue(n.String())
		return nil
	}
	return fmt.Errorf("version: expected a JSON string or number")
}

// ParsedResource holds the fields common to every dependency-bearing
// node. It is embedded by each concrete node variant.
type ParsedResource struct {
	UniqueIDField     string                 `json:"unique_id"`
	NameField         string                 `json:"name"`
	PackageNameField  string                 `json:"package_name"`
	Path              string                 `json:"path,omitempty"`
	OriginalFilePath  string                 `json:"original_file_path,omitempty"`
	FQN               []string               `json:"fqn,omitempty"`
	Database          string                 `json:"database,omitempty"`
	Schema            string                 `json:"schema,omitempty"`
	Alias             string                 `json:"alias,omitempty"`
	Checksum          FileHash               `json:"checksum,omitempty"`
	Tags              []string               `json:"tags,omitempty"`
	Description       string                 `json:"description,omitempty"`
	Columns           map[string]ColumnInfo  `json:"columns,omitempty"`
	Meta              map[string]any         `json:"meta,omitempty"`
	Docs              Docs                   `json:"docs,omitempty"`
	RawCode           string                 `json:"raw_code,omitempty"`
	Language          string                 `json:"language,omitempty"`
	ResourceTypeField ResourceType           `json:"resource_type"`
	DependsOnField    DependsOn              `json:"depends_on"`
}

func (p ParsedResource) UniqueID() string           { return p.UniqueIDField }
func (p ParsedResource) Name() string                { return p.NameField }
func (p ParsedResource) PackageName() string         { return p.PackageNameField }
func (p ParsedResource) ResourceType() ResourceType  { return p.ResourceTypeField }
func (p ParsedResource) DependsOn() DependsOn        { return p.DependsOnField }
func (p ParsedResource) Version() (string, bool)     { return "", false }
func (p ParsedResource) IsExternalNode() bool        { return false }

// Model is a materialized SQL/Python transformation.
type Model struct {
	ParsedResource
	Config             NodeConfig    `json:"config"`
	CompiledCode       string        `json:"compiled_code,omitempty"`
	Access             string        `json:"access,omitempty"`
	Constraints        []any         `json:"constraints,omitempty"`
	VersionField       *VersionValue `json:"version,omitempty"`
	LatestVersionField *VersionValue `json:"latest_version,omitempty"`
	PrimaryKey         []string      `json:"primary_key,omitempty"`
}

func (m Model) GroupName() string { return m.Config.Group }

// Version returns the model's version coerced to a string, and false if
// the model carries no version.
func (m Model) Version() (string, bool) {
	if m.VersionField == nil {
		return "", false
	}
	return string(*m.VersionField), true
}

// IsExternalNode is true only for models whose path and
// original_file_path are both empty (e.g. metadata-only stub models).
func (m Model) IsExternalNode() bool {
	return m.Path == "" && m.OriginalFilePath == ""
}

// Seed is a CSV-backed table load.
type Seed struct {
	ParsedResource
	Config   NodeConfig `json:"config"`
	RootPath string     `json:"root_path,omitempty"`
}

func (s Seed) GroupName() string { return s.Config.Group }

// Snapshot is a type-2 slowly-changing-dimension transformation.
type Snapshot struct {
	ParsedResource
	Config       NodeConfig `json:"config"`
	CompiledCode string     `json:"compiled_code,omitempty"`
}

func (s Snapshot) GroupName() string { return s.Config.Group }

// GenericTest is a parameterized, reusable data test (e.g. unique,
// not_null). AttachedNode names the node it was generated for, which
// drives the parent_test edge label in the graph builder.
type GenericTest struct {
	ParsedResource
	Config        TestConfig     `json:"config"`
	CompiledCode  string         `json:"compiled_code,omitempty"`
	ColumnName    string         `json:"column_name,omitempty"`
	TestMetadata  map[string]any `json:"test_metadata,omitempty"`
	AttachedNode  string         `json:"attached_node,omitempty"`
	FileKeyName   string         `json:"file_key_name,omitempty"`
}

func (t GenericTest) GroupName() string { return t.Config.Group }

// SingularTest is a one-off hand-written SQL assertion.
type SingularTest struct {
	ParsedResource
	Config       TestConfig `json:"config"`
	CompiledCode string     `json:"compiled_code,omitempty"`
}

func (t SingularTest) GroupName() string { return t.Config.Group }

// Analysis is a compiled-but-not-materialized SQL file.
type Analysis struct {
	ParsedResource
	Config       NodeConfig `json:"config"`
	CompiledCode string     `json:"compiled_code,omitempty"`
}

func (a Analysis) GroupName() string { return a.Config.Group }

// Operation is a standalone hook invocation (on-run-start/on-run-end).
type Operation struct {
	ParsedResource
	Config       NodeConfig `json:"config"`
	CompiledCode string     `json:"compiled_code,omitempty"`
	Index        int        `json:"index,omitempty"`
}

func (o Operation) GroupName() string { return o.Config.Group }

// SQLOperation is an ad hoc run-operation macro invocation.
type SQLOperation struct {
	ParsedResource
	Config       NodeConfig `json:"config"`
	CompiledCode string     `json:"compiled_code,omitempty"`
}

func (o SQLOperation) GroupName() string { return o.Config.Group }

// Node is the capability surface shared by every node variant, matching
// the tagged-sum-plus-capability-interface design: a resource_type
// discriminant with per-variant payloads behind one accessor surface.
type Node interface {
	Capability
}

// UnmarshalNode dispatches a raw node JSON document to its concrete Go
// type by the `resource_type` discriminator, further dispatching `test`
// entries into generic vs. singular variants by the presence of
// `column_name`/`attached_node`/`test_metadata` fields.
func UnmarshalNode(data []byte) (Node, error) {
	var probe struct {
		ResourceType ResourceType `json:"resource_type"`
		AttachedNode *string      `json:"attached_node"`
		ColumnName   *string      `json:"column_name"`
		TestMetadata json.RawMessage `json:"test_metadata"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ParseError{Detail: err.Error()}
	}

	unmarshalInto := func(v Node) (Node, error) {
		if err := json.Unmarshal(data, v); err != nil {
			return nil, &ParseError{Field: string(probe.ResourceType), Detail: err.Error()}
		}
		return v, nil
	}

	switch probe.ResourceType {
	case ResourceModel:
		return unmarshalInto(&Model{})
	case ResourceSeed:
		return unmarshalInto(&Seed{})
	case ResourceSnapshot:
		return unmarshalInto(&Snapshot{})
	case ResourceTest:
		isGeneric := probe.AttachedNode != nil || probe.ColumnName != nil || len(probe.TestMetadata) > 0
		if isGeneric {
			return unmarshalInto(&GenericTest{})
		}
		return unmarshalInto(&SingularTest{})
	case ResourceAnalysis:
		return unmarshalInto(&Analysis{})
	case ResourceOperation:
		return unmarshalInto(&Operation{})
	case ResourceSQLOperation:
		return unmarshalInto(&SQLOperation{})
	default:
		return nil, &ParseError{Field: "resource_type", Detail: fmt.Sprintf("unknown resource_type %q", probe.ResourceType)}
	}
}

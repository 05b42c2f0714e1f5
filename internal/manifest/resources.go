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

// ExternalTable and ExternalPartition describe a source's backing
// external table, carried for round-trip fidelity only.
type ExternalPartition struct {
	Name       string `json:"name,omitempty"`
	DataType   string `json:"data_type,omitempty"`
	Expression string `json:"expression,omitempty"`
}

type ExternalTable struct {
	Location   string              `json:"location,omitempty"`
	FileFormat string              `json:"file_format,omitempty"`
	Partitions []ExternalPartition `json:"partitions,omitempty"`
}

// Source is a declared upstream table. Sources have no upstream
// dependencies of their own.
type Source struct {
	UniqueIDField    string               `json:"unique_id"`
	SourceName       string               `json:"source_name"`
	NameField        string               `json:"name"`
	PackageNameField string               `json:"package_name"`
	Database         string               `json:"database,omitempty"`
	Schema           string               `json:"schema,omitempty"`
	Identifier       string               `json:"identifier,omitempty"`
	Loader           string               `json:"loader,omitempty"`
	Description      string               `json:"description,omitempty"`
	Tags             []string             `json:"tags,omitempty"`
	Freshness        *FreshnessThreshold  `json:"freshness,omitempty"`
	Quoting          Quoting              `json:"quoting,omitempty"`
	ExternalTable    *ExternalTable       `json:"external,omitempty"`
}

func (s Source) UniqueID() string          { return s.UniqueIDField }
func (s Source) Name() string              { return s.NameField }
func (s Source) PackageName() string       { return s.PackageNameField }
func (s Source) ResourceType() ResourceType { return ResourceSource }
func (s Source) DependsOn() DependsOn      { return DependsOn{} }
func (s Source) GroupName() string         { return "" }
func (s Source) Version() (string, bool)   { return "", false }
func (s Source) IsExternalNode() bool      { return false }

// MacroArgument documents a single macro parameter.
type MacroArgument struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Macro is a Jinja-like callable, looked up by name/locality/specificity
// rather than by graph edge.
type Macro struct {
	UniqueID    string          `json:"unique_id"`
	Name        string          `json:"name"`
	PackageName string          `json:"package_name"`
	MacroSQL    string          `json:"macro_sql,omitempty"`
	Arguments   []MacroArgument `json:"arguments,omitempty"`
	DependsOn   MacroDependsOn  `json:"depends_on,omitempty"`
}

// MacroDependsOn is a macro's dependency payload: only other macros, never
// graph nodes.
type MacroDependsOn struct {
	Macros []string `json:"macros,omitempty"`
}

// Exposure is a downstream consumer of the project's models (a dashboard,
// application, or notebook).
type Exposure struct {
	UniqueIDField    string    `json:"unique_id"`
	NameField        string    `json:"name"`
	PackageNameField string    `json:"package_name"`
	Type             string    `json:"type,omitempty"`
	Owner            Owner     `json:"owner,omitempty"`
	Maturity         string    `json:"maturity,omitempty"`
	URL              string    `json:"url,omitempty"`
	Description      string    `json:"description,omitempty"`
	DependsOnField   DependsOn `json:"depends_on"`
}

func (e Exposure) UniqueID() string           { return e.UniqueIDField }
func (e Exposure) Name() string               { return e.NameField }
func (e Exposure) PackageName() string        { return e.PackageNameField }
func (e Exposure) ResourceType() ResourceType { return ResourceExposure }
func (e Exposure) DependsOn() DependsOn       { return e.DependsOnField }
func (e Exposure) GroupName() string          { return "" }
func (e Exposure) Version() (string, bool)    { return "", false }
func (e Exposure) IsExternalNode() bool       { return false }

// MetricTypeParams carries the measure/window/filter configuration for a
// metric's computation.
type MetricTypeParams struct {
	Measure json.RawMessage `json:"measure,omitempty"`
	Window  json.RawMessage `json:"window,omitempty"`
	Numerator   json.RawMessage `json:"numerator,omitempty"`
	Denominator json.RawMessage `json:"denominator,omitempty"`
}

// Metric is a named, reusable business-metric definition.
type Metric struct {
	UniqueIDField    string            `json:"unique_id"`
	NameField        string            `json:"name"`
	PackageNameField string            `json:"package_name"`
	Type             string            `json:"type,omitempty"`
	TypeParams       MetricTypeParams  `json:"type_params,omitempty"`
	Filter           string            `json:"filter,omitempty"`
	Label            string            `json:"label,omitempty"`
	Description      string            `json:"description,omitempty"`
	DependsOnField   DependsOn         `json:"depends_on"`
}

func (m Metric) UniqueID() string           { return m.UniqueIDField }
func (m Metric) Name() string               { return m.NameField }
func (m Metric) PackageName() string        { return m.PackageNameField }
func (m Metric) ResourceType() ResourceType { return ResourceMetric }
func (m Metric) DependsOn() DependsOn       { return m.DependsOnField }
func (m Metric) GroupName() string          { return "" }
func (m Metric) Version() (string, bool)    { return "", false }
func (m Metric) IsExternalNode() bool       { return false }

// Group is a named governance boundary that nodes join via config.group.
type Group struct {
	UniqueID string `json:"unique_id"`
	Name     string `json:"name"`
	Owner    Owner  `json:"owner,omitempty"`
}

// SemanticModel binds a model to the MetricFlow semantic layer.
type SemanticModel struct {
	UniqueIDField    string    `json:"unique_id"`
	NameField        string    `json:"name"`
	PackageNameField string    `json:"package_name"`
	Model            string    `json:"model,omitempty"`
	DependsOnField   DependsOn `json:"depends_on"`
}

func (s SemanticModel) UniqueID() string           { return s.UniqueIDField }
func (s SemanticModel) Name() string               { return s.NameField }
func (s SemanticModel) PackageName() string        { return s.PackageNameField }
func (s SemanticModel) ResourceType() ResourceType { return ResourceSemanticModel }
func (s SemanticModel) DependsOn() DependsOn       { return s.DependsOnField }
func (s SemanticModel) GroupName() string          { return "" }
func (s SemanticModel) Version() (string, bool)    { return "", false }
func (s SemanticModel) IsExternalNode() bool       { return false }

// ExportConfig describes a saved query's materialized export target.
type ExportConfig struct {
	ExportAs string `json:"export_as,omitempty"`
	Schema   string `json:"schema,omitempty"`
	Alias    string `json:"alias,omitempty"`
}

// SavedQuery is a named, parameterized semantic-layer query.
type SavedQuery struct {
	UniqueIDField    string         `json:"unique_id"`
	NameField        string         `json:"name"`
	PackageNameField string         `json:"package_name"`
	Exports          []ExportConfig `json:"exports,omitempty"`
	DependsOnField   DependsOn      `json:"depends_on"`
}

func (s SavedQuery) UniqueID() string           { return s.UniqueIDField }
func (s SavedQuery) Name() string               { return s.NameField }
func (s SavedQuery) PackageName() string        { return s.PackageNameField }
func (s SavedQuery) ResourceType() ResourceType { return ResourceSavedQuery }
func (s SavedQuery) DependsOn() DependsOn       { return s.DependsOnField }
func (s SavedQuery) GroupName() string          { return "" }
func (s SavedQuery) Version() (string, bool)    { return "", false }
func (s SavedQuery) IsExternalNode() bool       { return false }

// UnitTestInputFixture and UnitTestOutputFixture carry the literal rows a
// unit test feeds in and expects out.
type UnitTestInputFixture struct {
	Input string          `json:"input"`
	Rows  json.RawMessage `json:"rows,omitempty"`
}

type UnitTestOutputFixture struct {
	Rows json.RawMessage `json:"rows,omitempty"`
}

// UnitTestOverrides lets a unit test stub macros, vars, and env vars for
// the duration of its run.
type UnitTestOverrides struct {
	Macros  map[string]any    `json:"macros,omitempty"`
	Vars    map[string]any    `json:"vars,omitempty"`
	EnvVars map[string]string `json:"env_vars,omitempty"`
}

// UnitTest is a fixture-based assertion against a single model's compiled
// logic, independent of a live warehouse.
type UnitTest struct {
	UniqueIDField    string                  `json:"unique_id"`
	NameField        string                  `json:"name"`
	PackageNameField string                  `json:"package_name"`
	Model            string                  `json:"model,omitempty"`
	Given            []UnitTestInputFixture  `json:"given,omitempty"`
	Expect           UnitTestOutputFixture   `json:"expect"`
	Overrides        UnitTestOverrides       `json:"overrides,omitempty"`
	DependsOnField   DependsOn               `json:"depends_on"`
}

func (u UnitTest) UniqueID() string           { return u.UniqueIDField }
func (u UnitTest) Name() string               { return u.NameField }
func (u UnitTest) PackageName() string        { return u.PackageNameField }
func (u UnitTest) ResourceType() ResourceType { return ResourceUnitTest }
func (u UnitTest) DependsOn() DependsOn       { return u.DependsOnField }
func (u UnitTest) GroupName() string          { return "" }
func (u UnitTest) Version() (string, bool)    { return "", false }
func (u UnitTest) IsExternalNode() bool       { return false }

// Doc is an opaque documentation block referenced via doc(name[, package]).
type Doc struct {
	UniqueID    string `json:"unique_id"`
	Name        string `json:"name"`
	PackageName string `json:"package_name"`
	BlockContents string `json:"block_contents,omitempty"`
}

// Metadata is the manifest's header: generation provenance, not consumed
// by resolution or graph construction.
type Metadata struct {
	DbtSchemaVersion string `json:"dbt_schema_version,omitempty"`
	DbtVersion       string `json:"dbt_version,omitempty"`
	GeneratedAt      string `json:"generated_at,omitempty"`
	ProjectName      string `json:"project_name,omitempty"`
	Adapter          string `json:"adapter_type,omitempty"`
}

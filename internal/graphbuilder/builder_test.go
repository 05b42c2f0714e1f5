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

package graphbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fireflyframework/dbt-oxide/internal/graph"
	"github.com/fireflyframework/dbt-oxide/internal/manifest"
)

func model(uid, name, pkg string, deps ...string) *manifest.Model {
	return &manifest.Model{
		ParsedResource: manifest.ParsedResource{
			UniqueIDField:     uid,
			NameField:         name,
			PackageNameField:  pkg,
			ResourceTypeField: manifest.ResourceModel,
			DependsOnField:    manifest.DependsOn{Nodes: deps},
		},
	}
}

func TestBuildGraphEmpty(t *testing.T) {
	m := manifest.New()
	g := Build(m)
	assert.Equal(t, 0, g.NodeCount())
}

func TestBuildGraphSingleDependency(t *testing.T) {
	m := manifest.New()
	m.Nodes["model.t.a"] = model("model.t.a", "a", "t")
	m.Nodes["model.t.b"] = model("model.t.b", "b", "t", "model.t.a")

	g := Build(m)
	assert.Equal(t, 2, g.NodeCount())
	assert.Len(t, g.Edges(), 1)
	assert.Equal(t, map[string]bool{"model.t.a": true}, g.Ancestors("model.t.b", graph.Unlimited))
}

func TestBuildGraphIncludesAllManifestTypes(t *testing.T) {
	m := manifest.New()
	m.Nodes["model.t.a"] = model("model.t.a", "a", "t")
	m.Sources["source.t.raw.events"] = manifest.Source{UniqueIDField: "source.t.raw.events", SourceName: "raw", NameField: "events", PackageNameField: "t"}
	m.Exposures["exposure.t.dash"] = manifest.Exposure{UniqueIDField: "exposure.t.dash", NameField: "dash", PackageNameField: "t", DependsOnField: manifest.DependsOn{Nodes: []string{"model.t.a"}}}
	m.Metrics["metric.t.count"] = manifest.Metric{UniqueIDField: "metric.t.count", NameField: "count", PackageNameField: "t", DependsOnField: manifest.DependsOn{Nodes: []string{"model.t.a"}}}
	m.SemanticModels["semantic_model.t.sm"] = manifest.SemanticModel{UniqueIDField: "semantic_model.t.sm", NameField: "sm", PackageNameField: "t", DependsOnField: manifest.DependsOn{Nodes: []string{"model.t.a"}}}
	m.SavedQueries["saved_query.t.sq"] = manifest.SavedQuery{UniqueIDField: "saved_query.t.sq", NameField: "sq", PackageNameField: "t", DependsOnField: manifest.DependsOn{Nodes: []string{"model.t.a"}}}
	m.UnitTests["unit_test.t.ut"] = manifest.UnitTest{UniqueIDField: "unit_test.t.ut", NameField: "ut", PackageNameField: "t", DependsOnField: manifest.DependsOn{Nodes: []string{"model.t.a"}}}

	g := Build(m)
	assert.Equal(t, 7, g.NodeCount())
	descendants := g.Descendants("model.t.a", graph.Unlimited)
	assert.Equal(t, map[string]bool{
		"exposure.t.dash":       true,
		"metric.t.count":        true,
		"semantic_model.t.sm":   true,
		"saved_query.t.sq":      true,
		"unit_test.t.ut":        true,
	}, descendants)
}

func TestBuildGraphWithSourceDependency(t *testing.T) {
	m := manifest.New()
	m.Sources["source.t.raw.events"] = manifest.Source{UniqueIDField: "source.t.raw.events", SourceName: "raw", NameField: "events", PackageNameField: "t"}
	m.Nodes["model.t.stg_events"] = model("model.t.stg_events", "stg_events", "t", "source.t.raw.events")

	g := Build(m)
	assert.Equal(t, map[string]bool{"model.t.stg_events": true}, g.Descendants("source.t.raw.events", graph.Unlimited))
}

func TestBuildGraphGenericTestParentTestEdge(t *testing.T) {
	m := manifest.New()
	m.Nodes["model.t.a"] = model("model.t.a", "a", "t")
	m.Nodes["test.t.unique_a_id"] = &manifest.GenericTest{
		ParsedResource: manifest.ParsedResource{
			UniqueIDField:     "test.t.unique_a_id",
			NameField:         "unique_a_id",
			PackageNameField:  "t",
			ResourceTypeField: manifest.ResourceTest,
			DependsOnField:    manifest.DependsOn{Nodes: []string{"model.t.a"}},
		},
		AttachedNode: "model.t.a",
	}

	g := Build(m)
	label, ok := g.EdgeWeight("model.t.a", "test.t.unique_a_id")
	require.True(t, ok)
	assert.Equal(t, graph.TestEdgeLabel, label)

	assert.Equal(t, map[string]bool{}, g.Ancestors("test.t.unique_a_id", graph.Unlimited))
}

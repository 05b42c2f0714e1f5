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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEmptyManifest(t *testing.T) {
	m, err := DecodeBytes([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, m.Nodes)
	assert.Empty(t, m.Sources)
}

func TestDecodeModelWithDefaults(t *testing.T) {
	doc := `{
		"nodes": {
			"model.proj.a": {
				"unique_id": "model.proj.a",
				"name": "a",
				"package_name": "proj",
				"resource_type": "model",
				"depends_on": {},
				"config": {}
			}
		}
	}`
	m, err := DecodeBytes([]byte(doc))
	require.NoError(t, err)

	n, ok := m.Nodes["model.proj.a"]
	require.True(t, ok)
	assert.Equal(t, "a", n.Name())
	assert.Empty(t, n.DependsOn().Nodes)

	model, isModel := n.(*Model)
	require.True(t, isModel)
	assert.True(t, model.Config.Enabled)
	assert.Equal(t, "view", model.Config.Materialized)
	_, hasVersion := model.Version()
	assert.False(t, hasVersion)
}

func TestDecodeInvalidJSONReturnsParseError(t *testing.T) {
	_, err := DecodeBytes([]byte(`{not valid json`))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestDecodeGenericVsSingularTest(t *testing.T) {
	doc := `{
		"nodes": {
			"test.proj.generic": {
				"unique_id": "test.proj.generic",
				"name": "unique_a_id",
				"package_name": "proj",
				"resource_type": "test",
				"depends_on": {"nodes": ["model.proj.a"]},
				"config": {},
				"attached_node": "model.proj.a",
				"column_name": "id"
			},
			"test.proj.singular": {
				"unique_id": "test.proj.singular",
				"name": "assert_positive",
				"package_name": "proj",
				"resource_type": "test",
				"depends_on": {"nodes": ["model.proj.a"]},
				"config": {}
			}
		}
	}`
	m, err := DecodeBytes([]byte(doc))
	require.NoError(t, err)

	_, isGeneric := m.Nodes["test.proj.generic"].(*GenericTest)
	assert.True(t, isGeneric)

	_, isSingular := m.Nodes["test.proj.singular"].(*SingularTest)
	assert.True(t, isSingular)
}

func TestDecodeUnknownFieldsIgnored(t *testing.T) {
	doc := `{"nodes": {}, "totally_unknown_future_field": {"whatever": true}}`
	_, err := DecodeBytes([]byte(doc))
	require.NoError(t, err)
}

func modelWithVersion(uid, name, pkg, version string) *Model {
	v := VersionValue(version)
	return &Model{
		ParsedResource: ParsedResource{
			UniqueIDField:    uid,
			NameField:        name,
			PackageNameField: pkg,
			ResourceTypeField: ResourceModel,
		},
		VersionField: &v,
	}
}

func plainModel(uid, name, pkg string) *Model {
	return &Model{
		ParsedResource: ParsedResource{
			UniqueIDField:    uid,
			NameField:        name,
			PackageNameField: pkg,
			ResourceTypeField: ResourceModel,
		},
	}
}

// A node in the current project wins over a homonymous node elsewhere.
func TestResolveRefPackagePriority(t *testing.T) {
	m := New()
	m.Nodes["model.root.a"] = plainModel("model.root.a", "a", "root")
	m.Nodes["model.other.a"] = plainModel("model.other.a", "a", "other")

	n, ok := m.ResolveRef("", "a", nil, nil, "root", "root")
	require.True(t, ok)
	assert.Equal(t, "model.root.a", n.UniqueID())
}

func TestResolveRefExplicitPackage(t *testing.T) {
	m := New()
	m.Nodes["model.root.a"] = plainModel("model.root.a", "a", "root")
	m.Nodes["model.other.a"] = plainModel("model.other.a", "a", "other")

	pkg := "other"
	n, ok := m.ResolveRef("", "a", &pkg, nil, "root", "root")
	require.True(t, ok)
	assert.Equal(t, "model.other.a", n.UniqueID())
}

func TestResolveRefVersioned(t *testing.T) {
	m := New()
	m.Nodes["model.root.a.v1"] = modelWithVersion("model.root.a.v1", "a", "root", "1")
	m.Nodes["model.root.a.v2"] = modelWithVersion("model.root.a.v2", "a", "root", "2")

	v := "2"
	n, ok := m.ResolveRef("", "a", nil, &v, "root", "root")
	require.True(t, ok)
	assert.Equal(t, "model.root.a.v2", n.UniqueID())
}

func TestResolveRefMiss(t *testing.T) {
	m := New()
	_, ok := m.ResolveRef("", "nonexistent", nil, nil, "root", "root")
	assert.False(t, ok)
}

// BuildParentMap and BuildChildMap are exact
// inverses over UIDs appearing as keys in both.
func TestParentChildMapsAreInverses(t *testing.T) {
	m := New()
	m.Nodes["model.t.a"] = plainModel("model.t.a", "a", "t")
	b := plainModel("model.t.b", "b", "t")
	b.DependsOnField = DependsOn{Nodes: []string{"model.t.a"}}
	m.Nodes["model.t.b"] = b

	parents := m.BuildParentMap()
	children := m.BuildChildMap()

	for u, ups := range parents {
		for _, v := range ups {
			if _, ok := children[v]; !ok {
				continue
			}
			assert.Contains(t, children[v], u)
		}
	}
	for v, downs := range children {
		for _, u := range downs {
			assert.Contains(t, parents[u], v)
		}
	}
}

func TestBuildGroupMapSkipsEmpty(t *testing.T) {
	m := New()
	a := plainModel("model.t.a", "a", "t")
	a.Config = NodeConfig{Group: "finance"}
	m.Nodes["model.t.a"] = a
	b := plainModel("model.t.b", "b", "t")
	m.Nodes["model.t.b"] = b

	groups := m.BuildGroupMap()
	assert.Equal(t, []string{"model.t.a"}, groups["finance"])
	assert.NotContains(t, groups, "")
}

// Root-package macros outrank Imported, which outrank Core.
func TestMacroPriorityRootBeatsImported(t *testing.T) {
	macros := map[string]Macro{
		"macro.root.my_macro":     {UniqueID: "macro.root.my_macro", Name: "my_macro", PackageName: "root"},
		"macro.imported.my_macro": {UniqueID: "macro.imported.my_macro", Name: "my_macro", PackageName: "imported_pkg"},
	}
	uid, ok := FindMacroByName(macros, "my_macro", "root", map[string]bool{"dbt": true}, nil)
	require.True(t, ok)
	assert.Equal(t, "macro.root.my_macro", uid)
}

func TestMacroPriorityImportedBeatsCore(t *testing.T) {
	macros := map[string]Macro{
		"macro.dbt.my_macro":      {UniqueID: "macro.dbt.my_macro", Name: "my_macro", PackageName: "dbt"},
		"macro.imported.my_macro": {UniqueID: "macro.imported.my_macro", Name: "my_macro", PackageName: "imported_pkg"},
	}
	uid, ok := FindMacroByName(macros, "my_macro", "root", map[string]bool{"dbt": true}, nil)
	require.True(t, ok)
	assert.Equal(t, "macro.imported.my_macro", uid)
}

// Adapter-chain position outranks locality for materialization macros.
func TestMaterializationAdapterPrecedence(t *testing.T) {
	macros := map[string]Macro{
		"macro.dbt.materialization_view_default":  {UniqueID: "macro.dbt.materialization_view_default", Name: "materialization_view_default", PackageName: "dbt"},
		"macro.dbt.materialization_view_postgres": {UniqueID: "macro.dbt.materialization_view_postgres", Name: "materialization_view_postgres", PackageName: "dbt"},
	}

	uid, ok := FindMaterializationMacroByName(macros, "root", "view", []string{"postgres", "default"}, map[string]bool{"dbt": true}, false)
	require.True(t, ok)
	assert.Equal(t, "macro.dbt.materialization_view_postgres", uid)

	uid, ok = FindMaterializationMacroByName(macros, "root", "view", []string{"snowflake", "default"}, map[string]bool{"dbt": true}, false)
	require.True(t, ok)
	assert.Equal(t, "macro.dbt.materialization_view_default", uid)
}

func TestMaterializationCoreVsImportedOverride(t *testing.T) {
	macros := map[string]Macro{
		"macro.dbt.materialization_view_default":      {UniqueID: "macro.dbt.materialization_view_default", Name: "materialization_view_default", PackageName: "dbt"},
		"macro.imported.materialization_view_default": {UniqueID: "macro.imported.materialization_view_default", Name: "materialization_view_default", PackageName: "imported_pkg"},
	}

	uid, ok := FindMaterializationMacroByName(macros, "root", "view", []string{"default"}, map[string]bool{"dbt": true}, false)
	require.True(t, ok)
	assert.Equal(t, "macro.dbt.materialization_view_default", uid, "Core wins when override is disallowed")

	uid, ok = FindMaterializationMacroByName(macros, "root", "view", []string{"default"}, map[string]bool{"dbt": true}, true)
	require.True(t, ok)
	assert.Equal(t, "macro.imported.materialization_view_default", uid, "Imported wins when override is allowed")
}

func TestStoreNotLoaded(t *testing.T) {
	s := NewStore()
	err := s.View(func(*Manifest) error { return nil })
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStoreLoadThenView(t *testing.T) {
	s := NewStore()
	err := s.Load(strings.NewReader(`{"nodes": {}}`))
	require.NoError(t, err)

	err = s.View(func(m *Manifest) error {
		assert.Empty(t, m.Nodes)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreUpdateAddsNode(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(strings.NewReader(`{"nodes": {}}`)))

	err := s.Update(func(m *Manifest) error {
		m.Nodes["model.t.a"] = plainModel("model.t.a", "a", "t")
		return nil
	})
	require.NoError(t, err)

	err = s.View(func(m *Manifest) error {
		assert.Len(t, m.Nodes, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreUpdateBeforeLoad(t *testing.T) {
	s := NewStore()
	err := s.Update(func(*Manifest) error { return nil })
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStorePanicPoisons(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(strings.NewReader(`{"nodes": {}}`)))

	err := s.Update(func(*Manifest) error { panic("boom") })
	assert.ErrorIs(t, err, ErrLockPoisoned)

	err = s.View(func(*Manifest) error { return nil })
	assert.ErrorIs(t, err, ErrLockPoisoned)

	err = s.Load(strings.NewReader(`{"nodes": {}}`))
	assert.ErrorIs(t, err, ErrLockPoisoned)
}

func TestStoreLoadFailureLeavesPriorStateUnchanged(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(strings.NewReader(`{"nodes": {}}`)))

	err := s.Load(strings.NewReader(`{not valid`))
	require.Error(t, err)

	err = s.View(func(m *Manifest) error {
		assert.Empty(t, m.Nodes)
		return nil
	})
	require.NoError(t, err)
}

// Decoding the encoder's output must yield a structure observably
// equivalent to the input. Round-trip through Decode -> Encode ->
// Decode -> Encode and compare the two encoded forms byte-for-byte:
// encoding/json sorts string map keys, so two encodes of equivalent
// manifests must agree exactly.
func TestManifestRoundTrip(t *testing.T) {
	doc := `{
		"metadata": {"dbt_schema_version": "v12", "project_name": "proj"},
		"nodes": {
			"model.proj.a": {
				"unique_id": "model.proj.a", "name": "a", "package_name": "proj",
				"resource_type": "model", "depends_on": {}, "config": {}
			},
			"seed.proj.raw": {
				"unique_id": "seed.proj.raw", "name": "raw", "package_name": "proj",
				"resource_type": "seed", "depends_on": {}, "config": {}
			},
			"snapshot.proj.hist": {
				"unique_id": "snapshot.proj.hist", "name": "hist", "package_name": "proj",
				"resource_type": "snapshot", "depends_on": {"nodes": ["model.proj.a"]}, "config": {}
			},
			"test.proj.unique_a_id": {
				"unique_id": "test.proj.unique_a_id", "name": "unique_a_id", "package_name": "proj",
				"resource_type": "test", "depends_on": {"nodes": ["model.proj.a"]}, "config": {},
				"attached_node": "model.proj.a", "column_name": "id"
			},
			"test.proj.assert_positive": {
				"unique_id": "test.proj.assert_positive", "name": "assert_positive", "package_name": "proj",
				"resource_type": "test", "depends_on": {"nodes": ["model.proj.a"]}, "config": {}
			}
		},
		"sources": {
			"source.proj.raw.events": {
				"unique_id": "source.proj.raw.events", "source_name": "raw", "name": "events", "package_name": "proj"
			}
		},
		"macros": {
			"macro.proj.my_macro": {"unique_id": "macro.proj.my_macro", "name": "my_macro", "package_name": "proj"}
		},
		"exposures": {
			"exposure.proj.dash": {"unique_id": "exposure.proj.dash", "name": "dash", "package_name": "proj", "depends_on": {"nodes": ["model.proj.a"]}}
		},
		"metrics": {
			"metric.proj.count": {"unique_id": "metric.proj.count", "name": "count", "package_name": "proj", "depends_on": {"nodes": ["model.proj.a"]}}
		},
		"groups": {
			"group.proj.finance": {"unique_id": "group.proj.finance", "name": "finance"}
		},
		"semantic_models": {
			"semantic_model.proj.sm": {"unique_id": "semantic_model.proj.sm", "name": "sm", "package_name": "proj", "depends_on": {"nodes": ["model.proj.a"]}}
		},
		"saved_queries": {
			"saved_query.proj.sq": {"unique_id": "saved_query.proj.sq", "name": "sq", "package_name": "proj", "depends_on": {"nodes": ["model.proj.a"]}}
		},
		"unit_tests": {
			"unit_test.proj.ut": {"unique_id": "unit_test.proj.ut", "name": "ut", "package_name": "proj", "depends_on": {"nodes": ["model.proj.a"]}}
		}
	}`

	m1, err := DecodeBytes([]byte(doc))
	require.NoError(t, err)

	encoded1, err := m1.EncodeBytes()
	require.NoError(t, err)

	m2, err := DecodeBytes(encoded1)
	require.NoError(t, err)

	encoded2, err := m2.EncodeBytes()
	require.NoError(t, err)

	assert.Equal(t, string(encoded1), string(encoded2))

	assert.Len(t, m2.Nodes, 5)
	assert.Len(t, m2.Sources, 1)
	assert.Len(t, m2.Macros, 1)
	assert.Len(t, m2.Exposures, 1)
	assert.Len(t, m2.Metrics, 1)
	assert.Len(t, m2.Groups, 1)
	assert.Len(t, m2.SemanticModels, 1)
	assert.Len(t, m2.SavedQueries, 1)
	assert.Len(t, m2.UnitTests, 1)

	_, isModel := m2.Nodes["model.proj.a"].(*Model)
	assert.True(t, isModel)
	_, isSeed := m2.Nodes["seed.proj.raw"].(*Seed)
	assert.True(t, isSeed)
	_, isSnapshot := m2.Nodes["snapshot.proj.hist"].(*Snapshot)
	assert.True(t, isSnapshot)
	_, isGeneric := m2.Nodes["test.proj.unique_a_id"].(*GenericTest)
	assert.True(t, isGeneric)
	_, isSingular := m2.Nodes["test.proj.assert_positive"].(*SingularTest)
	assert.True(t, isSingular)
}

// Every dependency-bearing resource_type the decoder dispatches on must
// still be present, by unique_id, in the re-encoded form.
func TestEncodeManifestWithAllNodeTypes(t *testing.T) {
	m := New()
	m.Nodes["model.proj.m"] = plainModel("model.proj.m", "m", "proj")
	m.Nodes["seed.proj.s"] = &Seed{ParsedResource: ParsedResource{
		UniqueIDField: "seed.proj.s", NameField: "s", PackageNameField: "proj", ResourceTypeField: ResourceSeed,
	}}
	m.Nodes["snapshot.proj.sn"] = &Snapshot{ParsedResource: ParsedResource{
		UniqueIDField: "snapshot.proj.sn", NameField: "sn", PackageNameField: "proj", ResourceTypeField: ResourceSnapshot,
	}}
	m.Nodes["analysis.proj.an"] = &Analysis{ParsedResource: ParsedResource{
		UniqueIDField: "analysis.proj.an", NameField: "an", PackageNameField: "proj", ResourceTypeField: ResourceAnalysis,
	}}
	m.Nodes["operation.proj.op"] = &Operation{ParsedResource: ParsedResource{
		UniqueIDField: "operation.proj.op", NameField: "op", PackageNameField: "proj", ResourceTypeField: ResourceOperation,
	}}
	m.Nodes["sql_operation.proj.so"] = &SQLOperation{ParsedResource: ParsedResource{
		UniqueIDField: "sql_operation.proj.so", NameField: "so", PackageNameField: "proj", ResourceTypeField: ResourceSQLOperation,
	}}
	m.Nodes["test.proj.t1"] = &GenericTest{ParsedResource: ParsedResource{
		UniqueIDField: "test.proj.t1", NameField: "t1", PackageNameField: "proj", ResourceTypeField: ResourceTest,
	}, AttachedNode: "model.proj.m"}
	m.Nodes["test.proj.t2"] = &SingularTest{ParsedResource: ParsedResource{
		UniqueIDField: "test.proj.t2", NameField: "t2", PackageNameField: "proj", ResourceTypeField: ResourceTest,
	}}

	encoded, err := m.EncodeBytes()
	require.NoError(t, err)
	out := string(encoded)

	for uid := range m.Nodes {
		assert.Contains(t, out, uid)
	}

	decoded, err := DecodeBytes(encoded)
	require.NoError(t, err)
	assert.Len(t, decoded.Nodes, len(m.Nodes))
}

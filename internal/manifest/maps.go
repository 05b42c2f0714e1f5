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

// dependencyBearing returns every entity, across every collection that
// can declare depends_on.nodes (nodes, sources, exposures, metrics,
// semantic models, saved queries, unit tests), keyed by UID. Sources
// carry no dependencies but still appear as keys with an empty list.
func (m *Manifest) dependencyBearing() map[string]DependsOn {
	out := make(map[string]DependsOn)
	for uid, n := range m.Nodes {
		out[uid] = n.DependsOn()
	}
	for uid := range m.Sources {
		out[uid] = DependsOn{}
	}
	for uid, e := range m.Exposures {
		out[uid] = e.DependsOnField
	}
	for uid, me := range m.Metrics {
		out[uid] = me.DependsOnField
	}
	for uid, sm := range m.SemanticModels {
		out[uid] = sm.DependsOnField
	}
	for uid, sq := range m.SavedQueries {
		out[uid] = sq.DependsOnField
	}
	for uid, ut := range m.UnitTests {
		out[uid] = ut.DependsOnField
	}
	return out
}

// BuildParentMap returns uid -> direct upstream uids. Every node, source,
// exposure, metric, semantic model, saved query, and unit test appears as
// a key exactly once; sources map to an empty list.
func (m *Manifest) BuildParentMap() map[string][]string {
	parents := make(map[string][]string)
	for uid, dep := range m.dependencyBearing() {
		parents[uid] = append([]string(nil), dep.Nodes...)
	}
	return parents
}

// BuildChildMap returns the reverse of BuildParentMap: uid -> direct
// downstream uids. A parent uid not itself declared in the manifest
// contributes to no child-map entry: it gets no key, and the dependency
// on it is not recorded anywhere in the result.
func (m *Manifest) BuildChildMap() map[string][]string {
	parents := m.BuildParentMap()
	children := make(map[string][]string, len(parents))
	for uid := range parents {
		children[uid] = nil
	}
	for uid, ups := range parents {
		for _, up := range ups {
			if _, known := children[up]; known {
				children[up] = append(children[up], uid)
			}
		}
	}
	return children
}

// BuildGroupMap returns group_name -> [uid, ...], collected from each
// node's config.group, skipping nodes with no group.
func (m *Manifest) BuildGroupMap() map[string][]string {
	groups := make(map[string][]string)
	for uid, n := range m.Nodes {
		g := n.GroupName()
		if g == "" {
			continue
		}
		groups[g] = append(groups[g], uid)
	}
	return groups
}

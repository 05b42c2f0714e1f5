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

// anyPackage is the sentinel meaning "any package matches" in a resolver
// search list.
const anyPackage = ""

// packagesToSearch computes the ordered package search list used by ref,
// source, and doc resolution.
func packagesToSearch(targetPackage *string, currentProject, nodePackage string) []string {
	if targetPackage != nil {
		return []string{*targetPackage}
	}
	if currentProject == nodePackage {
		return []string{currentProject, anyPackage}
	}
	return []string{currentProject, nodePackage, anyPackage}
}

func packageMatches(searchEntry, candidatePackage string) bool {
	return searchEntry == anyPackage || searchEntry == candidatePackage
}

// ResolveRef implements ref(name[, package][, version]) resolution.
// callerUID is accepted for diagnostic symmetry only; it never affects
// the result.
func (m *Manifest) ResolveRef(callerUID string, targetName string, targetPackage *string, targetVersion *string, currentProject, nodePackage string) (Node, bool) {
	_ = callerUID
	search := packagesToSearch(targetPackage, currentProject, nodePackage)

	for _, pkg := range search {
		for _, n := range m.Nodes {
			if n.Name() != targetName {
				continue
			}
			if !packageMatches(pkg, n.PackageName()) {
				continue
			}
			if targetVersion != nil {
				v, ok := n.Version()
				if !ok || v != *targetVersion {
					continue
				}
			}
			return n, true
		}
	}
	return nil, false
}

// ResolveSource implements source(name, table) resolution.
func (m *Manifest) ResolveSource(sourceName, tableName, currentProject, nodePackage string) (Source, bool) {
	search := packagesToSearch(nil, currentProject, nodePackage)

	for _, pkg := range search {
		for _, s := range m.Sources {
			if s.SourceName != sourceName || s.NameField != tableName {
				continue
			}
			if !packageMatches(pkg, s.PackageNameField) {
				continue
			}
			return s, true
		}
	}
	return Source{}, false
}

// ResolveDoc implements doc(name[, package]) resolution.
func (m *Manifest) ResolveDoc(name string, pkg *string, currentProject, nodePackage string) (Doc, bool) {
	search := packagesToSearch(pkg, currentProject, nodePackage)

	for _, entry := range search {
		for _, d := range m.Docs {
			if d.Name != name {
				continue
			}
			if !packageMatches(entry, d.PackageName) {
				continue
			}
			return d, true
		}
	}
	return Doc{}, false
}

// ResolveMetric returns the UID of the first metric matching name and,
// if pkg is given, package_name.
func (m *Manifest) ResolveMetric(name string, pkg *string) (string, bool) {
	for uid, me := range m.Metrics {
		if me.NameField != name {
			continue
		}
		if pkg != nil && me.PackageNameField != *pkg {
			continue
		}
		return uid, true
	}
	return "", false
}

// ResolveSavedQuery returns the UID of the first saved query matching
// name and, if pkg is given, package_name.
func (m *Manifest) ResolveSavedQuery(name string, pkg *string) (string, bool) {
	for uid, sq := range m.SavedQueries {
		if sq.NameField != name {
			continue
		}
		if pkg != nil && sq.PackageNameField != *pkg {
			continue
		}
		return uid, true
	}
	return "", false
}

// DisabledLookup would resolve name (and optional package) against the
// manifest's disabled-node collection. Disabled entries are carried as an
// opaque blob for round-tripping; no caller needs them resolved yet.
func (m *Manifest) DisabledLookup(name string, pkg *string) ([]Node, error) {
	return nil, ErrNotImplemented
}

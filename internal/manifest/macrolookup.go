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

// Locality is the categorical priority bucket a macro package falls
// into relative to the root project and the set of internal packages.
// Ascending order is Core < Imported < Root; Root is the most preferred
// for name lookup.
type Locality int

const (
	LocalityCore Locality = iota + 1
	LocalityImported
	LocalityRoot
)

// GetLocality classifies macroPackage relative to rootProjectName and
// internalPackages.
func GetLocality(macroPackage, rootProjectName string, internalPackages map[string]bool) Locality {
	switch {
	case macroPackage == rootProjectName:
		return LocalityRoot
	case internalPackages[macroPackage]:
		return LocalityCore
	default:
		return LocalityImported
	}
}

// MacroCandidate bundles a macro hit with its locality for priority
// ordering.
type MacroCandidate struct {
	Locality    Locality
	UniqueID    string
	PackageName string
	Name        string
}

// less orders candidates ascending by locality, then lexicographically by
// unique_id, package_name, name. The "best" candidate is the maximum
// under this order.
func (c MacroCandidate) less(o MacroCandidate) bool {
	if c.Locality != o.Locality {
		return c.Locality < o.Locality
	}
	if c.UniqueID != o.UniqueID {
		return c.UniqueID < o.UniqueID
	}
	if c.PackageName != o.PackageName {
		return c.PackageName < o.PackageName
	}
	return c.Name < o.Name
}

func newMacroCandidate(def Macro, locality Locality) MacroCandidate {
	return MacroCandidate{
		Locality:    locality,
		UniqueID:    def.UniqueID,
		PackageName: def.PackageName,
		Name:        def.Name,
	}
}

// GetMaterializationMacroName formats the conventional materialization
// macro name for a given materialization and adapter type.
func GetMaterializationMacroName(name, adapterType string) string {
	return "materialization_" + name + "_" + adapterType
}

// FindMacrosByName returns every macro candidate whose name matches.
func FindMacrosByName(macros map[string]Macro, name, rootProjectName string, internalPackages map[string]bool) []MacroCandidate {
	var out []MacroCandidate
	for _, def := range macros {
		if def.Name != name {
			continue
		}
		locality := GetLocality(def.PackageName, rootProjectName, internalPackages)
		out = append(out, newMacroCandidate(def, locality))
	}
	return out
}

// FindMacroByName returns the UID of the best macro named name, or
// ok=false if none match. If pkg is non-nil, only candidates in that
// package are considered.
func FindMacroByName(macros map[string]Macro, name, rootProjectName string, internalPackages map[string]bool, pkg *string) (string, bool) {
	candidates := FindMacrosByName(macros, name, rootProjectName, internalPackages)

	if pkg != nil {
		filtered := candidates[:0]
		for _, c := range candidates {
			if c.PackageName == *pkg {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	if len(candidates) == 0 {
		return "", false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if best.less(c) {
			best = c
		}
	}
	return best.UniqueID, true
}

// MaterializationCandidate extends MacroCandidate with an adapter-chain
// specificity: the index of the adapter type in the caller's priority
// chain, 0 being most specific.
type MaterializationCandidate struct {
	Locality    Locality
	UniqueID    string
	PackageName string
	Name        string
	Specificity int
}

// less orders candidates by specificity first (lower index = higher
// priority, so the candidate with the lower specificity value compares
// as the "larger"/preferred element for a max-based pick), then by
// locality.
func (c MaterializationCandidate) less(o MaterializationCandidate) bool {
	if c.Specificity != o.Specificity {
		return c.Specificity > o.Specificity
	}
	return c.Locality < o.Locality
}

// FindMaterializationMacroByName resolves the materialization macro for
// matlName given an adapter chain, internal-package set, and whether a
// user package is allowed to override a Core macro of the same name.
func FindMaterializationMacroByName(macros map[string]Macro, projectName, matlName string, adapterTypes []string, internalPackages map[string]bool, allowPackageOverride bool) (string, bool) {
	var all []MaterializationCandidate

	for specificity, adapterType := range adapterTypes {
		fullName := GetMaterializationMacroName(matlName, adapterType)
		for _, mc := range FindMacrosByName(macros, fullName, projectName, internalPackages) {
			all = append(all, MaterializationCandidate{
				Locality:    mc.Locality,
				UniqueID:    mc.UniqueID,
				PackageName: mc.PackageName,
				Name:        mc.Name,
				Specificity: specificity,
			})
		}
	}

	if len(all) > 0 && !allowPackageOverride {
		hasCore := false
		for _, c := range all {
			if c.Locality == LocalityCore {
				hasCore = true
				break
			}
		}
		if hasCore {
			filtered := all[:0]
			for _, c := range all {
				if c.Locality != LocalityImported {
					filtered = append(filtered, c)
				}
			}
			all = filtered
		}
	}

	if len(all) == 0 {
		return "", false
	}

	best := all[0]
	for _, c := range all[1:] {
		if best.less(c) {
			best = c
		}
	}
	return best.UniqueID, true
}

// FindGenerateMacroByName would resolve a "generate_X_name" override
// macro (e.g. generate_schema_name). No caller needs it yet.
func FindGenerateMacroByName(macros map[string]Macro, name, rootProjectName string, internalPackages map[string]bool) (string, error) {
	return "", ErrNotImplemented
}

// GetMacrosByName is declared as the unfiltered counterpart to
// FindMacroByName but has no behavior: it always returns
// ErrNotImplemented and no candidates. FindMacrosByName returns every
// candidate for a name.
func GetMacrosByName(macros map[string]Macro, name string) ([]MacroCandidate, error) {
	return nil, ErrNotImplemented
}

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

package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fireflyframework/dbt-oxide/internal/config"
)

var reader = bufio.NewReader(os.Stdin)

// Prompt asks the user for input with a default value.
func Prompt(label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("  %s %s [%s]: ", StylePrimary.Render("?"), label, StyleMuted.Render(defaultVal))
	} else {
		fmt.Printf("  %s %s: ", StylePrimary.Render("?"), label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// knownAdapterTypes are the warehouse adapters the materialization-lookup
// adapter chain (config.adapter_type, plus "default") is commonly built
// from; "other" lets an operator name an adapter outside this list.
var knownAdapterTypes = []string{"postgres", "snowflake", "bigquery", "redshift", "databricks", "spark", "duckdb", "other"}

// PromptRootProjectName asks for the root project's package name,
// re-prompting until the answer is a valid package identifier (it is
// compared directly against every macro's package_name during macro
// lookup's Root-locality check, so a malformed value silently
// breaks macro/materialization priority rather than erroring).
func PromptRootProjectName(defaultVal string) string {
	for {
		name := Prompt("Root project name", defaultVal)
		if config.ValidPackageName(name) {
			return name
		}
		fmt.Println(StyleWarning.Render("  ! ") + "package names must be lowercase letters, digits, and underscores, starting with a letter or underscore")
	}
}

// PromptAdapterType asks for the default warehouse adapter, offering the
// common dbt adapters as a menu with a free-text fallback. The returned
// value seeds the adapter chain (config.adapter_type, then "default")
// that materialization lookup ranks by specificity.
func PromptAdapterType(defaultVal string) string {
	defaultIdx := len(knownAdapterTypes) - 1
	for i, a := range knownAdapterTypes {
		if a == defaultVal {
			defaultIdx = i
			break
		}
	}
	choice := Select("Default adapter type", knownAdapterTypes, defaultIdx)
	if choice != "other" {
		return choice
	}
	return PromptRootProjectName(defaultVal) // reuse the same identifier shape for a custom adapter name
}

// PromptInternalPackages asks for the comma-separated set of packages
// treated as Core locality by macro lookup, re-prompting if any entry
// fails the package-name shape (Core/Imported/Root classification keys
// off these names verbatim).
func PromptInternalPackages(defaultVal []string) []string {
	defaultJoined := strings.Join(defaultVal, ",")
	for {
		raw := Prompt("Internal packages (comma-separated, Core locality for macro lookup)", defaultJoined)
		var out []string
		valid := true
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !config.ValidPackageName(part) {
				valid = false
				break
			}
			out = append(out, part)
		}
		if valid {
			return out
		}
		fmt.Println(StyleWarning.Render("  ! ") + "each package name must be lowercase letters, digits, and underscores")
	}
}

// PromptAllowCoreOverride asks whether an Imported-locality package may
// win a materialization lookup over a same-named Core macro, the
// legacy-override flag find_materialization_macro_by_name consults.
func PromptAllowCoreOverride(defaultVal bool) bool {
	return Confirm("Allow a user package to override a Core materialization macro of the same name?", defaultVal)
}

// Confirm asks a yes/no question. Returns true for yes.
func Confirm(label string, defaultYes bool) bool {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	fmt.Printf("  %s %s [%s]: ", StylePrimary.Render("?"), label, StyleMuted.Render(hint))

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))

	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

// Select asks the user to choose from a list of options.
func Select(label string, options []string, defaultIdx int) string {
	fmt.Printf("  %s %s\n", StylePrimary.Render("?"), label)
	for i, opt := range options {
		marker := "  "
		if i == defaultIdx {
			marker = StylePrimary.Render("▸ ")
		}
		fmt.Printf("    %s%s\n", marker, opt)
	}
	fmt.Printf("  %s: ", StyleMuted.Render("Enter number (1-"+fmt.Sprintf("%d", len(options))+")"))

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return options[defaultIdx]
	}
	var idx int
	if _, err := fmt.Sscanf(input, "%d", &idx); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1]
	}
	return options[defaultIdx]
}

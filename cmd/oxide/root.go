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

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fireflyframework/dbt-oxide/internal/config"
	"github.com/fireflyframework/dbt-oxide/internal/graph"
	"github.com/fireflyframework/dbt-oxide/internal/manifest"
	"github.com/fireflyframework/dbt-oxide/internal/ui"
)

var (
	verbose      bool
	quiet        bool
	manifestPath string

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B35")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D")).
			Italic(true)
)

const banner = `
          .___
  _____  __| _/_____
 /     \/ __ |/ ___\
|  Y Y  \ /_/ \  \___
|__|_|  /\____ \___  >
      \/      \/   \/
           _______    __   .___
 ____ ___  \_   \ \ _/  |_  |   | ____
/  _ \\  \  /|   |\  \   __\ |   |/ __ \
(  <_> )\  \/ |   | \   |  |   /  ___/
 \____/  \_/  |___|  \__|  |___|\___  >
                                     \/`

// bannerCommands are the summary and interactive surfaces that open with
// the banner. Resolution and dump commands never do: their stdout is a
// single value or a document meant to be piped.
var bannerCommands = map[string]bool{
	"load":         true,
	"browse":       true,
	"graph show":   true,
	"graph layers": true,
	"config init":  true,
}

func wantsBanner(cmd *cobra.Command) bool {
	if quiet || graphJSON {
		return false
	}
	path := strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()))
	return bannerCommands[path]
}

var rootCmd = &cobra.Command{
	Use:   "oxide",
	Short: "Resolve and query a dbt-style project manifest",
	Long: bannerStyle.Render(banner) + "\n" + subtitleStyle.Render("  A manifest and dependency-graph engine for data transformation projects") + `

Load a project manifest and query the resolution and dependency-graph
operations it supports: ref/source/doc/macro lookup, materialization
selection, and graph traversal (ancestors, descendants, cycles, layers).

Available Commands:
  load        Load and validate a manifest.json, printing a summary
  ref         Resolve a ref() lookup against a loaded manifest
  source      Resolve a source() lookup against a loaded manifest
  doc         Resolve a doc() lookup against a loaded manifest
  macro       Resolve a macro by name under locality priority rules
  materialization  Resolve the materialization macro for the configured adapter
  graph       Query the dependency graph built from a loaded manifest
  dump        Decode a manifest and re-encode it, round-tripping through the store
  browse      Interactively browse the dependency graph
  config      View and manage oxide configuration

Getting Started:
  oxide load manifest.json            Validate a manifest and print its summary
  oxide graph layers --manifest m.json  Show the levelized build order
  oxide browse --manifest m.json        Open the interactive graph browser

Configuration:
  Config file: ~/.oxide/config.yaml`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if wantsBanner(cmd) {
			fmt.Println(bannerStyle.Render(banner))
			fmt.Println(subtitleStyle.Render("  A manifest and dependency-graph engine for data transformation projects"))
			fmt.Println()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWith(err)
	}
}

// exitWith renders err with a remediation hint for the failure kinds the
// engine distinguishes, then exits nonzero.
func exitWith(err error) {
	p := ui.NewPrinter()

	var parseErr *manifest.ParseError
	switch {
	case errors.As(err, &parseErr):
		p.Error("manifest did not parse: " + parseErr.Detail)
		if parseErr.Field != "" {
			p.KeyValue("field", parseErr.Field)
		}
	case errors.Is(err, graph.ErrCycle):
		p.Error(err.Error())
		p.Info("run `oxide graph cycle` to list the offending edges")
	case errors.Is(err, manifest.ErrNotLoaded):
		p.Error(err.Error())
		p.Info("pass --manifest with the path to a manifest.json")
	default:
		p.Error(err.Error())
	}
	os.Exit(1)
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress the banner and decorative output")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "manifest.json", "path to the manifest.json to operate on")
}

// loadedConfig reads the project config, falling back to defaults when no
// .oxide/config.yaml exists.
func loadedConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

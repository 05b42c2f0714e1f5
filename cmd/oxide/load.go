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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fireflyframework/dbt-oxide/internal/graphbuilder"
	"github.com/fireflyframework/dbt-oxide/internal/manifest"
	"github.com/fireflyframework/dbt-oxide/internal/ui"
)

var loadCmd = &cobra.Command{
	Use:   "load <manifest.json>",
	Short: "Load and validate a manifest, printing a summary of its contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func openManifestStore(path string) (*manifest.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	s := manifest.NewStore()
	if err := s.Load(f); err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	return s, nil
}

func runLoad(_ *cobra.Command, args []string) error {
	spinner := ui.NewSpinner(fmt.Sprintf("Loading %s...", args[0]))
	spinner.Start()
	s, err := openManifestStore(args[0])
	spinner.Stop(err == nil)
	if err != nil {
		return err
	}

	p := ui.NewPrinter()
	return s.View(func(m *manifest.Manifest) error {
		g := graphbuilder.Build(m)
		lines := []string{
			fmt.Sprintf("nodes            %d", len(m.Nodes)),
			fmt.Sprintf("sources          %d", len(m.Sources)),
			fmt.Sprintf("macros           %d", len(m.Macros)),
			fmt.Sprintf("exposures        %d", len(m.Exposures)),
			fmt.Sprintf("metrics          %d", len(m.Metrics)),
			fmt.Sprintf("semantic models  %d", len(m.SemanticModels)),
			fmt.Sprintf("saved queries    %d", len(m.SavedQueries)),
			fmt.Sprintf("unit tests       %d", len(m.UnitTests)),
			fmt.Sprintf("graph nodes      %d", g.NodeCount()),
			fmt.Sprintf("graph edges      %d", len(g.Edges())),
		}
		p.SummaryBox("Manifest loaded", lines)

		if _, cyclic := g.FindCycle(); cyclic {
			p.Warning("dependency graph contains a cycle")
		}
		return nil
	})
}

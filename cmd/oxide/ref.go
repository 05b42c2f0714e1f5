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

	"github.com/spf13/cobra"

	"github.com/fireflyframework/dbt-oxide/internal/manifest"
	"github.com/fireflyframework/dbt-oxide/internal/ui"
)

var (
	refPackage string
	refVersion string
)

var refCmd = &cobra.Command{
	Use:   "ref <name>",
	Short: "Resolve ref(name) against the loaded manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runRef,
}

func init() {
	refCmd.Flags().StringVar(&refPackage, "package", "", "restrict resolution to this package")
	refCmd.Flags().StringVar(&refVersion, "version", "", "restrict resolution to this version")
	rootCmd.AddCommand(refCmd)
}

func runRef(_ *cobra.Command, args []string) error {
	s, err := openManifestStore(manifestPath)
	if err != nil {
		return err
	}

	cfg := loadedConfig()
	name := args[0]

	var pkg, version *string
	if refPackage != "" {
		pkg = &refPackage
	}
	if refVersion != "" {
		version = &refVersion
	}

	p := ui.NewPrinter()
	return s.View(func(m *manifest.Manifest) error {
		n, ok := m.ResolveRef("", name, pkg, version, cfg.RootProjectName, cfg.RootProjectName)
		if !ok {
			p.Error(fmt.Sprintf("ref(%q) did not resolve", name))
			return fmt.Errorf("no node named %q", name)
		}
		p.Success(fmt.Sprintf("ref(%q) -> %s", name, n.UniqueID()))
		p.KeyValue("package", n.PackageName())
		p.KeyValue("resource_type", string(n.ResourceType()))
		if v, has := n.Version(); has {
			p.KeyValue("version", v)
		}
		return nil
	})
}

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

var sourceCmd = &cobra.Command{
	Use:   "source <source_name> <table>",
	Short: "Resolve source(source_name, table) against the loaded manifest",
	Args:  cobra.ExactArgs(2),
	RunE:  runSource,
}

var docPackage string

var docCmd = &cobra.Command{
	Use:   "doc <name>",
	Short: "Resolve doc(name) against the loaded manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoc,
}

var macroPackage string

var macroCmd = &cobra.Command{
	Use:   "macro <name>",
	Short: "Resolve a macro by name under locality priority rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runMacro,
}

var materializationCmd = &cobra.Command{
	Use:   "materialization <name>",
	Short: "Resolve the materialization macro for the configured adapter chain",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialization,
}

func init() {
	docCmd.Flags().StringVar(&docPackage, "package", "", "restrict resolution to this package")
	macroCmd.Flags().StringVar(&macroPackage, "package", "", "restrict resolution to this package")
	rootCmd.AddCommand(sourceCmd, docCmd, macroCmd, materializationCmd)
}

func runSource(_ *cobra.Command, args []string) error {
	s, err := openManifestStore(manifestPath)
	if err != nil {
		return err
	}

	cfg := loadedConfig()
	p := ui.NewPrinter()
	return s.View(func(m *manifest.Manifest) error {
		src, ok := m.ResolveSource(args[0], args[1], cfg.RootProjectName, cfg.RootProjectName)
		if !ok {
			p.Error(fmt.Sprintf("source(%q, %q) did not resolve", args[0], args[1]))
			return fmt.Errorf("no source %s.%s", args[0], args[1])
		}
		p.Success(fmt.Sprintf("source(%q, %q) -> %s", args[0], args[1], src.UniqueID()))
		p.KeyValue("package", src.PackageName())
		if src.Identifier != "" {
			p.KeyValue("identifier", src.Identifier)
		}
		return nil
	})
}

func runDoc(_ *cobra.Command, args []string) error {
	s, err := openManifestStore(manifestPath)
	if err != nil {
		return err
	}

	cfg := loadedConfig()
	var pkg *string
	if docPackage != "" {
		pkg = &docPackage
	}

	p := ui.NewPrinter()
	return s.View(func(m *manifest.Manifest) error {
		d, ok := m.ResolveDoc(args[0], pkg, cfg.RootProjectName, cfg.RootProjectName)
		if !ok {
			p.Error(fmt.Sprintf("doc(%q) did not resolve", args[0]))
			return fmt.Errorf("no doc named %q", args[0])
		}
		p.Success(fmt.Sprintf("doc(%q) -> %s", args[0], d.UniqueID))
		p.KeyValue("package", d.PackageName)
		return nil
	})
}

func runMacro(_ *cobra.Command, args []string) error {
	s, err := openManifestStore(manifestPath)
	if err != nil {
		return err
	}

	cfg := loadedConfig()
	var pkg *string
	if macroPackage != "" {
		pkg = &macroPackage
	}

	p := ui.NewPrinter()
	return s.View(func(m *manifest.Manifest) error {
		uid, ok := manifest.FindMacroByName(m.Macros, args[0], cfg.RootProjectName, cfg.InternalPackageSet(), pkg)
		if !ok {
			p.Error(fmt.Sprintf("no macro named %q", args[0]))
			return fmt.Errorf("no macro named %q", args[0])
		}
		def := m.Macros[uid]
		p.Success(fmt.Sprintf("macro %q -> %s", args[0], uid))
		p.KeyValue("package", def.PackageName)
		p.KeyValue("locality", localityName(manifest.GetLocality(def.PackageName, cfg.RootProjectName, cfg.InternalPackageSet())))
		return nil
	})
}

func runMaterialization(_ *cobra.Command, args []string) error {
	s, err := openManifestStore(manifestPath)
	if err != nil {
		return err
	}

	cfg := loadedConfig()
	adapterChain := []string{cfg.AdapterType, "default"}

	p := ui.NewPrinter()
	return s.View(func(m *manifest.Manifest) error {
		uid, ok := manifest.FindMaterializationMacroByName(
			m.Macros, cfg.RootProjectName, args[0], adapterChain,
			cfg.InternalPackageSet(), cfg.AllowCoreOverride,
		)
		if !ok {
			p.Error(fmt.Sprintf("no materialization macro for %q with adapters %v", args[0], adapterChain))
			return fmt.Errorf("no materialization macro for %q", args[0])
		}
		def := m.Macros[uid]
		p.Success(fmt.Sprintf("materialization %q -> %s", args[0], uid))
		p.KeyValue("package", def.PackageName)
		p.KeyValue("adapter chain", fmt.Sprintf("%v", adapterChain))
		return nil
	})
}

func localityName(l manifest.Locality) string {
	switch l {
	case manifest.LocalityRoot:
		return "root"
	case manifest.LocalityCore:
		return "core"
	default:
		return "imported"
	}
}

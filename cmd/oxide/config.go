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
	"strings"

	"github.com/spf13/cobra"

	"github.com/fireflyframework/dbt-oxide/internal/config"
	"github.com/fireflyframework/dbt-oxide/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage oxide configuration",
	Long: `View all configuration values. Use subcommands to get, set, reset, or
interactively initialize individual keys. Configuration is stored in
~/.oxide/config.yaml.

Valid configuration keys:
  root_project_name    The root project's package name for locality resolution
  adapter_type         Default warehouse adapter (e.g. postgres, snowflake)
  internal_packages    Comma-separated packages treated as Core locality
  allow_core_override  Whether an Imported-locality package may override a Core materialization macro`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Get a configuration value",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.ValidKeys,
	RunE:      runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Set a configuration value",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.ValidKeys,
	RunE:      runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	RunE:  runConfigReset,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively set up a new configuration file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configResetCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// keyHelp maps each config key to the engine behavior it drives, shown
// under each value when listing with --verbose.
var keyHelp = map[string]string{
	"root_project_name":   "package classified as Root locality in macro lookup",
	"adapter_type":        "first entry of the materialization adapter chain, before \"default\"",
	"internal_packages":   "packages classified as Core locality in macro lookup",
	"allow_core_override": "let an imported package shadow a same-named Core materialization",
}

func runConfigList(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	p := ui.NewPrinter()
	p.Header("Configuration")
	for _, kv := range cfg.Fields() {
		p.KeyValue(kv.Key, kv.Value)
		if verbose {
			fmt.Printf("    %s\n", ui.StyleMuted.Render(keyHelp[kv.Key]))
		}
	}
	p.Newline()
	p.Info(fmt.Sprintf("Config file: %s/config.yaml", config.OxideHome()))
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	val, ok := cfg.GetField(args[0])
	if !ok {
		return fmt.Errorf("unknown key %q (valid keys: %s)", args[0], strings.Join(config.ValidKeys, ", "))
	}
	fmt.Println(val)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	key, value := args[0], args[1]
	if err := cfg.SetField(key, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	p := ui.NewPrinter()
	p.Success(fmt.Sprintf("%s set", key))
	switch key {
	case "adapter_type":
		p.Info(fmt.Sprintf("materialization lookups now try %q before \"default\"", value))
	case "internal_packages", "root_project_name":
		p.Info("macro lookups now classify Core/Imported/Root localities against this value")
	}
	return nil
}

func runConfigReset(_ *cobra.Command, _ []string) error {
	if !ui.Confirm("Reset all configuration to defaults?", false) {
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	p := ui.NewPrinter()
	p.Success("Configuration reset")
	for _, kv := range cfg.Fields() {
		p.KeyValue(kv.Key, kv.Value)
	}
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	p := ui.NewPrinter()
	cfg := config.DefaultConfig()

	cfg.RootProjectName = ui.PromptRootProjectName(cfg.RootProjectName)
	cfg.AdapterType = ui.PromptAdapterType(cfg.AdapterType)
	cfg.InternalPackages = ui.PromptInternalPackages(cfg.InternalPackages)
	cfg.AllowCoreOverride = ui.PromptAllowCoreOverride(cfg.AllowCoreOverride)

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	p.Success(fmt.Sprintf("Wrote %s/config.yaml", config.OxideHome()))
	return nil
}

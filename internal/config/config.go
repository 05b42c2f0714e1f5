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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	OxideDir   = ".oxide"
	ConfigFile = "config.yaml"
)

// ValidKeys lists all config keys that can be read/written.
var ValidKeys = []string{
	"root_project_name",
	"adapter_type",
	"internal_packages",
	"allow_core_override",
}

type Config struct {
	RootProjectName   string   `yaml:"root_project_name"`
	AdapterType       string   `yaml:"adapter_type"`
	InternalPackages  []string `yaml:"internal_packages"`
	AllowCoreOverride bool     `yaml:"allow_core_override"`
}

// GetField returns the value of a config key.
func (c *Config) GetField(key string) (string, bool) {
	switch key {
	case "root_project_name":
		return c.RootProjectName, true
	case "adapter_type":
		return c.AdapterType, true
	case "internal_packages":
		return strings.Join(c.InternalPackages, ","), true
	case "allow_core_override":
		if c.AllowCoreOverride {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

// packageNameRE matches the identifier shape a dbt-style package or
// project name must take: lowercase letters, digits, and underscores,
// starting with a letter or underscore — the middle segment of a
// `<kind>.<package>.<name>` UID.
var packageNameRE = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidPackageName reports whether name can serve as a package or
// project identifier.
func ValidPackageName(name string) bool {
	return packageNameRE.MatchString(name)
}

// SetField validates value against the semantics key carries elsewhere
// in the engine, then sets it. Locality classification and the
// materialization adapter chain compare these values verbatim, so a
// malformed value would silently lose every priority comparison rather
// than error.
func (c *Config) SetField(key, value string) error {
	switch key {
	case "root_project_name":
		if !ValidPackageName(value) {
			return fmt.Errorf("root_project_name %q: package names are lowercase letters, digits, and underscores, starting with a letter or underscore", value)
		}
		c.RootProjectName = value
	case "adapter_type":
		if !ValidPackageName(value) {
			return fmt.Errorf("adapter_type %q: adapter names are lowercase letters, digits, and underscores", value)
		}
		c.AdapterType = value
	case "internal_packages":
		pkgs := splitList(value)
		for _, p := range pkgs {
			if !ValidPackageName(p) {
				return fmt.Errorf("internal_packages entry %q: package names are lowercase letters, digits, and underscores", p)
			}
		}
		c.InternalPackages = pkgs
	case "allow_core_override":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("allow_core_override %q: want true or false", value)
		}
		c.AllowCoreOverride = b
	default:
		return fmt.Errorf("unknown key %q (valid keys: %s)", key, strings.Join(ValidKeys, ", "))
	}
	return nil
}

// Fields returns all config key-value pairs.
func (c *Config) Fields() []KeyValue {
	return []KeyValue{
		{"root_project_name", c.RootProjectName},
		{"adapter_type", c.AdapterType},
		{"internal_packages", strings.Join(c.InternalPackages, ",")},
		{"allow_core_override", fmt.Sprintf("%v", c.AllowCoreOverride)},
	}
}

// KeyValue is a simple key-value pair.
type KeyValue struct {
	Key   string
	Value string
}

// InternalPackageSet returns the configured internal packages as a
// lookup set, for use with manifest macro/materialization resolution.
func (c *Config) InternalPackageSet() map[string]bool {
	set := make(map[string]bool, len(c.InternalPackages))
	for _, p := range c.InternalPackages {
		set[p] = true
	}
	return set
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func DefaultConfig() *Config {
	return &Config{
		RootProjectName:   "my_project",
		AdapterType:       "postgres",
		InternalPackages:  []string{"dbt"},
		AllowCoreOverride: false,
	}
}

func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func OxideHome() string {
	return filepath.Join(HomeDir(), OxideDir)
}

func Load() (*Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(OxideHome(), ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	dir := OxideHome()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, ConfigFile), data, 0644)
}

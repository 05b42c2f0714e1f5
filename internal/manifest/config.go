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

import "encoding/json"

// Hook is a pre- or post-hook SQL statement attached to a node's config.
type Hook struct {
	SQL         string `json:"sql"`
	Transaction bool   `json:"transaction"`
	Index       int    `json:"index,omitempty"`
}

// ContractConfig controls column-contract enforcement for a model.
type ContractConfig struct {
	Enforced bool   `json:"enforced"`
	Checksum string `json:"checksum,omitempty"`
}

// NodeConfig is the `config` block attached to every dependency-bearing
// node. `enabled` defaults to true, `materialized` to "view", and
// `on_schema_change` to "ignore" when absent from the source JSON.
type NodeConfig struct {
	Enabled        bool           `json:"enabled"`
	Materialized   string         `json:"materialized,omitempty"`
	Group          string         `json:"group,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Meta           map[string]any `json:"meta,omitempty"`
	PreHook        []Hook         `json:"pre-hook,omitempty"`
	PostHook       []Hook         `json:"post-hook,omitempty"`
	OnSchemaChange string         `json:"on_schema_change,omitempty"`
	Contract       ContractConfig `json:"contract,omitempty"`
	Docs           Docs           `json:"docs,omitempty"`
}

// nodeConfigAlias avoids infinite recursion in NodeConfig.UnmarshalJSON.
type nodeConfigAlias NodeConfig

// UnmarshalJSON substitutes the documented defaults for fields absent
// from the source JSON: enabled=true, materialized="view",
// on_schema_change="ignore".
func (c *NodeConfig) UnmarshalJSON(data []byte) error {
	aux := nodeConfigAlias{
		Enabled:        true,
		Materialized:   "view",
		OnSchemaChange: "ignore",
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = NodeConfig(aux)
	return nil
}

// TestSeverity is "error" or "warn".
type TestSeverity string

const (
	SeverityError TestSeverity = "error"
	SeverityWarn  TestSeverity = "warn"
)

// TestConfig is the `config` block attached to generic and singular
// tests. `materialized` defaults to "test", `severity` to "error".
type TestConfig struct {
	Enabled      bool         `json:"enabled"`
	Materialized string       `json:"materialized,omitempty"`
	Severity     TestSeverity `json:"severity,omitempty"`
	Group        string       `json:"group,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Meta         map[string]any `json:"meta,omitempty"`
}

type testConfigAlias TestConfig

// UnmarshalJSON substitutes materialized="test" and severity="error"
// when absent.
func (c *TestConfig) UnmarshalJSON(data []byte) error {
	aux := testConfigAlias{
		Enabled:      true,
		Materialized: "test",
		Severity:     SeverityError,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = TestConfig(aux)
	return nil
}

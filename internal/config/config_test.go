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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFieldValidValues(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetField("root_project_name", "analytics"))
	assert.Equal(t, "analytics", cfg.RootProjectName)

	require.NoError(t, cfg.SetField("adapter_type", "snowflake"))
	assert.Equal(t, "snowflake", cfg.AdapterType)

	require.NoError(t, cfg.SetField("internal_packages", "dbt, dbt_postgres"))
	assert.Equal(t, []string{"dbt", "dbt_postgres"}, cfg.InternalPackages)

	require.NoError(t, cfg.SetField("allow_core_override", "true"))
	assert.True(t, cfg.AllowCoreOverride)
}

// Locality classification compares these values verbatim, so a value
// that could never equal a package_name must be rejected at set time.
func TestSetFieldRejectsMalformedValues(t *testing.T) {
	cfg := DefaultConfig()

	assert.Error(t, cfg.SetField("root_project_name", "My-Project"))
	assert.Error(t, cfg.SetField("adapter_type", "Postgres!"))
	assert.Error(t, cfg.SetField("internal_packages", "dbt,Not Valid"))
	assert.Error(t, cfg.SetField("allow_core_override", "maybe"))
	assert.Error(t, cfg.SetField("no_such_key", "x"))

	// Rejected values must leave the config untouched.
	assert.Equal(t, "my_project", cfg.RootProjectName)
	assert.Equal(t, "postgres", cfg.AdapterType)
	assert.Equal(t, []string{"dbt"}, cfg.InternalPackages)
	assert.False(t, cfg.AllowCoreOverride)
}

func TestValidPackageName(t *testing.T) {
	assert.True(t, ValidPackageName("dbt_postgres"))
	assert.True(t, ValidPackageName("_private"))
	assert.False(t, ValidPackageName("9lives"))
	assert.False(t, ValidPackageName("has space"))
	assert.False(t, ValidPackageName(""))
}

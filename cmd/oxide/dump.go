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

	"github.com/fireflyframework/dbt-oxide/internal/manifest"
	"github.com/fireflyframework/dbt-oxide/internal/ui"
)

var dumpOut string

var dumpCmd = &cobra.Command{
	Use:   "dump <manifest.json>",
	Short: "Decode a manifest and re-encode it, round-tripping through the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpOut, "out", "", "write the re-encoded manifest here instead of stdout")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(_ *cobra.Command, args []string) error {
	s, err := openManifestStore(args[0])
	if err != nil {
		return err
	}

	var encoded []byte
	err = s.View(func(m *manifest.Manifest) error {
		var encErr error
		encoded, encErr = m.EncodeBytes()
		return encErr
	})
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if dumpOut == "" {
		fmt.Println(string(encoded))
		return nil
	}

	if err := os.WriteFile(dumpOut, encoded, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dumpOut, err)
	}
	ui.NewPrinter().Success(fmt.Sprintf("wrote %s", dumpOut))
	return nil
}

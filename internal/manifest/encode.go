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

import (
	"encoding/json"
	"io"
)

// Encode round-trips the manifest back to JSON. Optional scalar fields
// that were absent on decode are omitted from the encoded form (the
// repository's chosen convention between the two §6 allows).
func (m *Manifest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// EncodeBytes is a convenience wrapper returning the encoded document as
// a byte slice.
func (m *Manifest) EncodeBytes() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// This file is part of Tilewright.
//
// Tilewright is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tilewright is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tilewright.  If not, see <https://www.gnu.org/licenses/>.

package project

import (
	"encoding/json"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/tailscale/hujson"
)

// Sentinal error patterns.
const (
	FormatError = "project: %v: %v"
)

// decodeJSON decodes JSON that may contain comments and trailing commas
func decodeJSON(what string, data []byte, v any) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return curated.Errorf(FormatError, what, err)
	}
	if err := json.Unmarshal(std, v); err != nil {
		return curated.Errorf(FormatError, what, err)
	}
	return nil
}

// encodeJSON is the inverse of decodeJSON(). the output is indented standard
// JSON
func encodeJSON(what string, v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, curated.Errorf(FormatError, what, err)
	}
	return append(data, '\n'), nil
}

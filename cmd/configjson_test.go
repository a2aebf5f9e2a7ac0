// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfigJSON(t *testing.T) {
	cfg, err := decodeConfigJSON(`{"PossibleNone":1,"Weight":2.5,"Options":["Low","High"],"Nested":{"Rows":5}}`)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"PossibleNone": int64(1),
		"Weight":       2.5,
		"Options":      []any{"Low", "High"},
		"Nested":       map[string]any{"Rows": int64(5)},
	}, cfg)
}

func TestDecodeConfigJSONRejectsNonObject(t *testing.T) {
	_, err := decodeConfigJSON(`[1,2,3]`)
	assert.Error(t, err)

	_, err = decodeConfigJSON(`not json`)
	assert.Error(t, err)
}

func TestParseFieldOrder(t *testing.T) {
	n, err := parseFieldOrder("17")
	require.NoError(t, err)
	assert.Equal(t, int32(17), n)

	for _, bad := range []string{"-1", "1.5", "ten", "", " 3", "3 "} {
		_, err := parseFieldOrder(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

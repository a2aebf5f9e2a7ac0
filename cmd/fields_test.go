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

func TestFieldsSubcommandsRegistered(t *testing.T) {
	for _, sub := range []string{"list", "get", "add", "update", "delete", "order-reset"} {
		cmd, _, err := rootCmd.Find([]string{"fields", sub})
		require.NoError(t, err, "subcommand %s", sub)
		assert.Equal(t, sub, cmd.Name())
	}
}

func TestFieldsUpdateFlags(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"fields", "update"})
	require.NoError(t, err)

	for _, name := range []string{"name", "label", "order", "type", "object-type", "config", "valid-id", "actor", "no-reorder"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag --%s", name)
	}
}

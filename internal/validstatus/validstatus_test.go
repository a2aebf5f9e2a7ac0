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

package validstatus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/dynfield/fielddb"
)

type mockValidLister struct {
	statuses []fielddb.Valid
	err      error
}

func (m *mockValidLister) ListValid(_ context.Context) ([]fielddb.Valid, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.statuses, nil
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(1, 5)

	ids, err := p.ActiveStatusIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 5}, ids)

	// The returned slice is a copy.
	ids[0] = 99
	again, err := p.ActiveStatusIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 5}, again)
}

func TestDBProvider(t *testing.T) {
	p := NewDBProvider(&mockValidLister{statuses: []fielddb.Valid{
		{ID: 1, Name: "valid"},
		{ID: 2, Name: "invalid"},
		{ID: 3, Name: "invalid-temporarily"},
	}})

	ids, err := p.ActiveStatusIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, ids)
}

func TestDBProviderError(t *testing.T) {
	boom := errors.New("boom")
	p := NewDBProvider(&mockValidLister{err: boom})

	_, err := p.ActiveStatusIDs(context.Background())
	assert.ErrorIs(t, err, boom)
}

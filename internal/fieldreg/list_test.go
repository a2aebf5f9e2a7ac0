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

package fieldreg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedFields adds four definitions: two active tickets, one inactive
// ticket, one active article. Returns ids keyed by name.
func seedFields(t *testing.T, r *Registry) map[string]int64 {
	t.Helper()
	ctx := context.Background()
	ids := make(map[string]int64)

	a := addParams("Severity", 1)
	id, err := r.Add(ctx, a)
	require.NoError(t, err)
	ids["Severity"] = id

	b := addParams("Impact", 2)
	id, err = r.Add(ctx, b)
	require.NoError(t, err)
	ids["Impact"] = id

	c := addParams("Retired", 3)
	c.ValidID = 2
	id, err = r.Add(ctx, c)
	require.NoError(t, err)
	ids["Retired"] = id

	d := addParams("Source", 4)
	d.ObjectType = "Article"
	id, err = r.Add(ctx, d)
	require.NoError(t, err)
	ids["Source"] = id

	return ids
}

func TestListActiveOnlyByDefault(t *testing.T) {
	r := newTestRegistry(t, newMockStore())
	ids := seedFields(t, r)
	ctx := context.Background()

	got, err := r.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids["Severity"], ids["Impact"], ids["Source"]}, got)
}

func TestListAllWhenValidFalse(t *testing.T) {
	r := newTestRegistry(t, newMockStore())
	ids := seedFields(t, r)
	ctx := context.Background()

	all := false
	got, err := r.List(ctx, ListParams{Valid: &all})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids["Severity"], ids["Impact"], ids["Retired"], ids["Source"]}, got)
}

func TestListFilterByObjectType(t *testing.T) {
	r := newTestRegistry(t, newMockStore())
	ids := seedFields(t, r)
	ctx := context.Background()

	got, err := r.List(ctx, ListParams{ObjectType: "Article"})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids["Source"]}, got)

	got, err = r.List(ctx, ListParams{ObjectType: "Ticket"})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids["Severity"], ids["Impact"]}, got)
}

func TestListNames(t *testing.T) {
	r := newTestRegistry(t, newMockStore())
	ids := seedFields(t, r)
	ctx := context.Background()

	got, err := r.ListNames(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{
		ids["Severity"]: "Severity",
		ids["Impact"]:   "Impact",
		ids["Source"]:   "Source",
	}, got)
}

func TestListGetPreservesOrderAndConfig(t *testing.T) {
	r := newTestRegistry(t, newMockStore())
	seedFields(t, r)
	ctx := context.Background()

	got, err := r.ListGet(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Severity", got[0].Name)
	assert.Equal(t, "Impact", got[1].Name)
	assert.Equal(t, "Source", got[2].Name)
	for _, def := range got {
		assert.NotNil(t, def.Config)
	}
}

func TestListIdempotentUntilWrite(t *testing.T) {
	store := newMockStore()
	r := newTestRegistry(t, store)
	seedFields(t, r)
	ctx := context.Background()

	first, err := r.List(ctx, ListParams{})
	require.NoError(t, err)
	second, err := r.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A write invalidates the cached listing; the next call sees the
	// new definition, never stale data.
	id, err := r.Add(ctx, addParams("Urgency", 5))
	require.NoError(t, err)

	third, err := r.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Contains(t, third, id)
	assert.NotEqual(t, first, third)
}

func TestListInvalidatedByDelete(t *testing.T) {
	r := newTestRegistry(t, newMockStore())
	ids := seedFields(t, r)
	ctx := context.Background()

	before, err := r.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Contains(t, before, ids["Impact"])

	require.NoError(t, r.Delete(ctx, ids["Impact"], 42))

	after, err := r.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.NotContains(t, after, ids["Impact"])
}

func TestListResultsDetachedFromCache(t *testing.T) {
	r := newTestRegistry(t, newMockStore())
	ids := seedFields(t, r)
	ctx := context.Background()

	defs, err := r.ListGet(ctx, ListParams{})
	require.NoError(t, err)
	require.NotEmpty(t, defs)
	defs[0].Config["DefaultValue"] = "mangled"

	again, err := r.ListGet(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "", again[0].Config["DefaultValue"], "mutating a listed definition must not touch the cache")

	names, err := r.ListNames(ctx, ListParams{})
	require.NoError(t, err)
	names[ids["Severity"]] = "mangled"
	namesAgain, err := r.ListNames(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "Severity", namesAgain[ids["Severity"]])

	idList, err := r.List(ctx, ListParams{})
	require.NoError(t, err)
	idList[0] = -1
	idListAgain, err := r.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, ids["Severity"], idListAgain[0])
}

func TestListCachesPerFilter(t *testing.T) {
	store := newMockStore()
	r := newTestRegistry(t, store)
	seedFields(t, r)
	ctx := context.Background()

	ticket, err := r.List(ctx, ListParams{ObjectType: "Ticket"})
	require.NoError(t, err)
	article, err := r.List(ctx, ListParams{ObjectType: "Article"})
	require.NoError(t, err)
	assert.NotEqual(t, ticket, article, "filters must not share cache entries")
}

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

package fieldcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceGetSet(t *testing.T) {
	ns := NewNamespace[string, int]("test", time.Minute)
	defer ns.Stop()

	_, ok := ns.Get("missing")
	assert.False(t, ok)

	ns.Set("a", 42)
	v, ok := ns.Get("a")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestNamespaceExpiry(t *testing.T) {
	ns := NewNamespace[string, string]("test", 10*time.Millisecond)
	defer ns.Stop()

	ns.Set("k", "v")
	_, ok := ns.Get("k")
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, ok = ns.Get("k")
	assert.False(t, ok, "expired entry must read as a miss")
}

func TestNamespaceInvalidate(t *testing.T) {
	ns := NewNamespace[int, string]("test", time.Minute)
	defer ns.Stop()

	ns.Set(1, "one")
	ns.Set(2, "two")
	ns.Invalidate()

	_, ok := ns.Get(1)
	assert.False(t, ok)
	_, ok = ns.Get(2)
	assert.False(t, ok)
}

func TestGroupInvalidateAll(t *testing.T) {
	a := NewNamespace[string, int]("a", time.Minute)
	defer a.Stop()
	b := NewNamespace[string, string]("b", time.Minute)
	defer b.Stop()

	a.Set("x", 1)
	b.Set("y", "z")

	g := NewGroup(a)
	g.Add(b)
	g.InvalidateAll()

	_, ok := a.Get("x")
	assert.False(t, ok)
	_, ok = b.Get("y")
	assert.False(t, ok)
}

func TestNamespaceDefaultTTL(t *testing.T) {
	ns := NewNamespace[string, int]("test", 0)
	defer ns.Stop()

	ns.Set("a", 1)
	v, ok := ns.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, "test", ns.Name())
}

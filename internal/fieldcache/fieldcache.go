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

// Package fieldcache wraps ttlcache in namespace-scoped read caches.
// Writers invalidate whole namespaces, never individual keys, so a change
// in key composition can never leave a stale entry behind.
package fieldcache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultTTL is the cache lifetime used when the configuration supplies none.
const DefaultTTL = 3600 * time.Second

// Invalidator is the write-side view of a namespace.
type Invalidator interface {
	Invalidate()
}

// Namespace is a TTL cache whose entries can only be dropped all at once.
type Namespace[K comparable, V any] struct {
	name  string
	cache *ttlcache.Cache[K, V]
}

func NewNamespace[K comparable, V any](name string, ttl time.Duration) *Namespace[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	n := &Namespace[K, V]{
		name: name,
		cache: ttlcache.New(
			ttlcache.WithTTL[K, V](ttl),
			ttlcache.WithDisableTouchOnHit[K, V](),
		),
	}
	go n.cache.Start()
	return n
}

func (n *Namespace[K, V]) Name() string {
	return n.name
}

// Get returns the cached value for key, or false after a miss or expiry.
func (n *Namespace[K, V]) Get(key K) (V, bool) {
	item := n.cache.Get(key)
	if item == nil {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

// Set stores value under key with the namespace's full TTL.
func (n *Namespace[K, V]) Set(key K, value V) {
	n.cache.Set(key, value, ttlcache.DefaultTTL)
}

// Invalidate drops every entry in the namespace.
func (n *Namespace[K, V]) Invalidate() {
	n.cache.DeleteAll()
}

// Stop halts the namespace's background expiry loop.
func (n *Namespace[K, V]) Stop() {
	n.cache.Stop()
}

// Group aggregates namespaces so a write path can invalidate them together.
type Group struct {
	members []Invalidator
}

func NewGroup(members ...Invalidator) *Group {
	return &Group{members: members}
}

func (g *Group) Add(members ...Invalidator) {
	g.members = append(g.members, members...)
}

// InvalidateAll drops every entry in every member namespace.
func (g *Group) InvalidateAll() {
	for _, m := range g.members {
		m.Invalidate()
	}
}

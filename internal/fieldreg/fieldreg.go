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

// Package fieldreg is the dynamic field definition registry. It validates
// and persists field definitions, keeps the (field_order, id) sequence
// congestion-free after inserts and updates, serves reads through
// namespace-invalidated TTL caches, and resolves field types to their
// backend handlers.
package fieldreg

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cardinalhq/dynfield/fielddb"
	"github.com/cardinalhq/dynfield/internal/backend"
	"github.com/cardinalhq/dynfield/internal/fieldcache"
	"github.com/cardinalhq/dynfield/internal/validstatus"
)

var (
	// ErrValidation is returned before any store access when required
	// arguments are missing or malformed.
	ErrValidation = errors.New("fieldreg: validation failed")
	// ErrNotFound is returned when a definition lookup matches nothing.
	// A zero-valued definition is never returned in its place.
	ErrNotFound = errors.New("fieldreg: dynamic field not found")
	// ErrReorder wraps a persistence failure inside the order cascade.
	// The triggering Add or Update has already committed when it occurs.
	ErrReorder = errors.New("fieldreg: order cascade failed")
)

// Store is the slice of fielddb this package consumes.
type Store interface {
	InsertDynamicField(ctx context.Context, params fielddb.InsertDynamicFieldParams) (int64, error)
	GetDynamicField(ctx context.Context, id int64) (fielddb.DynamicField, error)
	GetDynamicFieldByName(ctx context.Context, name string) (fielddb.DynamicField, error)
	UpdateDynamicField(ctx context.Context, params fielddb.UpdateDynamicFieldParams) error
	DeleteDynamicFieldCascade(ctx context.Context, id int64) error
	CountDynamicFieldValues(ctx context.Context, fieldID int64) (int64, error)
	ListDynamicFields(ctx context.Context, params fielddb.ListDynamicFieldsParams) ([]fielddb.DynamicField, error)
}

var _ Store = (*fielddb.Store)(nil)

// DefaultSystemActorID is the actor recorded on rows the registry itself
// rewrites during an order cascade or reset.
const DefaultSystemActorID int64 = 1

// Params carries the collaborators and settings for a Registry.
type Params struct {
	Store    Store
	Valid    validstatus.Provider
	Resolver *backend.Resolver
	Log      *slog.Logger

	// CacheTTL defaults to fieldcache.DefaultTTL when zero.
	CacheTTL time.Duration
	// SystemActorID defaults to DefaultSystemActorID when zero.
	SystemActorID int64
}

type listKey struct {
	activeOnly bool
	objectType string
}

// Registry is the public facade over the dynamic field definition store.
type Registry struct {
	store    Store
	valid    validstatus.Provider
	resolver *backend.Resolver
	log      *slog.Logger
	codec    *configCodec

	systemActorID int64

	byID      *fieldcache.Namespace[int64, FieldConfig]
	byName    *fieldcache.Namespace[string, FieldConfig]
	idLists   *fieldcache.Namespace[listKey, []int64]
	nameLists *fieldcache.Namespace[listKey, map[int64]string]
	fullLists *fieldcache.Namespace[listKey, []FieldConfig]
	caches    *fieldcache.Group
}

// New creates a Registry. Store and Valid are required; Resolver defaults
// to one with the builtin backends, Log to slog.Default().
func New(params Params) (*Registry, error) {
	if params.Store == nil {
		return nil, errors.New("fieldreg: Store is required")
	}
	if params.Valid == nil {
		return nil, errors.New("fieldreg: Valid provider is required")
	}
	if params.Log == nil {
		params.Log = slog.Default()
	}
	if params.Resolver == nil {
		params.Resolver = backend.NewResolver(backend.Deps{Log: params.Log})
	}
	if params.SystemActorID == 0 {
		params.SystemActorID = DefaultSystemActorID
	}

	codec, err := newConfigCodec()
	if err != nil {
		return nil, err
	}

	r := &Registry{
		store:         params.Store,
		valid:         params.Valid,
		resolver:      params.Resolver,
		log:           params.Log,
		codec:         codec,
		systemActorID: params.SystemActorID,
		byID:          fieldcache.NewNamespace[int64, FieldConfig]("field_by_id", params.CacheTTL),
		byName:        fieldcache.NewNamespace[string, FieldConfig]("field_by_name", params.CacheTTL),
		idLists:       fieldcache.NewNamespace[listKey, []int64]("field_id_lists", params.CacheTTL),
		nameLists:     fieldcache.NewNamespace[listKey, map[int64]string]("field_name_lists", params.CacheTTL),
		fullLists:     fieldcache.NewNamespace[listKey, []FieldConfig]("field_full_lists", params.CacheTTL),
	}
	r.caches = fieldcache.NewGroup(r.byID, r.byName, r.idLists, r.nameLists, r.fullLists)
	return r, nil
}

// Close stops the cache expiry loops.
func (r *Registry) Close() {
	r.byID.Stop()
	r.byName.Stop()
	r.idLists.Stop()
	r.nameLists.Stop()
	r.fullLists.Stop()
}

// invalidate drops every cached read. Called on every write path so a
// stale entry can never be observed.
func (r *Registry) invalidate() {
	r.caches.InvalidateAll()
}

// BackendFor resolves the backend handler for a definition. The handler
// is a process-wide singleton per field type.
func (r *Registry) BackendFor(definition *FieldConfig) (backend.Backend, error) {
	if definition == nil {
		return nil, errValidation("field configuration is required")
	}
	if definition.FieldType == "" {
		return nil, errValidation("field configuration has no field type")
	}
	return r.resolver.Resolve(definition.FieldType)
}

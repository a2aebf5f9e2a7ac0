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
	"fmt"
	"maps"
	"slices"

	"github.com/cardinalhq/dynfield/fielddb"
)

// listRows fetches the filtered definitions ordered by (field_order, id),
// with configuration blobs decoded.
func (r *Registry) listRows(ctx context.Context, params ListParams) ([]FieldConfig, error) {
	var validIDs []int32
	if params.activeOnly() {
		ids, err := r.valid.ActiveStatusIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve active statuses: %w", err)
		}
		if ids == nil {
			ids = []int32{}
		}
		validIDs = ids
	}

	rows, err := r.store.ListDynamicFields(ctx, fielddb.ListDynamicFieldsParams{
		ValidIDs:   validIDs,
		ObjectType: params.ObjectType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list dynamic fields: %w", err)
	}

	defs := make([]FieldConfig, 0, len(rows))
	for _, row := range rows {
		def, err := r.fromRow(row)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// List returns definition ids ordered by (field_order, id).
func (r *Registry) List(ctx context.Context, params ListParams) ([]int64, error) {
	key := listKey{activeOnly: params.activeOnly(), objectType: params.ObjectType}
	if cached, ok := r.idLists.Get(key); ok {
		return slices.Clone(cached), nil
	}

	defs, err := r.listRows(ctx, params)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	r.idLists.Set(key, ids)
	return slices.Clone(ids), nil
}

// ListNames returns an id-to-name map for the filtered definitions.
func (r *Registry) ListNames(ctx context.Context, params ListParams) (map[int64]string, error) {
	key := listKey{activeOnly: params.activeOnly(), objectType: params.ObjectType}
	if cached, ok := r.nameLists.Get(key); ok {
		return maps.Clone(cached), nil
	}

	defs, err := r.listRows(ctx, params)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(defs))
	for _, def := range defs {
		names[def.ID] = def.Name
	}
	r.nameLists.Set(key, names)
	return maps.Clone(names), nil
}

// ListGet returns the filtered definitions fully materialized, in
// (field_order, id) order.
func (r *Registry) ListGet(ctx context.Context, params ListParams) ([]FieldConfig, error) {
	key := listKey{activeOnly: params.activeOnly(), objectType: params.ObjectType}
	if cached, ok := r.fullLists.Get(key); ok {
		return cloneFieldConfigs(cached), nil
	}

	defs, err := r.listRows(ctx, params)
	if err != nil {
		return nil, err
	}

	r.fullLists.Set(key, defs)
	return cloneFieldConfigs(defs), nil
}

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
	"errors"
	"fmt"
	"log/slog"

	"github.com/cardinalhq/dynfield/fielddb"
)

// Add validates and persists a new definition, then runs the order
// cascade rooted at it. The returned id is valid even when the error
// wraps ErrReorder: the definition itself has committed and only the
// cascade failed partway.
func (r *Registry) Add(ctx context.Context, params AddParams) (int64, error) {
	if err := r.validateDefinition(params.Name, params.Label, params.FieldType, params.ObjectType, params.FieldOrder, params.Config, params.ValidID, params.ActorID); err != nil {
		return 0, err
	}

	blob, err := r.codec.Encode(params.Config)
	if err != nil {
		return 0, err
	}

	id, err := r.store.InsertDynamicField(ctx, fielddb.InsertDynamicFieldParams{
		Name:       params.Name,
		Label:      params.Label,
		FieldOrder: params.FieldOrder,
		FieldType:  params.FieldType,
		ObjectType: params.ObjectType,
		Config:     blob,
		ValidID:    params.ValidID,
		CreateBy:   params.ActorID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert dynamic field %q: %w", params.Name, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("store returned no id for dynamic field %q", params.Name)
	}

	r.invalidate()

	if err := r.reorder(ctx, id); err != nil {
		r.log.Error("order cascade after add failed",
			slog.Int64("fieldID", id),
			slog.Any("error", err))
		return id, fmt.Errorf("%w: %w", ErrReorder, err)
	}

	return id, nil
}

// Get returns the definition with the given id, or ErrNotFound.
func (r *Registry) Get(ctx context.Context, id int64) (FieldConfig, error) {
	if id == 0 {
		return FieldConfig{}, errValidation("ID is required")
	}

	if cached, ok := r.byID.Get(id); ok {
		return cached.clone(), nil
	}

	row, err := r.store.GetDynamicField(ctx, id)
	if err != nil {
		return FieldConfig{}, mapStoreErr(err, "id %d", id)
	}

	def, err := r.fromRow(row)
	if err != nil {
		return FieldConfig{}, err
	}
	r.byID.Set(id, def)
	return def.clone(), nil
}

// GetByName returns the definition with the given name, or ErrNotFound.
func (r *Registry) GetByName(ctx context.Context, name string) (FieldConfig, error) {
	if name == "" {
		return FieldConfig{}, errValidation("Name is required")
	}

	if cached, ok := r.byName.Get(name); ok {
		return cached.clone(), nil
	}

	row, err := r.store.GetDynamicFieldByName(ctx, name)
	if err != nil {
		return FieldConfig{}, mapStoreErr(err, "name %q", name)
	}

	def, err := r.fromRow(row)
	if err != nil {
		return FieldConfig{}, err
	}
	r.byName.Set(name, def)
	return def.clone(), nil
}

// Update validates and persists changes to an existing definition. The
// order cascade runs only when the order actually changed and reordering
// was not disabled; it pivots on the post-update order.
func (r *Registry) Update(ctx context.Context, params UpdateParams) error {
	if params.ID == 0 {
		return errValidation("ID is required")
	}
	if err := r.validateDefinition(params.Name, params.Label, params.FieldType, params.ObjectType, params.FieldOrder, params.Config, params.ValidID, params.ActorID); err != nil {
		return err
	}

	previous, err := r.store.GetDynamicField(ctx, params.ID)
	if err != nil {
		return mapStoreErr(err, "id %d", params.ID)
	}
	orderChanged := previous.FieldOrder != params.FieldOrder

	blob, err := r.codec.Encode(params.Config)
	if err != nil {
		return err
	}

	if err := r.store.UpdateDynamicField(ctx, fielddb.UpdateDynamicFieldParams{
		ID:         params.ID,
		Name:       params.Name,
		Label:      params.Label,
		FieldOrder: params.FieldOrder,
		FieldType:  params.FieldType,
		ObjectType: params.ObjectType,
		Config:     blob,
		ValidID:    params.ValidID,
		ChangeBy:   params.ActorID,
	}); err != nil {
		return mapStoreErr(err, "id %d", params.ID)
	}

	r.invalidate()

	reorderWanted := params.Reorder == nil || *params.Reorder
	if reorderWanted && orderChanged {
		if err := r.reorder(ctx, params.ID); err != nil {
			r.log.Error("order cascade after update failed",
				slog.Int64("fieldID", params.ID),
				slog.Any("error", err))
			return fmt.Errorf("%w: %w", ErrReorder, err)
		}
	}

	return nil
}

// Delete removes a definition and all of its stored values. A missing
// definition is a failure, not a no-op. Deletion never reorders; the gap
// it leaves is absorbed by a later insert-driven cascade.
func (r *Registry) Delete(ctx context.Context, id int64, actorID int64) error {
	if id == 0 {
		return errValidation("ID is required")
	}
	if actorID == 0 {
		return errValidation("ActorID is required")
	}

	// Fresh existence check against the store, bypassing the cache.
	if _, err := r.store.GetDynamicField(ctx, id); err != nil {
		return mapStoreErr(err, "id %d", id)
	}

	// Informational only; a failed count does not block the delete.
	if n, err := r.store.CountDynamicFieldValues(ctx, id); err != nil {
		r.log.Warn("could not count stored values before delete",
			slog.Int64("fieldID", id),
			slog.Any("error", err))
	} else {
		r.log.Info("deleting dynamic field",
			slog.Int64("fieldID", id),
			slog.Int64("storedValues", n),
			slog.Int64("actorID", actorID))
	}

	if err := r.store.DeleteDynamicFieldCascade(ctx, id); err != nil {
		return fmt.Errorf("failed to delete dynamic field %d: %w", id, err)
	}

	r.invalidate()
	return nil
}

func mapStoreErr(err error, format string, args ...any) error {
	if errors.Is(err, fielddb.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
	}
	return fmt.Errorf("dynamic field store failure (%s): %w", fmt.Sprintf(format, args...), err)
}

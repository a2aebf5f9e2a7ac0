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
	"log/slog"

	"github.com/cardinalhq/dynfield/fielddb"
)

// reorder resolves order collisions after the definition with the given
// id claimed its order value P. Definitions at or after P are shifted
// forward by one, but only the contiguous run that actually collides:
// the scan stops at the first pre-existing hole that absorbs the pivot,
// or immediately when the pivot is the sole occupant of P and P+1 is
// already taken. Gaps left by deletions are tolerated.
//
// Shifts are persisted one row at a time on behalf of the system actor.
// The first persistence failure aborts the remaining shifts; shifts
// already applied stay in place.
func (r *Registry) reorder(ctx context.Context, pivotID int64) error {
	pivot, err := r.store.GetDynamicField(ctx, pivotID)
	if err != nil {
		return mapStoreErr(err, "reorder pivot %d", pivotID)
	}
	if pivot.FieldOrder == 0 {
		return fmt.Errorf("reorder pivot %d has no field order", pivotID)
	}
	p := pivot.FieldOrder

	// All definitions, regardless of validity, in (field_order, id) order.
	all, err := r.store.ListDynamicFields(ctx, fielddb.ListDynamicFieldsParams{})
	if err != nil {
		return fmt.Errorf("failed to list dynamic fields for reorder: %w", err)
	}

	seen := make(map[int32]int)
	var toShift []fielddb.DynamicField

scan:
	for _, f := range all {
		seen[f.FieldOrder]++

		switch {
		case f.FieldOrder < p:
			// Before the pivot; unaffected.
		case f.ID == pivot.ID && f.FieldOrder == p:
			// The pivot keeps its claimed order.
		case f.FieldOrder > 1 && seen[f.FieldOrder-1] == 0 && f.FieldOrder != p:
			// A pre-existing hole right below this order absorbs the
			// pivot; everything from here on is untouched.
			break scan
		case f.FieldOrder == p+1 && seen[p] == 1:
			// The pivot is the sole occupant of P and P+1 is already
			// taken: no collision to propagate.
			break scan
		default:
			toShift = append(toShift, f)
		}
	}

	for _, f := range toShift {
		if err := r.store.UpdateDynamicField(ctx, fielddb.UpdateDynamicFieldParams{
			ID:         f.ID,
			Name:       f.Name,
			Label:      f.Label,
			FieldOrder: f.FieldOrder + 1,
			FieldType:  f.FieldType,
			ObjectType: f.ObjectType,
			Config:     f.Config,
			ValidID:    f.ValidID,
			ChangeBy:   r.systemActorID,
		}); err != nil {
			// No rollback: already-applied shifts stay in place. The
			// sequence is still internally consistent, merely shifted.
			r.invalidate()
			return fmt.Errorf("failed to shift dynamic field %d to order %d: %w", f.ID, f.FieldOrder+1, err)
		}
	}

	if len(toShift) > 0 {
		r.invalidate()
		r.log.Debug("order cascade applied",
			slog.Int64("pivotID", pivotID),
			slog.Int("shifted", len(toShift)))
	}
	return nil
}

// OrderCheck reports whether the definitions form a contiguous 1..N
// sequence by (field_order, id). Read-only.
func (r *Registry) OrderCheck(ctx context.Context) (bool, error) {
	all, err := r.store.ListDynamicFields(ctx, fielddb.ListDynamicFieldsParams{})
	if err != nil {
		return false, fmt.Errorf("failed to list dynamic fields for order check: %w", err)
	}

	for i, f := range all {
		if f.FieldOrder != int32(i+1) {
			return false, nil
		}
	}
	return true, nil
}

// OrderReset renumbers all definitions to a contiguous 1..N by their
// current (field_order, id) order, repairing drift left behind by
// partial cascades or deletions. Only rows whose order actually changes
// are written. Aborts on the first persistence failure.
func (r *Registry) OrderReset(ctx context.Context, actorID int64) error {
	if actorID == 0 {
		actorID = r.systemActorID
	}

	all, err := r.store.ListDynamicFields(ctx, fielddb.ListDynamicFieldsParams{})
	if err != nil {
		return fmt.Errorf("failed to list dynamic fields for order reset: %w", err)
	}

	changed := 0
	defer func() {
		if changed > 0 {
			r.invalidate()
		}
	}()

	for i, f := range all {
		want := int32(i + 1)
		if f.FieldOrder == want {
			continue
		}
		if err := r.store.UpdateDynamicField(ctx, fielddb.UpdateDynamicFieldParams{
			ID:         f.ID,
			Name:       f.Name,
			Label:      f.Label,
			FieldOrder: want,
			FieldType:  f.FieldType,
			ObjectType: f.ObjectType,
			Config:     f.Config,
			ValidID:    f.ValidID,
			ChangeBy:   actorID,
		}); err != nil {
			return fmt.Errorf("failed to reset order of dynamic field %d to %d: %w", f.ID, want, err)
		}
		changed++
	}

	r.log.Info("field order reset", slog.Int("changed", changed), slog.Int("total", len(all)))
	return nil
}

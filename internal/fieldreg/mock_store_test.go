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
	"slices"
	"sync"
	"time"

	"github.com/cardinalhq/dynfield/fielddb"
)

// mockStore implements Store in memory for testing, including the
// uniqueness constraint and (field_order, id) list ordering.
type mockStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]fielddb.DynamicField

	insertErr error
	getErr    error
	listErr   error
	deleteErr error
	countErr  error
	// updateErrFor fails UpdateDynamicField for specific row ids.
	updateErrFor map[int64]error

	// valueCounts holds the stored-value count per field id; missing
	// entries count as zero.
	valueCounts map[int64]int64

	updates        []fielddb.UpdateDynamicFieldParams
	cascadeDeletes []int64
	valueCountFor  []int64
}

var _ Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		rows:         make(map[int64]fielddb.DynamicField),
		updateErrFor: make(map[int64]error),
		valueCounts:  make(map[int64]int64),
	}
}

func (m *mockStore) InsertDynamicField(_ context.Context, params fielddb.InsertDynamicFieldParams) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	for _, row := range m.rows {
		if row.Name == params.Name {
			return 0, fmt.Errorf("duplicate key value violates unique constraint: %q", params.Name)
		}
	}
	m.nextID++
	now := time.Now().UTC()
	row := fielddb.DynamicField{
		ID:         m.nextID,
		Name:       params.Name,
		Label:      params.Label,
		FieldOrder: params.FieldOrder,
		FieldType:  params.FieldType,
		ObjectType: params.ObjectType,
		Config:     params.Config,
		ValidID:    params.ValidID,
		CreateTime: now,
		CreateBy:   params.CreateBy,
		ChangeTime: now,
		ChangeBy:   params.CreateBy,
	}
	m.rows[row.ID] = row
	return row.ID, nil
}

func (m *mockStore) GetDynamicField(_ context.Context, id int64) (fielddb.DynamicField, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return fielddb.DynamicField{}, m.getErr
	}
	row, ok := m.rows[id]
	if !ok {
		return fielddb.DynamicField{}, fielddb.ErrNotFound
	}
	return row, nil
}

func (m *mockStore) GetDynamicFieldByName(_ context.Context, name string) (fielddb.DynamicField, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return fielddb.DynamicField{}, m.getErr
	}
	for _, row := range m.rows {
		if row.Name == name {
			return row, nil
		}
	}
	return fielddb.DynamicField{}, fielddb.ErrNotFound
}

func (m *mockStore) UpdateDynamicField(_ context.Context, params fielddb.UpdateDynamicFieldParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.updateErrFor[params.ID]; err != nil {
		return err
	}
	row, ok := m.rows[params.ID]
	if !ok {
		return fielddb.ErrNotFound
	}
	row.Name = params.Name
	row.Label = params.Label
	row.FieldOrder = params.FieldOrder
	row.FieldType = params.FieldType
	row.ObjectType = params.ObjectType
	row.Config = params.Config
	row.ValidID = params.ValidID
	row.ChangeTime = time.Now().UTC()
	row.ChangeBy = params.ChangeBy
	m.rows[params.ID] = row
	m.updates = append(m.updates, params)
	return nil
}

func (m *mockStore) DeleteDynamicFieldCascade(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.rows[id]; !ok {
		return fielddb.ErrNotFound
	}
	delete(m.rows, id)
	m.cascadeDeletes = append(m.cascadeDeletes, id)
	return nil
}

func (m *mockStore) ListDynamicFields(_ context.Context, params fielddb.ListDynamicFieldsParams) ([]fielddb.DynamicField, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}

	var out []fielddb.DynamicField
	for _, row := range m.rows {
		if params.ValidIDs != nil && !slices.Contains(params.ValidIDs, row.ValidID) {
			continue
		}
		if params.ObjectType != "" && row.ObjectType != params.ObjectType {
			continue
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b fielddb.DynamicField) int {
		if a.FieldOrder != b.FieldOrder {
			return int(a.FieldOrder - b.FieldOrder)
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

func (m *mockStore) CountDynamicFieldValues(_ context.Context, fieldID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valueCountFor = append(m.valueCountFor, fieldID)
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.valueCounts[fieldID], nil
}

// orders returns the field orders keyed by row name, for assertions.
func (m *mockStore) orders() map[string]int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int32, len(m.rows))
	for _, row := range m.rows {
		out[row.Name] = row.FieldOrder
	}
	return out
}

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

package fielddb

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// DynamicField is one row of the dynamic_field table. Config is the
// serialized configuration blob; the store does not interpret it.
type DynamicField struct {
	ID         int64
	Name       string
	Label      string
	FieldOrder int32
	FieldType  string
	ObjectType string
	Config     []byte
	ValidID    int32
	CreateTime time.Time
	CreateBy   int64
	ChangeTime time.Time
	ChangeBy   int64
}

const dynamicFieldColumns = `id, name, label, field_order, field_type, object_type, config, valid_id, create_time, create_by, change_time, change_by`

func scanDynamicField(row pgx.Row) (DynamicField, error) {
	var f DynamicField
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Label,
		&f.FieldOrder,
		&f.FieldType,
		&f.ObjectType,
		&f.Config,
		&f.ValidID,
		&f.CreateTime,
		&f.CreateBy,
		&f.ChangeTime,
		&f.ChangeBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return DynamicField{}, ErrNotFound
	}
	return f, err
}

type InsertDynamicFieldParams struct {
	Name       string
	Label      string
	FieldOrder int32
	FieldType  string
	ObjectType string
	Config     []byte
	ValidID    int32
	CreateBy   int64
}

const insertDynamicFieldQuery = `
INSERT INTO dynamic_field
  (name, label, field_order, field_type, object_type, config, valid_id,
   create_time, create_by, change_time, change_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), $8, now(), $8)
RETURNING id
`

// InsertDynamicField creates a definition and returns the assigned id.
func (q *Queries) InsertDynamicField(ctx context.Context, params InsertDynamicFieldParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, insertDynamicFieldQuery,
		params.Name,
		params.Label,
		params.FieldOrder,
		params.FieldType,
		params.ObjectType,
		params.Config,
		params.ValidID,
		params.CreateBy,
	).Scan(&id)
	return id, err
}

const getDynamicFieldQuery = `
SELECT ` + dynamicFieldColumns + `
FROM dynamic_field
WHERE id = $1
`

func (q *Queries) GetDynamicField(ctx context.Context, id int64) (DynamicField, error) {
	return scanDynamicField(q.db.QueryRow(ctx, getDynamicFieldQuery, id))
}

const getDynamicFieldByNameQuery = `
SELECT ` + dynamicFieldColumns + `
FROM dynamic_field
WHERE name = $1
`

func (q *Queries) GetDynamicFieldByName(ctx context.Context, name string) (DynamicField, error) {
	return scanDynamicField(q.db.QueryRow(ctx, getDynamicFieldByNameQuery, name))
}

type UpdateDynamicFieldParams struct {
	ID         int64
	Name       string
	Label      string
	FieldOrder int32
	FieldType  string
	ObjectType string
	Config     []byte
	ValidID    int32
	ChangeBy   int64
}

const updateDynamicFieldQuery = `
UPDATE dynamic_field
SET name = $2,
    label = $3,
    field_order = $4,
    field_type = $5,
    object_type = $6,
    config = $7,
    valid_id = $8,
    change_time = now(),
    change_by = $9
WHERE id = $1
`

func (q *Queries) UpdateDynamicField(ctx context.Context, params UpdateDynamicFieldParams) error {
	tag, err := q.db.Exec(ctx, updateDynamicFieldQuery,
		params.ID,
		params.Name,
		params.Label,
		params.FieldOrder,
		params.FieldType,
		params.ObjectType,
		params.Config,
		params.ValidID,
		params.ChangeBy,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteDynamicFieldQuery = `
DELETE FROM dynamic_field
WHERE id = $1
`

func (q *Queries) DeleteDynamicField(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, deleteDynamicFieldQuery, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDynamicFieldsParams filters the ordered listing. A nil ValidIDs
// returns definitions regardless of validity status; an empty ObjectType
// returns all object types.
type ListDynamicFieldsParams struct {
	ValidIDs   []int32
	ObjectType string
}

const listDynamicFieldsQuery = `
SELECT ` + dynamicFieldColumns + `
FROM dynamic_field
WHERE ($1::int[] IS NULL OR valid_id = ANY($1))
  AND ($2::text = '' OR object_type = $2)
ORDER BY field_order, id
`

// ListDynamicFields returns definitions ordered by (field_order, id).
func (q *Queries) ListDynamicFields(ctx context.Context, params ListDynamicFieldsParams) ([]DynamicField, error) {
	rows, err := q.db.Query(ctx, listDynamicFieldsQuery, params.ValidIDs, params.ObjectType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []DynamicField
	for rows.Next() {
		var f DynamicField
		if err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Label,
			&f.FieldOrder,
			&f.FieldType,
			&f.ObjectType,
			&f.Config,
			&f.ValidID,
			&f.CreateTime,
			&f.CreateBy,
			&f.ChangeTime,
			&f.ChangeBy,
		); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fields, nil
}

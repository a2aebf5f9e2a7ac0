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
)

const deleteDynamicFieldValuesQuery = `
DELETE FROM dynamic_field_value
WHERE field_id = $1
`

// DeleteDynamicFieldValues removes every stored value for the given
// definition. Zero affected rows is not an error: a field may never have
// held values.
func (q *Queries) DeleteDynamicFieldValues(ctx context.Context, fieldID int64) error {
	_, err := q.db.Exec(ctx, deleteDynamicFieldValuesQuery, fieldID)
	return err
}

const countDynamicFieldValuesQuery = `
SELECT count(*)
FROM dynamic_field_value
WHERE field_id = $1
`

// CountDynamicFieldValues reports how many stored values reference the
// given definition.
func (q *Queries) CountDynamicFieldValues(ctx context.Context, fieldID int64) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countDynamicFieldValuesQuery, fieldID).Scan(&n)
	return n, err
}

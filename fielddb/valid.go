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

// Valid is one row of the validity-status lookup table.
type Valid struct {
	ID   int32
	Name string
}

const listValidQuery = `
SELECT id, name
FROM valid
ORDER BY id
`

func (q *Queries) ListValid(ctx context.Context) ([]Valid, error) {
	rows, err := q.db.Query(ctx, listValidQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []Valid
	for rows.Next() {
		var v Valid
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		statuses = append(statuses, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

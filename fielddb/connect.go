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
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardinalhq/dynfield/internal/dbopen"
)

// ConnectToFieldDB opens a pool using the FIELDDB_* environment family.
func ConnectToFieldDB(ctx context.Context) (*pgxpool.Pool, error) {
	connectionString, err := dbopen.GetDatabaseURLFromEnv("FIELDDB")
	if err != nil {
		return nil, errors.Join(dbopen.ErrDatabaseNotConfigured, fmt.Errorf("failed to get FIELDDB connection string: %w", err))
	}

	return dbopen.NewConnectionPool(ctx, connectionString)
}

// FieldDBStore connects and wraps the pool in a Store.
func FieldDBStore(ctx context.Context) (*Store, error) {
	pool, err := ConnectToFieldDB(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(pool), nil
}

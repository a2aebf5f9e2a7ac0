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
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	return r.err
}

func TestScanDynamicFieldMapsNoRows(t *testing.T) {
	_, err := scanDynamicField(fakeRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScanDynamicFieldPassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := scanDynamicField(fakeRow{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

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

// Package validstatus resolves which validity-status codes count as active.
package validstatus

import (
	"context"
	"fmt"

	"github.com/cardinalhq/dynfield/fielddb"
)

// Provider reports the status codes considered active.
type Provider interface {
	ActiveStatusIDs(ctx context.Context) ([]int32, error)
}

// staticProvider serves a fixed set of codes; used in tests and when no
// status table is available.
type staticProvider struct {
	ids []int32
}

var _ Provider = (*staticProvider)(nil)

func NewStaticProvider(ids ...int32) Provider {
	return &staticProvider{ids: ids}
}

func (p *staticProvider) ActiveStatusIDs(_ context.Context) ([]int32, error) {
	out := make([]int32, len(p.ids))
	copy(out, p.ids)
	return out, nil
}

// ValidLister is the slice of the store this package consumes.
type ValidLister interface {
	ListValid(ctx context.Context) ([]fielddb.Valid, error)
}

var _ ValidLister = (*fielddb.Store)(nil)

// dbProvider treats rows of the valid table whose name is "valid" as the
// active set.
type dbProvider struct {
	db ValidLister
}

var _ Provider = (*dbProvider)(nil)

func NewDBProvider(db ValidLister) Provider {
	return &dbProvider{db: db}
}

func (p *dbProvider) ActiveStatusIDs(ctx context.Context) ([]int32, error) {
	statuses, err := p.db.ListValid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list validity statuses: %w", err)
	}

	var active []int32
	for _, s := range statuses {
		if s.Name == "valid" {
			active = append(active, s.ID)
		}
	}
	return active, nil
}

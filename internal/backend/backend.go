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

// Package backend maps field type tags to their handler implementations.
// Handlers are constructed lazily and cached per type tag; instances are
// stateless and shared across callers for the life of the process.
package backend

import (
	"log/slog"
)

// Backend is the handler for one field type. Behavior beyond construction
// and identification is owned by each implementation.
type Backend interface {
	// Type returns the field type tag this backend serves.
	Type() string

	// DefaultConfig returns the configuration a new definition of this
	// type starts from.
	DefaultConfig() map[string]any
}

// Deps carries the shared collaborators handed to every backend
// constructor. Each implementation picks what it needs.
type Deps struct {
	Log *slog.Logger
}

// Constructor builds a backend for the given field type tag.
type Constructor func(deps Deps, fieldType string) (Backend, error)

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

package backend

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrEmptyFieldType is returned when a resolution carries no type tag.
	ErrEmptyFieldType = errors.New("backend: empty field type")
	// ErrUnregistered is returned when no constructor is registered for
	// the requested field type.
	ErrUnregistered = errors.New("backend: unregistered field type")
)

// Resolver resolves field type tags to singleton backend instances.
// Constructors are registered at startup; instances are built on first use
// and reused for every later resolution of the same tag.
type Resolver struct {
	deps Deps

	mu           sync.RWMutex
	constructors map[string]Constructor
	instances    map[string]Backend
}

// NewResolver creates a Resolver with the builtin field types registered.
func NewResolver(deps Deps) *Resolver {
	r := &Resolver{
		deps:         deps,
		constructors: make(map[string]Constructor),
		instances:    make(map[string]Backend),
	}
	registerBuiltins(r)
	return r
}

// Register adds a constructor for a field type. Re-registering an already
// known tag is an error: the instance cache would go stale.
func (r *Resolver) Register(fieldType string, ctor Constructor) error {
	if fieldType == "" {
		return ErrEmptyFieldType
	}
	if ctor == nil {
		return fmt.Errorf("backend: nil constructor for field type %q", fieldType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.constructors[fieldType]; exists {
		return fmt.Errorf("backend: field type %q already registered", fieldType)
	}
	r.constructors[fieldType] = ctor
	return nil
}

// Registered reports whether a constructor exists for the field type.
func (r *Resolver) Registered(fieldType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[fieldType]
	return ok
}

// Resolve returns the singleton backend for the field type, constructing
// it on first use. Construction failure is terminal for this call and is
// never cached, so a later call may succeed if the cause was transient.
func (r *Resolver) Resolve(fieldType string) (Backend, error) {
	if fieldType == "" {
		return nil, ErrEmptyFieldType
	}

	r.mu.RLock()
	if instance, ok := r.instances[fieldType]; ok {
		r.mu.RUnlock()
		return instance, nil
	}
	ctor, ok := r.constructors[fieldType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregistered, fieldType)
	}

	// Construct outside the write lock, then let the first writer win so
	// every caller observes the same fully-constructed instance.
	instance, err := ctor(r.deps, fieldType)
	if err != nil {
		return nil, fmt.Errorf("backend: constructing %q: %w", fieldType, err)
	}
	if instance == nil {
		return nil, fmt.Errorf("backend: constructor for %q returned nil", fieldType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.instances[fieldType]; ok {
		return existing, nil
	}
	r.instances[fieldType] = instance
	return instance, nil
}

// Reset drops all cached instances; constructors stay registered.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = make(map[string]Backend)
}

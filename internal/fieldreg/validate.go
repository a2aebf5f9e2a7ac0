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
	"fmt"
	"regexp"
)

var fieldNameRegexp = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func errValidation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// validateDefinition checks the shared argument set of Add and Update.
// It runs before any store access; a failure here has no side effects.
func (r *Registry) validateDefinition(name, label, fieldType, objectType string, fieldOrder int32, config map[string]any, validID int32, actorID int64) error {
	switch {
	case name == "":
		return errValidation("Name is required")
	case label == "":
		return errValidation("Label is required")
	case fieldType == "":
		return errValidation("FieldType is required")
	case objectType == "":
		return errValidation("ObjectType is required")
	case config == nil:
		return errValidation("Config is required")
	case validID == 0:
		return errValidation("ValidID is required")
	case actorID == 0:
		return errValidation("ActorID is required")
	}

	if !fieldNameRegexp.MatchString(name) {
		return errValidation("Name %q is invalid: only letters and digits are allowed", name)
	}
	if fieldOrder < 1 {
		return errValidation("FieldOrder %d is invalid: must be a positive integer", fieldOrder)
	}
	if !r.resolver.Registered(fieldType) {
		return errValidation("FieldType %q has no registered backend", fieldType)
	}
	return nil
}

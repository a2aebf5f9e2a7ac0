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
	"time"
)

// FieldConfig is a dynamic field definition as seen by callers, with the
// configuration blob decoded.
type FieldConfig struct {
	ID         int64
	Name       string
	Label      string
	FieldOrder int32
	FieldType  string
	ObjectType string
	Config     map[string]any
	ValidID    int32
	CreateTime time.Time
	CreateBy   int64
	ChangeTime time.Time
	ChangeBy   int64
}

// clone returns a copy whose Config shares no structure with the
// receiver's, so a caller mutating a returned definition cannot reach
// into a cached one.
func (f FieldConfig) clone() FieldConfig {
	if f.Config != nil {
		f.Config = cloneConfigValue(f.Config).(map[string]any)
	}
	return f
}

func cloneConfigValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneConfigValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneConfigValue(e)
		}
		return out
	default:
		return t
	}
}

func cloneFieldConfigs(defs []FieldConfig) []FieldConfig {
	out := make([]FieldConfig, len(defs))
	for i, def := range defs {
		out[i] = def.clone()
	}
	return out
}

// AddParams are the required arguments for Add. Every field must be set.
type AddParams struct {
	Name       string
	Label      string
	FieldOrder int32
	FieldType  string
	ObjectType string
	Config     map[string]any
	ValidID    int32
	ActorID    int64
}

// UpdateParams are the arguments for Update. Reorder nil means true.
type UpdateParams struct {
	ID         int64
	Name       string
	Label      string
	FieldOrder int32
	FieldType  string
	ObjectType string
	Config     map[string]any
	ValidID    int32
	ActorID    int64
	Reorder    *bool
}

// ListParams filter the listing operations. Valid nil or true restricts
// to definitions whose status is in the active set; an explicit false
// returns all definitions. An empty ObjectType matches every object type.
type ListParams struct {
	Valid      *bool
	ObjectType string
}

func (p ListParams) activeOnly() bool {
	return p.Valid == nil || *p.Valid
}

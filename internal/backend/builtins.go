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

import "log/slog"

// Builtin field type tags.
const (
	TypeText        = "Text"
	TypeTextArea    = "TextArea"
	TypeCheckbox    = "Checkbox"
	TypeDropdown    = "Dropdown"
	TypeMultiselect = "Multiselect"
	TypeDate        = "Date"
	TypeDateTime    = "DateTime"
)

func registerBuiltins(r *Resolver) {
	for tag, defaults := range map[string]map[string]any{
		TypeText:        {"DefaultValue": ""},
		TypeTextArea:    {"DefaultValue": "", "Rows": int64(5), "Cols": int64(60)},
		TypeCheckbox:    {"DefaultValue": int64(0)},
		TypeDropdown:    {"DefaultValue": "", "PossibleValues": map[string]any{}, "PossibleNone": int64(1)},
		TypeMultiselect: {"DefaultValue": "", "PossibleValues": map[string]any{}, "PossibleNone": int64(1)},
		TypeDate:        {"DefaultValue": int64(0), "YearsPeriod": int64(0)},
		TypeDateTime:    {"DefaultValue": int64(0), "YearsPeriod": int64(0)},
	} {
		// Registration of a fresh tag set cannot fail.
		_ = r.Register(tag, func(deps Deps, fieldType string) (Backend, error) {
			return &builtinBackend{
				fieldType: fieldType,
				defaults:  defaults,
				log:       deps.Log,
			}, nil
		})
	}
}

// builtinBackend is the shared implementation behind the stock field
// types. Type-specific behavior lives in the default configuration.
type builtinBackend struct {
	fieldType string
	defaults  map[string]any
	log       *slog.Logger
}

func (b *builtinBackend) Type() string {
	return b.fieldType
}

func (b *builtinBackend) DefaultConfig() map[string]any {
	cfg := make(map[string]any, len(b.defaults))
	for k, v := range b.defaults {
		cfg[k] = v
	}
	return cfg
}

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
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/cardinalhq/dynfield/fielddb"
)

// configCodec serializes the opaque configuration blob with CBOR.
//
// CBOR type behavior on the round trip:
//   - all integers decode as int64; float32 becomes float64
//   - sequences decode as []any, maps as map[string]any
//   - string, bool, []byte and nil are preserved exactly
type configCodec struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

func newConfigCodec() (*configCodec, error) {
	encMode, err := cbor.EncOptions{
		Sort:          cbor.SortNone,
		ShortestFloat: cbor.ShortestFloatNone,
		BigIntConvert: cbor.BigIntConvertNone,
	}.EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	decMode, err := cbor.DecOptions{
		IntDec:         cbor.IntDecConvertSigned,
		DefaultMapType: reflect.TypeOf(map[string]any{}),
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR decoder: %w", err)
	}

	return &configCodec{encMode: encMode, decMode: decMode}, nil
}

func (c *configCodec) Encode(cfg map[string]any) ([]byte, error) {
	data, err := c.encMode.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode field config: %w", err)
	}
	return data, nil
}

func (c *configCodec) Decode(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	var cfg map[string]any
	if err := c.decMode.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode field config: %w", err)
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	return cfg, nil
}

// fromRow maps a stored row to the caller-facing shape, decoding the
// configuration blob.
func (r *Registry) fromRow(row fielddb.DynamicField) (FieldConfig, error) {
	cfg, err := r.codec.Decode(row.Config)
	if err != nil {
		return FieldConfig{}, err
	}
	return FieldConfig{
		ID:         row.ID,
		Name:       row.Name,
		Label:      row.Label,
		FieldOrder: row.FieldOrder,
		FieldType:  row.FieldType,
		ObjectType: row.ObjectType,
		Config:     cfg,
		ValidID:    row.ValidID,
		CreateTime: row.CreateTime.In(time.UTC),
		CreateBy:   row.CreateBy,
		ChangeTime: row.ChangeTime.In(time.UTC),
		ChangeBy:   row.ChangeBy,
	}, nil
}

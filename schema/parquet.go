/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package schema

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/rulego/framesql/types"
)

// FromParquet reads the column schema from the footer of a parquet file
func FromParquet(r io.ReaderAt, size int64) ([]types.Column, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	return FromParquetSchema(f.Schema())
}

// FromParquetSchema maps the top-level leaf fields of s to columns. Groups
// and repeated fields have no column type.
func FromParquetSchema(s *parquet.Schema) ([]types.Column, error) {
	fields := s.Fields()
	cols := make([]types.Column, 0, len(fields))
	for _, field := range fields {
		t, err := parquetType(field)
		if err != nil {
			return nil, err
		}
		cols = append(cols, types.NewColumn(field.Name(), t))
	}
	log().Debug("parquet schema %s: %d columns", s.Name(), len(cols))
	return cols, nil
}

func parquetType(field parquet.Field) (types.PrimitiveType, error) {
	if !field.Leaf() || field.Repeated() {
		return types.TypeUnknown, types.NewNotImplementedError(
			"Nested or repeated parquet column '%s' is not supported", field.Name())
	}
	typ := field.Type()
	if lt := typ.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil, lt.Enum != nil, lt.Json != nil, lt.UUID != nil:
			return types.TypeString, nil
		case lt.Date != nil:
			return types.TypeDate, nil
		case lt.Timestamp != nil:
			return types.TypeDateTime, nil
		case lt.Decimal != nil:
			return types.TypeNumber, nil
		case lt.Integer != nil:
			return types.TypeInteger, nil
		case lt.Time != nil:
			return types.TypeUnknown, types.NewNotImplementedError(
				"Parquet column '%s' has a time of day type, which is not supported", field.Name())
		}
	}
	switch typ.Kind() {
	case parquet.Boolean:
		return types.TypeBoolean, nil
	case parquet.Int32, parquet.Int64:
		return types.TypeInteger, nil
	case parquet.Int96:
		return types.TypeDateTime, nil
	case parquet.Float, parquet.Double:
		return types.TypeFloat, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return types.TypeString, nil
	}
	return types.TypeUnknown, types.NewNotImplementedError(
		"Parquet column '%s' has an unsupported type: %s", field.Name(), typ)
}

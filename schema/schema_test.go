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
	"bytes"
	"testing"

	"github.com/linkedin/goavro/v2"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/framesql/types"
)

type tradeRow struct {
	ID     int64   `parquet:"id"`
	Symbol string  `parquet:"symbol"`
	Qty    int32   `parquet:"qty"`
	Price  float64 `parquet:"price"`
	Ratio  float32 `parquet:"ratio"`
	Open   bool    `parquet:"open"`
	Note   *string `parquet:"note,optional"`
}

var tradeColumns = []types.Column{
	types.IntegerColumn("id"),
	types.StringColumn("symbol"),
	types.IntegerColumn("qty"),
	types.FloatColumn("price"),
	types.FloatColumn("ratio"),
	types.BooleanColumn("open"),
	types.StringColumn("note"),
}

func TestFromParquet(t *testing.T) {
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[tradeRow](&buf)
	_, err := w.Write([]tradeRow{{ID: 1, Symbol: "A", Qty: 2, Price: 1.5}})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	cols, err := FromParquet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, tradeColumns, cols)

	_, err = FromParquet(bytes.NewReader([]byte("not parquet")), 11)
	assert.Error(t, err)
}

func TestFromParquetSchema(t *testing.T) {
	cols, err := FromParquetSchema(parquet.SchemaOf(tradeRow{}))
	require.NoError(t, err)
	assert.Equal(t, tradeColumns, cols)

	logical := parquet.NewSchema("logical", parquet.Group{
		"amount": parquet.Decimal(2, 10, parquet.Int64Type),
		"day":    parquet.Date(),
		"json":   parquet.JSON(),
		"ts":     parquet.Timestamp(parquet.Millisecond),
	})
	cols, err = FromParquetSchema(logical)
	require.NoError(t, err)
	assert.Equal(t, []types.Column{
		types.NumberColumn("amount"),
		types.DateColumn("day"),
		types.StringColumn("json"),
		types.DateTimeColumn("ts"),
	}, cols)

	type address struct {
		City string `parquet:"city"`
	}
	type nested struct {
		ID      int64   `parquet:"id"`
		Address address `parquet:"address"`
	}
	_, err = FromParquetSchema(parquet.SchemaOf(nested{}))
	assert.EqualError(t, err, "Nested or repeated parquet column 'address' is not supported")
	assert.True(t, types.IsNotImplemented(err))

	type repeated struct {
		Tags []string `parquet:"tags"`
	}
	_, err = FromParquetSchema(parquet.SchemaOf(repeated{}))
	assert.True(t, types.IsNotImplemented(err))
}

const tradeSchema = `{
  "type": "record",
  "name": "Trade",
  "fields": [
    {"name": "id", "type": "long"},
    {"name": "symbol", "type": "string"},
    {"name": "qty", "type": "int"},
    {"name": "price", "type": "double"},
    {"name": "ratio", "type": "float"},
    {"name": "open", "type": "boolean"},
    {"name": "note", "type": ["null", "string"], "default": null},
    {"name": "day", "type": {"type": "int", "logicalType": "date"}},
    {"name": "ts", "type": {"type": "long", "logicalType": "timestamp-millis"}},
    {"name": "amount", "type": {"type": "bytes", "logicalType": "decimal", "precision": 10, "scale": 2}},
    {"name": "side", "type": {"type": "enum", "name": "Side", "symbols": ["BUY", "SELL"]}}
  ]
}`

func TestFromAvroSchema(t *testing.T) {
	cols, err := FromAvroSchema(tradeSchema)
	require.NoError(t, err)
	assert.Equal(t, append(types.CopyColumns(tradeColumns),
		types.DateColumn("day"),
		types.DateTimeColumn("ts"),
		types.NumberColumn("amount"),
		types.StringColumn("side"),
	), cols)

	tests := []struct {
		name   string
		schema string
		err    string
	}{
		{
			name:   "not a record",
			schema: `"string"`,
			err:    `An avro schema must be a record to describe a table, but got: "string"`,
		},
		{
			name:   "union",
			schema: `{"type": "record", "name": "R", "fields": [{"name": "v", "type": ["int", "string"]}]}`,
			err:    "Avro column 'v' is a union of several types, which is not supported",
		},
		{
			name:   "array",
			schema: `{"type": "record", "name": "R", "fields": [{"name": "v", "type": {"type": "array", "items": "int"}}]}`,
			err:    "Nested avro column 'v' of type array is not supported",
		},
		{
			name:   "time of day",
			schema: `{"type": "record", "name": "R", "fields": [{"name": "v", "type": {"type": "int", "logicalType": "time-millis"}}]}`,
			err:    "Avro column 'v' has a time of day type, which is not supported",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAvroSchema(tt.schema)
			assert.EqualError(t, err, tt.err)
			assert.True(t, types.IsNotImplemented(err))
		})
	}

	_, err = FromAvroSchema(`{"type": "record"`)
	assert.Error(t, err)
}

func TestFromAvroOCF(t *testing.T) {
	var buf bytes.Buffer
	_, err := goavro.NewOCFWriter(goavro.OCFConfig{W: &buf, Schema: tradeSchema})
	require.NoError(t, err)

	cols, err := FromAvroOCF(&buf)
	require.NoError(t, err)
	assert.Len(t, cols, 11)
	assert.Equal(t, types.StringColumn("note"), cols[6])

	_, err = FromAvroOCF(bytes.NewReader([]byte("nope")))
	assert.Error(t, err)
}

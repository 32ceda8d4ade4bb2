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
	"encoding/json"
	"fmt"
	"io"

	"github.com/linkedin/goavro/v2"

	"github.com/rulego/framesql/types"
)

// FromAvroSchema maps the fields of an Avro record schema to columns. The
// schema is validated by goavro before it is read.
func FromAvroSchema(schema string) ([]types.Column, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("invalid avro schema: %w", err)
	}
	return fromCodec(codec)
}

// FromAvroOCF reads the writer schema from the header of an Avro object
// container file. No records are decoded.
func FromAvroOCF(r io.Reader) ([]types.Column, error) {
	ocfr, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read avro OCF: %w", err)
	}
	return fromCodec(ocfr.Codec())
}

type avroRecord struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Fields []struct {
		Name string          `json:"name"`
		Type json.RawMessage `json:"type"`
	} `json:"fields"`
}

type avroComplex struct {
	Type        json.RawMessage `json:"type"`
	LogicalType string          `json:"logicalType"`
}

func fromCodec(codec *goavro.Codec) ([]types.Column, error) {
	var rec avroRecord
	if err := json.Unmarshal([]byte(codec.Schema()), &rec); err != nil || rec.Type != "record" {
		return nil, types.NewNotImplementedError("An avro schema must be a record to describe a table, but got: %s", codec.Schema())
	}
	cols := make([]types.Column, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		t, err := avroType(f.Name, f.Type)
		if err != nil {
			return nil, err
		}
		cols = append(cols, types.NewColumn(f.Name, t))
	}
	log().Debug("avro record %s: %d columns", rec.Name, len(cols))
	return cols, nil
}

func avroType(column string, raw json.RawMessage) (types.PrimitiveType, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return avroPrimitive(column, name)
	}
	var union []json.RawMessage
	if err := json.Unmarshal(raw, &union); err == nil {
		var branches []json.RawMessage
		for _, b := range union {
			if string(b) != `"null"` {
				branches = append(branches, b)
			}
		}
		if len(branches) != 1 {
			return types.TypeUnknown, types.NewNotImplementedError(
				"Avro column '%s' is a union of several types, which is not supported", column)
		}
		return avroType(column, branches[0])
	}
	var c avroComplex
	if err := json.Unmarshal(raw, &c); err != nil {
		return types.TypeUnknown, fmt.Errorf("cannot parse avro type of column '%s': %w", column, err)
	}
	switch c.LogicalType {
	case "date":
		return types.TypeDate, nil
	case "timestamp-millis", "timestamp-micros", "local-timestamp-millis", "local-timestamp-micros":
		return types.TypeDateTime, nil
	case "decimal":
		return types.TypeNumber, nil
	case "uuid":
		return types.TypeString, nil
	case "time-millis", "time-micros":
		return types.TypeUnknown, types.NewNotImplementedError(
			"Avro column '%s' has a time of day type, which is not supported", column)
	}
	var named string
	if err := json.Unmarshal(c.Type, &named); err == nil {
		switch named {
		case "enum", "fixed":
			return types.TypeString, nil
		case "record", "array", "map":
			return types.TypeUnknown, types.NewNotImplementedError(
				"Nested avro column '%s' of type %s is not supported", column, named)
		}
	}
	return avroType(column, c.Type)
}

func avroPrimitive(column, name string) (types.PrimitiveType, error) {
	switch name {
	case "boolean":
		return types.TypeBoolean, nil
	case "int", "long":
		return types.TypeInteger, nil
	case "float", "double":
		return types.TypeFloat, nil
	case "string", "bytes":
		return types.TypeString, nil
	}
	return types.TypeUnknown, types.NewNotImplementedError("Avro column '%s' has an unsupported type: %s", column, name)
}

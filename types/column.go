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

package types

import (
	"fmt"
	"strings"
)

// PrimitiveType 列的声明类型
type PrimitiveType int

const (
	TypeUnknown PrimitiveType = iota
	TypeBoolean
	TypeString
	TypeInteger
	TypeFloat
	// TypeNumber 泛化数值，整数与浮点混合运算的结果
	TypeNumber
	TypeDate
	TypeDateTime
	TypeStrictDate
)

var primitiveTypeNames = map[PrimitiveType]string{
	TypeBoolean:    "Boolean",
	TypeString:     "String",
	TypeInteger:    "Integer",
	TypeFloat:      "Float",
	TypeNumber:     "Number",
	TypeDate:       "Date",
	TypeDateTime:   "DateTime",
	TypeStrictDate: "StrictDate",
}

func (t PrimitiveType) String() string {
	if name, ok := primitiveTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// IsValid reports whether t is one of the declared column types
func (t PrimitiveType) IsValid() bool {
	_, ok := primitiveTypeNames[t]
	return ok
}

// IsNumeric reports Integer, Float and Number
func (t PrimitiveType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat || t == TypeNumber
}

// IsTemporal reports the date types
func (t PrimitiveType) IsTemporal() bool {
	return t == TypeDate || t == TypeDateTime || t == TypeStrictDate
}

// ParsePrimitiveType parses a type name case-insensitively
func ParsePrimitiveType(name string) (PrimitiveType, error) {
	for t, n := range primitiveTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown column type: %q", name)
}

func (t PrimitiveType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot marshal column type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *PrimitiveType) UnmarshalText(text []byte) error {
	parsed, err := ParsePrimitiveType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Column 帧的一列。由编译阶段产出后不再修改
type Column struct {
	Name string        `json:"name"`
	Type PrimitiveType `json:"type"`
}

func NewColumn(name string, t PrimitiveType) Column {
	return Column{Name: name, Type: t}
}

func BooleanColumn(name string) Column    { return NewColumn(name, TypeBoolean) }
func StringColumn(name string) Column     { return NewColumn(name, TypeString) }
func IntegerColumn(name string) Column    { return NewColumn(name, TypeInteger) }
func FloatColumn(name string) Column      { return NewColumn(name, TypeFloat) }
func NumberColumn(name string) Column     { return NewColumn(name, TypeNumber) }
func DateColumn(name string) Column       { return NewColumn(name, TypeDate) }
func DateTimeColumn(name string) Column   { return NewColumn(name, TypeDateTime) }
func StrictDateColumn(name string) Column { return NewColumn(name, TypeStrictDate) }

func (c Column) String() string {
	return fmt.Sprintf("Column(Name: %s, Type: %s)", c.Name, c.Type)
}

// CopyColumns returns an independent copy of cols
func CopyColumns(cols []Column) []Column {
	return append([]Column(nil), cols...)
}

// ColumnNames lists the names of cols in order
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// FindColumn looks a column up by exact name
func FindColumn(cols []Column, name string) (Column, bool) {
	for _, c := range cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

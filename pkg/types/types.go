/**
 * Copyright 2021 The FrostlightDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import "fmt"

// DataType is the declared type of a column or of an expression result.
type DataType uint64

const (
	DataTypeBoolean DataType = iota
	DataTypeInteger          // 32 bit signed
	DataTypeFloat            // 64 bit
	DataTypeString
)

func (d DataType) String() string {
	switch d {
	case DataTypeBoolean:
		return "boolean"

	case DataTypeInteger:
		return "integer"

	case DataTypeFloat:
		return "float"

	case DataTypeString:
		return "string"
	}

	panic("programming error: unexpected data type in String() of DataType")
}

// DataValue is a single typed value. A value can be NULL irrespective of
// its declared type; a bare NULL literal has IsNull set and Typ is not
// meaningful for it.
type DataValue struct {
	Typ    DataType
	IsNull bool
	Val    interface{}
}

// NewBooleanValue creates a boolean DataValue.
func NewBooleanValue(v bool) *DataValue {
	return &DataValue{Typ: DataTypeBoolean, Val: v}
}

// NewIntegerValue creates an integer DataValue.
func NewIntegerValue(v int32) *DataValue {
	return &DataValue{Typ: DataTypeInteger, Val: v}
}

// NewFloatValue creates a float DataValue.
func NewFloatValue(v float64) *DataValue {
	return &DataValue{Typ: DataTypeFloat, Val: v}
}

// NewStringValue creates a string DataValue.
func NewStringValue(v string) *DataValue {
	return &DataValue{Typ: DataTypeString, Val: v}
}

// NewNullValue creates a NULL DataValue.
func NewNullValue() *DataValue {
	return &DataValue{IsNull: true}
}

// DataType returns the type of the value. nil denotes NULL.
func (v *DataValue) DataType() *DataType {
	if v.IsNull {
		return nil
	}

	typ := v.Typ
	return &typ
}

func (v *DataValue) GetAsBoolean() bool {
	if v.IsNull || v.Typ != DataTypeBoolean {
		panic("programming error: expected type to be boolean")
	}

	return v.Val.(bool)
}

func (v *DataValue) GetAsInt() int32 {
	switch t := v.Val.(type) {
	case int32:
		return t
	case int:
		return int32(t)
	default:
		panic("programming error: expected type to be integer")
	}
}

func (v *DataValue) GetAsFloat() float64 {
	if v.IsNull || v.Typ != DataTypeFloat {
		panic("programming error: expected type to be float")
	}

	return v.Val.(float64)
}

func (v *DataValue) GetAsString() string {
	if v.IsNull || v.Typ != DataTypeString {
		panic("programming error: expected type to be string")
	}

	return v.Val.(string)
}

func (v *DataValue) String() string {
	if v.IsNull {
		return "NULL"
	}

	return fmt.Sprintf("%v", v.Val)
}

var (
	// Types which can be operands of the '+' operator
	OperatorPlusOperandTypes = map[DataType]bool{DataTypeInteger: true, DataTypeFloat: true, DataTypeString: true}

	// Types which can be operands of the '-' operator
	OperatorMinusOperandTypes = map[DataType]bool{DataTypeInteger: true, DataTypeFloat: true}

	// Types which can be operands of the '*' operator
	OperatorAsteriskOperandTypes = map[DataType]bool{DataTypeInteger: true, DataTypeFloat: true}

	// Types which can be operands of the '/' operator
	OperatorSlashOperandTypes = map[DataType]bool{DataTypeInteger: true, DataTypeFloat: true}

	// Types which can be operands of the '%' operator
	OperatorPercentOperandTypes = map[DataType]bool{DataTypeInteger: true}

	// Types which can be operands of the '>', '>=', '<' & '<=' operators
	OperatorComparisonOperandTypes = map[DataType]bool{DataTypeInteger: true, DataTypeFloat: true, DataTypeString: true}

	// Types which can be operands of the logical AND/OR operators
	OperatorLogicalOperandTypes = map[DataType]bool{DataTypeBoolean: true}
)

package gql

import (
	jsoniter "github.com/json-iterator/go"
)

// 全局JSON处理实例，使用jsoniter替代标准库
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// 类型常量
const (
	TYPE_QUERY = "Query"

	SCALAR_INT     = "Int"
	SCALAR_FLOAT   = "Float"
	SCALAR_STRING  = "String"
	SCALAR_BOOLEAN = "Boolean"
)

// 元字段
const (
	FIELD_TYPENAME = "__typename"
	FIELD_SCHEMA   = "__schema"
	FIELD_TYPE     = "__type"
)

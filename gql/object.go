package gql

import (
	"bytes"
)

// Object 保持字段选择顺序的响应对象
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject 创建空对象
func NewObject(size int) *Object {
	return &Object{keys: make([]string, 0, size), values: make(map[string]any, size)}
}

// Set 写入字段，重复写入保持首次出现的位置
func (my *Object) Set(key string, value any) {
	if _, ok := my.values[key]; !ok {
		my.keys = append(my.keys, key)
	}
	my.values[key] = value
}

func (my *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range my.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(my.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Package optional 表示"可能未提供"的值
//
// 用于部分更新：未设置的字段保持原值，设置了的字段（哪怕是零值）覆盖原值。
// 与指针相比，Value的零值就是"未设置"，不需要额外的nil判断约定。
package optional

import "encoding/json"

// Value 可选值
type Value[T any] struct {
	value T
	set   bool
}

// Of 创建已设置的值
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// None 创建未设置的值
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get 返回值以及是否已设置
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// Apply 已设置时写入dst
func (v Value[T]) Apply(dst *T) {
	if v.set {
		*dst = v.value
	}
}

// UnmarshalJSON 出现在JSON中的字段即视为已设置（包括null以外的零值）
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = None[T]()
		return nil
	}
	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*v = Of(t)
	return nil
}

package domain

import (
	"bytes"
	"encoding/json"
)

// Optional 区分 JSON 中 "字段缺失"、"显式 null" 与 "有值"。
// 用于可置空字段的部分更新（assigned_to_id、description、日期等）。
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

func Null[T any]() Optional[T] { return Optional[T]{Set: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	// 空串日期等解析为零值的类型按 null 处理
	if z, ok := any(v).(interface{ IsZero() bool }); ok && z.IsZero() {
		o.Value = nil
		return nil
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Apply 仅在字段出现时覆盖目标
func (o Optional[T]) Apply(dst **T) {
	if o.Set {
		*dst = o.Value
	}
}

// ApplyTo 非指针字段：显式 null 写成零值，由字段校验报 can't be blank
func (o Optional[T]) ApplyTo(dst *T) {
	if !o.Set {
		return
	}
	var zero T
	if o.Value != nil {
		zero = *o.Value
	}
	*dst = zero
}

// Present 有非空值
func (o Optional[T]) Present() bool { return o.Set && o.Value != nil }

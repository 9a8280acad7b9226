package element

import (
	"fmt"
	"slices"

	"sea/types"
)

// Series 读取频带序列，长度为 1 的值广播到频带数
func (b *Base) Series(name string) ([]float64, error) {
	v, ok := b.series[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s 没有序列 '%s'", types.ErrInvalidProperty, b.model.Name(), name)
	}
	return Broadcast(name, v, b.Frequency().Len())
}

// SetSeries 设置频带序列
func (b *Base) SetSeries(name string, value any) error {
	f, ok := b.fields[name]
	if !ok || f.Type != FieldSeries {
		return fmt.Errorf("%w: %s 没有序列 '%s'", types.ErrInvalidProperty, b.model.Name(), name)
	}
	v, err := ToFloats(value)
	if err != nil {
		return err
	}
	if n := b.Frequency().Len(); n > 0 && len(v) != n && len(v) != 1 {
		return &types.ShapeMismatchError{Attribute: name, Got: len(v), Want: n}
	}
	b.series[name] = v
	return nil
}

// SetSeriesAt 写入单个频带的值，序列先展开到完整长度
func (b *Base) SetSeriesAt(name string, band int, value float64) error {
	v, err := b.Series(name)
	if err != nil {
		return err
	}
	if band < 0 || band >= len(v) {
		return fmt.Errorf("频带索引 %d 越界，频带数 %d", band, len(v))
	}
	v[band] = value
	b.series[name] = v
	return nil
}

// ZeroSeries 序列置零
func (b *Base) ZeroSeries(name string) {
	if _, ok := b.series[name]; ok {
		b.series[name] = make([]float64, b.Frequency().Len())
	}
}

// Broadcast 统一的长度检查，返回新切片
func Broadcast(name string, v []float64, n int) ([]float64, error) {
	switch {
	case n == 0 || len(v) == n:
		return slices.Clone(v), nil
	case len(v) == 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	}
	return nil, &types.ShapeMismatchError{Attribute: name, Got: len(v), Want: n}
}

// ToFloats 将数值或数值列表转换为 []float64
func ToFloats(value any) ([]float64, error) {
	switch v := value.(type) {
	case []float64:
		return slices.Clone(v), nil
	case []int:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []any:
		out := make([]float64, len(v))
		for i, x := range v {
			f, err := toFloat(x)
			if err != nil {
				return nil, fmt.Errorf("第 %d 个元素: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	}
	f, err := toFloat(value)
	if err != nil {
		return nil, err
	}
	return []float64{f}, nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("无法转换为数值: %v (%T)", value, value)
}

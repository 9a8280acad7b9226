package types

import (
	"fmt"
	"math"
	"slices"
)

// Frequency 频带轴
type Frequency struct {
	Center  []float64 // 中心频率
	Lower   []float64 // 下限频率
	Upper   []float64 // 上限频率
	Enabled []bool    // 是否参与求解
}

// NewFrequency 创建频带轴并校验
func NewFrequency(center, lower, upper []float64, enabled []bool) (*Frequency, error) {
	f := &Frequency{
		Center:  slices.Clone(center),
		Lower:   slices.Clone(lower),
		Upper:   slices.Clone(upper),
		Enabled: slices.Clone(enabled),
	}
	if f.Enabled == nil {
		f.Enabled = make([]bool, len(center))
		for i := range f.Enabled {
			f.Enabled[i] = true
		}
	}
	if f.Lower == nil {
		f.Lower = slices.Clone(center)
	}
	if f.Upper == nil {
		f.Upper = slices.Clone(center)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Bands 按 1/fraction 倍频程由中心频率生成频带
func Bands(center []float64, fraction int) (*Frequency, error) {
	if fraction <= 0 {
		return nil, fmt.Errorf("倍频程分数必须为正: %d", fraction)
	}
	half := math.Pow(2, 1/(2*float64(fraction)))
	lower := make([]float64, len(center))
	upper := make([]float64, len(center))
	for i, c := range center {
		lower[i] = c / half
		upper[i] = c * half
	}
	return NewFrequency(center, lower, upper, nil)
}

// Validate 检查长度一致与频率顺序
func (f *Frequency) Validate() error {
	n := len(f.Center)
	if len(f.Lower) != n || len(f.Upper) != n || len(f.Enabled) != n {
		return fmt.Errorf("频带轴长度不一致: center=%d lower=%d upper=%d enabled=%d",
			n, len(f.Lower), len(f.Upper), len(f.Enabled))
	}
	for i := range n {
		if !(f.Lower[i] <= f.Center[i] && f.Center[i] <= f.Upper[i]) {
			return fmt.Errorf("频带 %d 频率顺序错误: %g <= %g <= %g", i, f.Lower[i], f.Center[i], f.Upper[i])
		}
	}
	return nil
}

// Len 频带数
func (f *Frequency) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Center)
}

// Angular 角频率
func (f *Frequency) Angular() []float64 {
	w := make([]float64, len(f.Center))
	for i, c := range f.Center {
		w[i] = 2 * math.Pi * c
	}
	return w
}

// Bandwidth 带宽
func (f *Frequency) Bandwidth() []float64 {
	b := make([]float64, len(f.Center))
	for i := range f.Center {
		b[i] = f.Upper[i] - f.Lower[i]
	}
	return b
}

// EnabledBands 参与求解的频带索引
func (f *Frequency) EnabledBands() []int {
	var bands []int
	for i, e := range f.Enabled {
		if e {
			bands = append(bands, i)
		}
	}
	return bands
}

// Clone 深拷贝
func (f *Frequency) Clone() *Frequency {
	return &Frequency{
		Center:  slices.Clone(f.Center),
		Lower:   slices.Clone(f.Lower),
		Upper:   slices.Clone(f.Upper),
		Enabled: slices.Clone(f.Enabled),
	}
}

package load

import (
	"fmt"
	"strings"

	"sea/types"
)

// Document 模型文档
type Document struct {
	Frequency   Frequency      `yaml:"frequency"`             // 频带轴
	Solved      bool           `yaml:"solved,omitempty"`      // 模态能量是否为求解结果
	Values      map[string]any `yaml:"values,omitempty"`      // 命名常量，属性中以 $名称 引用
	Materials   []Record       `yaml:"materials,omitempty"`   // 材料
	Components  []Record       `yaml:"components,omitempty"`  // 组件
	Subsystems  []Record       `yaml:"subsystems,omitempty"`  // 子系统，按 (component, model) 应用到自动创建的子系统
	Junctions   []Record       `yaml:"junctions,omitempty"`   // 连接
	Couplings   []Record       `yaml:"couplings,omitempty"`   // 耦合
	Excitations []Record       `yaml:"excitations,omitempty"` // 激励
}

// Frequency 频带轴，lower/upper 缺省时等于中心频率
type Frequency struct {
	Center  []float64 `yaml:"center"`
	Lower   []float64 `yaml:"lower,omitempty"`
	Upper   []float64 `yaml:"upper,omitempty"`
	Enabled []bool    `yaml:"enabled,omitempty"`
	Octave  int       `yaml:"octave,omitempty"` // 1/octave 倍频程，给定时由中心频率生成上下限
}

// Record 一个实体
type Record struct {
	Name       string         `yaml:"name"`
	Model      string         `yaml:"model"`
	Enabled    *bool          `yaml:"enabled,omitempty"`
	Properties map[string]any `yaml:",inline"`
}

// Records 指定类型的记录
func (d *Document) Records(kind types.Kind) *[]Record {
	switch kind {
	case types.KindMaterial:
		return &d.Materials
	case types.KindComponent:
		return &d.Components
	case types.KindSubsystem:
		return &d.Subsystems
	case types.KindJunction:
		return &d.Junctions
	case types.KindCoupling:
		return &d.Couplings
	case types.KindExcitation:
		return &d.Excitations
	}
	return nil
}

// axis 生成频带轴
func (f Frequency) axis() (*types.Frequency, error) {
	if f.Octave > 0 {
		axis, err := types.Bands(f.Center, f.Octave)
		if err != nil {
			return nil, err
		}
		if f.Enabled != nil {
			axis.Enabled = f.Enabled
		}
		return axis, axis.Validate()
	}
	return types.NewFrequency(f.Center, f.Lower, f.Upper, f.Enabled)
}

// expand 替换属性中的 $名称 引用
func (d *Document) expand(value any) (any, error) {
	switch v := value.(type) {
	case string:
		name, ok := strings.CutPrefix(v, "$")
		if !ok {
			return v, nil
		}
		x, ok := d.Values[name]
		if !ok {
			return nil, fmt.Errorf("未定义的常量 '%s'", name)
		}
		return x, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			x, err := d.expand(item)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	}
	return value, nil
}

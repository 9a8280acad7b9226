package element

import "iter"

// Material 材料
type Material struct {
	*Base
}

// LinkedComponents 使用该材料的组件
func (m *Material) LinkedComponents() iter.Seq[*Component] {
	return filter[*Component](m.Linked("linked_components"))
}

// Density 密度 kg/m^3
func (m *Material) Density() ([]float64, error) { return m.Series("density") }

// LossFactor 损耗因子
func (m *Material) LossFactor() ([]float64, error) { return m.Series("loss_factor") }

// Bulk 体积模量 Pa
func (m *Material) Bulk() ([]float64, error) { return m.Series("bulk") }

// Package generic 以序列直接给定物理量的模型，用于测量数据或手工算例
package generic

import (
	"sea/element"
	"sea/types"
)

// SubsystemType 模态密度直接给定的子系统
var SubsystemType = &Subsystem{element.Config{Type: types.KindSubsystem, Model: "SubsystemGeneric", Extra: []string{"modal_density"}}}

// 模型注册
var (
	ComponentType = element.AddModel(element.ComponentConfig{
		Config: element.Config{Type: types.KindComponent, Model: "ComponentGeneric"},
		Slots:  []element.SubsystemModel{SubsystemType},
	})
	CouplingType   = element.AddModel(&Coupling{element.Config{Type: types.KindCoupling, Model: "CouplingGeneric", Extra: []string{"clf"}}})
	ExcitationType = element.AddModel(&Excitation{element.Config{Type: types.KindExcitation, Model: "ExcitationPower", Extra: []string{"power"}}})
)

// Subsystem 给定模态密度
type Subsystem struct{ element.Config }

// ModalDensity 读取 modal_density 序列
func (Subsystem) ModalDensity(s *element.Subsystem) ([]float64, error) {
	return s.Series("modal_density")
}

// Coupling 给定耦合损耗因子
type Coupling struct{ element.Config }

// CLF 读取 clf 序列
func (Coupling) CLF(c *element.Coupling) ([]float64, error) { return c.Series("clf") }

// Excitation 给定输入功率
type Excitation struct{ element.Config }

// Power 读取 power 序列
func (Excitation) Power(e *element.Excitation) ([]float64, error) { return e.Series("power") }

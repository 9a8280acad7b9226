package element

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"sea/types"
)

// Subsystem 子系统，组件内的一种波型
type Subsystem struct {
	*Base
}

// Component 所属组件
func (s *Subsystem) Component() *Component {
	c, _ := s.Link("component").(*Component)
	return c
}

// Material 所属组件的材料
func (s *Subsystem) Material() *Material {
	if c := s.Component(); c != nil {
		return c.Material()
	}
	return nil
}

// CouplingsFrom 以本子系统为源的耦合
func (s *Subsystem) CouplingsFrom() iter.Seq[*Coupling] {
	return filter[*Coupling](s.Linked("linked_couplings_from"))
}

// CouplingsTo 以本子系统为目标的耦合
func (s *Subsystem) CouplingsTo() iter.Seq[*Coupling] {
	return filter[*Coupling](s.Linked("linked_couplings_to"))
}

// Excitations 作用在本子系统上的激励
func (s *Subsystem) Excitations() iter.Seq[*Excitation] {
	return filter[*Excitation](s.Linked("linked_excitations"))
}

// ModalEnergy 模态能量
func (s *Subsystem) ModalEnergy() ([]float64, error) { return s.Series("modal_energy") }

// ModalDensity 模态密度
func (s *Subsystem) ModalDensity() ([]float64, error) {
	m, ok := s.model.(SubsystemModel)
	if !ok {
		return nil, fmt.Errorf("%w: %s 模态密度", types.ErrNotSupported, s.ModelName())
	}
	return m.ModalDensity(s)
}

// AverageFrequencySpacing 平均模态频率间隔 1/(2πn)
func (s *Subsystem) AverageFrequencySpacing() ([]float64, error) {
	n, err := s.ModalDensity()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(n))
	for i, v := range n {
		out[i] = 1 / (2 * math.Pi * v)
	}
	return out, nil
}

// DLF 阻尼损耗因子，子系统自身序列有非零值时整体取自身，否则取材料值
func (s *Subsystem) DLF() ([]float64, error) {
	own, err := s.Series("loss_factor")
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(own, func(v float64) bool { return v != 0 }) {
		return own, nil
	}
	m := s.Material()
	if m == nil {
		return own, nil
	}
	return m.LossFactor()
}

// TLF 总损耗因子，阻尼损耗加上全部 included 输出耦合的耦合损耗
func (s *Subsystem) TLF() ([]float64, error) {
	tlf, err := s.DLF()
	if err != nil {
		return nil, err
	}
	for c := range s.CouplingsFrom() {
		if !c.Included() {
			continue
		}
		clf, err := c.CLF()
		if err != nil {
			return nil, fmt.Errorf("耦合 %s: %w", c.Name(), err)
		}
		for i := range tlf {
			tlf[i] += clf[i]
		}
	}
	return tlf, nil
}

// PowerInput 全部链接激励的输入功率之和
func (s *Subsystem) PowerInput() ([]float64, error) {
	power := make([]float64, s.Frequency().Len())
	for e := range s.Excitations() {
		p, err := e.Power()
		if err != nil {
			return nil, fmt.Errorf("激励 %s: %w", e.Name(), err)
		}
		for i := range power {
			power[i] += p[i]
		}
	}
	return power, nil
}

// Energy 子系统能量 = 模态能量 × 模态密度
func (s *Subsystem) Energy() ([]float64, error) {
	e, err := s.ModalEnergy()
	if err != nil {
		return nil, err
	}
	n, err := s.ModalDensity()
	if err != nil {
		return nil, err
	}
	for i := range e {
		e[i] *= n[i]
	}
	return e, nil
}

// EnergyLevel 能量级 dB re 1e-12 J
func (s *Subsystem) EnergyLevel() ([]float64, error) {
	e, err := s.Energy()
	if err != nil {
		return nil, err
	}
	return Level(e, types.EnergyRef), nil
}

// ModalOverlap 模态重叠因子 ω·η·n
func (s *Subsystem) ModalOverlap() ([]float64, error) {
	tlf, err := s.TLF()
	if err != nil {
		return nil, err
	}
	n, err := s.ModalDensity()
	if err != nil {
		return nil, err
	}
	w := s.Frequency().Angular()
	for i := range tlf {
		tlf[i] *= w[i] * n[i]
	}
	return tlf, nil
}

// Level 10·log10(v/ref)
func Level(v []float64, ref float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = 10 * math.Log10(x/ref)
	}
	return out
}

package plate

import (
	"fmt"
	"math"

	"sea/element"
	"sea/element/material"
	"sea/types"
)

// 子系统模型
var (
	LongType  = &Long{element.Config{Type: types.KindSubsystem, Model: "SubsystemLong"}}
	BendType  = &Bend{element.Config{Type: types.KindSubsystem, Model: "SubsystemBend"}}
	ShearType = &Shear{element.Config{Type: types.KindSubsystem, Model: "SubsystemShear"}}
)

// ComponentType 二维薄板，面积 length×width，厚度 height
var ComponentType = element.AddModel(element.ComponentConfig{
	Config: element.Config{Type: types.KindComponent, Model: "Component2DPlate"},
	Slots:  []element.SubsystemModel{LongType, BendType, ShearType},
})

// Props 板的几何与材料参数
type Props struct {
	Area      []float64 // 面积
	Thickness []float64 // 厚度
	Density   []float64 // 密度
	Young     []float64 // 杨氏模量
	Shear     []float64 // 剪切模量
	Poisson   []float64 // 泊松比
	Omega     []float64 // 角频率
}

// Load 读取子系统所在板的参数
func Load(s *element.Subsystem) (*Props, error) {
	c := s.Component()
	if c == nil {
		return nil, fmt.Errorf("子系统 %s 未设置组件", s.Name())
	}
	m := c.Material()
	if err := material.Solid(m); err != nil {
		return nil, err
	}
	g, err := c.Values("length", "width", "height")
	if err != nil {
		return nil, err
	}
	rho, err := m.Density()
	if err != nil {
		return nil, err
	}
	young, shear, poisson, err := material.Moduli(m)
	if err != nil {
		return nil, err
	}
	p := &Props{Thickness: g[2], Density: rho, Young: young, Shear: shear, Poisson: poisson, Omega: s.Frequency().Angular()}
	p.Area = make([]float64, len(g[0]))
	for i := range p.Area {
		p.Area[i] = g[0][i] * g[1][i]
	}
	return p, nil
}

// Longitudinal 准纵波速度 sqrt(E/(ρ(1-ν²)))
func (p *Props) Longitudinal() []float64 {
	c := make([]float64, len(p.Young))
	for i := range c {
		c[i] = math.Sqrt(p.Young[i] / (p.Density[i] * (1 - p.Poisson[i]*p.Poisson[i])))
	}
	return c
}

// Bending 弯曲波相速度 sqrt(ω·κ·c_L)，κ = h/√12
func (p *Props) Bending() []float64 {
	cl := p.Longitudinal()
	c := make([]float64, len(cl))
	for i := range c {
		c[i] = math.Sqrt(p.Omega[i] * p.Kappa(i) * cl[i])
	}
	return c
}

// Kappa 截面回转半径
func (p *Props) Kappa(i int) float64 { return p.Thickness[i] / math.Sqrt(12) }

// Transverse 剪切波速度 sqrt(G/ρ)
func (p *Props) Transverse() []float64 {
	c := make([]float64, len(p.Shear))
	for i := range c {
		c[i] = math.Sqrt(p.Shear[i] / p.Density[i])
	}
	return c
}

// MassPerArea 面密度 ρh
func (p *Props) MassPerArea() []float64 {
	m := make([]float64, len(p.Density))
	for i := range m {
		m[i] = p.Density[i] * p.Thickness[i]
	}
	return m
}

// CriticalFrequency 与声速 c0 的吻合频率 c0²/(2π·κ·c_L)
func (p *Props) CriticalFrequency(c0 []float64) []float64 {
	cl := p.Longitudinal()
	fc := make([]float64, len(cl))
	for i := range fc {
		fc[i] = c0[i] * c0[i] / (2 * math.Pi * p.Kappa(i) * cl[i])
	}
	return fc
}

// spacingInPlane 面内波的平均频率间隔 c²/(ωA)
func (p *Props) spacingInPlane(c []float64) []float64 {
	df := make([]float64, len(c))
	for i := range df {
		df[i] = c[i] * c[i] / (p.Omega[i] * p.Area[i])
	}
	return df
}

// Long 纵波
type Long struct{ element.Config }

// PhaseVelocity 相速度
func (Long) PhaseVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	return p.Longitudinal(), nil
}

// GroupVelocity 群速度
func (l Long) GroupVelocity(s *element.Subsystem) ([]float64, error) { return l.PhaseVelocity(s) }

// ModalDensity 模态密度
func (Long) ModalDensity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	return element.DensityFromSpacing(p.spacingInPlane(p.Longitudinal())), nil
}

// Bend 弯曲波
type Bend struct{ element.Config }

// PhaseVelocity 相速度
func (Bend) PhaseVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	return p.Bending(), nil
}

// GroupVelocity 群速度
func (Bend) GroupVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	c := p.Bending()
	for i := range c {
		c[i] *= 2
	}
	return c, nil
}

// ModalDensity 模态密度，平均频率间隔 2κc_L/A 与频率无关
func (Bend) ModalDensity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	cl := p.Longitudinal()
	df := make([]float64, len(cl))
	for i := range df {
		df[i] = 2 * p.Kappa(i) * cl[i] / p.Area[i]
	}
	return element.DensityFromSpacing(df), nil
}

// ImpedancePointForce 无限板点力阻抗 8ρh·κ·c_L
func (Bend) ImpedancePointForce(s *element.Subsystem) ([]complex128, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	cl := p.Longitudinal()
	m := p.MassPerArea()
	z := make([]complex128, len(cl))
	for i := range z {
		z[i] = complex(8*m[i]*p.Kappa(i)*cl[i], 0)
	}
	return z, nil
}

// Shear 剪切波
type Shear struct{ element.Config }

// PhaseVelocity 相速度
func (Shear) PhaseVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	return p.Transverse(), nil
}

// GroupVelocity 群速度
func (sh Shear) GroupVelocity(s *element.Subsystem) ([]float64, error) { return sh.PhaseVelocity(s) }

// ModalDensity 模态密度
func (Shear) ModalDensity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	return element.DensityFromSpacing(p.spacingInPlane(p.Transverse())), nil
}

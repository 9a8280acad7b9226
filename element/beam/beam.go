package beam

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

// ComponentType 一维梁，矩形截面 width×height
var ComponentType = element.AddModel(element.ComponentConfig{
	Config: element.Config{Type: types.KindComponent, Model: "Component1DBeam"},
	Slots:  []element.SubsystemModel{LongType, BendType, ShearType},
})

// props 梁的几何与材料参数
type props struct {
	length  []float64 // 长度
	area    []float64 // 截面积
	height  []float64 // 截面高度
	density []float64 // 密度
	young   []float64 // 杨氏模量
	shear   []float64 // 剪切模量
	omega   []float64 // 角频率
}

func load(s *element.Subsystem) (*props, error) {
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
	young, shear, _, err := material.Moduli(m)
	if err != nil {
		return nil, err
	}
	p := &props{length: g[0], height: g[2], density: rho, young: young, shear: shear, omega: s.Frequency().Angular()}
	p.area = make([]float64, len(g[0]))
	for i := range p.area {
		p.area[i] = g[1][i] * g[2][i]
	}
	return p, nil
}

// longitudinal 纵波速度 sqrt(E/ρ)
func (p *props) longitudinal() []float64 {
	c := make([]float64, len(p.young))
	for i := range c {
		c[i] = math.Sqrt(p.young[i] / p.density[i])
	}
	return c
}

// spacing1D 一维波导的平均频率间隔 c/(2L)
func (p *props) spacing1D(c []float64) []float64 {
	df := make([]float64, len(c))
	for i := range df {
		df[i] = c[i] / (2 * p.length[i])
	}
	return df
}

// impedance 无限梁中点的点力阻抗 2ρSc·(1+j·imag)
func (p *props) impedance(c []float64, imag float64) []complex128 {
	z := make([]complex128, len(c))
	for i := range z {
		r := 2 * p.density[i] * p.area[i] * c[i]
		z[i] = complex(r, r*imag)
	}
	return z
}

// Long 纵波
type Long struct{ element.Config }

// PhaseVelocity 相速度
func (Long) PhaseVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	return p.longitudinal(), nil
}

// GroupVelocity 群速度，无色散
func (l Long) GroupVelocity(s *element.Subsystem) ([]float64, error) { return l.PhaseVelocity(s) }

// ModalDensity 模态密度
func (Long) ModalDensity(s *element.Subsystem) ([]float64, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	return element.DensityFromSpacing(p.spacing1D(p.longitudinal())), nil
}

// ImpedancePointForce 点力阻抗
func (Long) ImpedancePointForce(s *element.Subsystem) ([]complex128, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	return p.impedance(p.longitudinal(), 0), nil
}

// Bend 弯曲波
type Bend struct{ element.Config }

// bending 弯曲波相速度 sqrt(ω·κ·c_L)，κ = h/√12
func (p *props) bending() []float64 {
	cl := p.longitudinal()
	c := make([]float64, len(cl))
	for i := range c {
		kappa := p.height[i] / math.Sqrt(12)
		c[i] = math.Sqrt(p.omega[i] * kappa * cl[i])
	}
	return c
}

// PhaseVelocity 相速度
func (Bend) PhaseVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	return p.bending(), nil
}

// GroupVelocity 群速度，相速度的两倍
func (Bend) GroupVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	c := p.bending()
	for i := range c {
		c[i] *= 2
	}
	return c, nil
}

// ModalDensity 模态密度
func (b Bend) ModalDensity(s *element.Subsystem) ([]float64, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	cg, err := b.GroupVelocity(s)
	if err != nil {
		return nil, err
	}
	return element.DensityFromSpacing(p.spacing1D(cg)), nil
}

// ImpedancePointForce 点力阻抗
func (Bend) ImpedancePointForce(s *element.Subsystem) ([]complex128, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	return p.impedance(p.bending(), 1), nil
}

// Shear 剪切波
type Shear struct{ element.Config }

// transverse 剪切波速度 sqrt(G/ρ)
func (p *props) transverse() []float64 {
	c := make([]float64, len(p.shear))
	for i := range c {
		c[i] = math.Sqrt(p.shear[i] / p.density[i])
	}
	return c
}

// PhaseVelocity 相速度
func (Shear) PhaseVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	return p.transverse(), nil
}

// GroupVelocity 群速度，无色散
func (sh Shear) GroupVelocity(s *element.Subsystem) ([]float64, error) { return sh.PhaseVelocity(s) }

// ModalDensity 模态密度
func (Shear) ModalDensity(s *element.Subsystem) ([]float64, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	return element.DensityFromSpacing(p.spacing1D(p.transverse())), nil
}

// ImpedancePointForce 点力阻抗
func (Shear) ImpedancePointForce(s *element.Subsystem) ([]complex128, error) {
	p, err := load(s)
	if err != nil {
		return nil, err
	}
	return p.impedance(p.transverse(), 0), nil
}

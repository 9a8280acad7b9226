package cavity

import (
	"fmt"
	"math"

	"sea/element"
	"sea/element/material"
	"sea/types"
)

// LongType 声腔中的声波
var LongType = &Long{element.Config{Type: types.KindSubsystem, Model: "SubsystemLong"}}

// ComponentType 三维声腔，体积 length×width×height
var ComponentType = element.AddModel(element.ComponentConfig{
	Config: element.Config{Type: types.KindComponent, Model: "Component3DAcoustical"},
	Slots:  []element.SubsystemModel{LongType},
})

// Props 声腔参数
type Props struct {
	Volume  []float64 // 体积
	Density []float64 // 流体密度
	Speed   []float64 // 声速
	Omega   []float64 // 角频率
}

// Load 读取子系统所在声腔的参数
func Load(s *element.Subsystem) (*Props, error) {
	c := s.Component()
	if c == nil {
		return nil, fmt.Errorf("子系统 %s 未设置组件", s.Name())
	}
	m := c.Material()
	speed, err := material.SoundSpeed(m)
	if err != nil {
		return nil, err
	}
	rho, err := m.Density()
	if err != nil {
		return nil, err
	}
	g, err := c.Values("length", "width", "height")
	if err != nil {
		return nil, err
	}
	p := &Props{Density: rho, Speed: speed, Omega: s.Frequency().Angular()}
	p.Volume = make([]float64, len(g[0]))
	for i := range p.Volume {
		p.Volume[i] = g[0][i] * g[1][i] * g[2][i]
	}
	return p, nil
}

// Long 声波
type Long struct{ element.Config }

// PhaseVelocity 声速
func (Long) PhaseVelocity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	return p.Speed, nil
}

// GroupVelocity 声速
func (l Long) GroupVelocity(s *element.Subsystem) ([]float64, error) { return l.PhaseVelocity(s) }

// ModalDensity 模态密度，平均频率间隔 c³/(4πVf²)
func (Long) ModalDensity(s *element.Subsystem) ([]float64, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	df := make([]float64, len(p.Speed))
	for i := range df {
		f := p.Omega[i] / (2 * math.Pi)
		df[i] = math.Pow(p.Speed[i], 3) / (4 * math.Pi * p.Volume[i] * f * f)
	}
	return element.DensityFromSpacing(df), nil
}

// ImpedanceAcoustic 点声源辐射阻抗实部 ρω²/(4πc)
func (Long) ImpedanceAcoustic(s *element.Subsystem) ([]complex128, error) {
	p, err := Load(s)
	if err != nil {
		return nil, err
	}
	z := make([]complex128, len(p.Speed))
	for i := range z {
		z[i] = complex(p.Density[i]*p.Omega[i]*p.Omega[i]/(4*math.Pi*p.Speed[i]), 0)
	}
	return z, nil
}

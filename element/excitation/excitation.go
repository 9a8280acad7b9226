package excitation

import (
	"fmt"

	"sea/element"
	"sea/types"
)

// 激励模型
var (
	PointForceType  = element.AddModel(&PointForce{element.Config{Type: types.KindExcitation, Model: "ExcitationPointForce", Extra: []string{"force", "velocity"}}})
	PointVolumeType = element.AddModel(&PointVolume{element.Config{Type: types.KindExcitation, Model: "ExcitationPointVolume", Extra: []string{"volume_velocity", "pressure"}}})
)

// Power 由一对载荷计算功率，逐频带取非零的一项
// flow²·Re(Z) 或 effort²·Re(1/Z)
func Power(flow, effort []float64, z []complex128) []float64 {
	power := make([]float64, len(z))
	for i := range power {
		switch {
		case effort[i] != 0:
			power[i] = effort[i] * effort[i] * real(1/z[i])
		case flow[i] != 0:
			power[i] = flow[i] * flow[i] * real(z[i])
		}
	}
	return power
}

func subsystem(e *element.Excitation) (*element.Subsystem, error) {
	s := e.Subsystem()
	if s == nil {
		return nil, fmt.Errorf("激励 %s 未设置子系统", e.Name())
	}
	return s, nil
}

// PointForce 点力激励，force 与 velocity 二选一
type PointForce struct{ element.Config }

// Power 输入功率
func (PointForce) Power(e *element.Excitation) ([]float64, error) {
	s, err := subsystem(e)
	if err != nil {
		return nil, err
	}
	v, err := e.Values("velocity", "force")
	if err != nil {
		return nil, err
	}
	z, err := s.ImpedancePointForce()
	if err != nil {
		return nil, err
	}
	return Power(v[0], v[1], z), nil
}

// PointVolume 点声源激励，volume_velocity 与 pressure 二选一
type PointVolume struct{ element.Config }

// Power 输入功率
func (PointVolume) Power(e *element.Excitation) ([]float64, error) {
	s, err := subsystem(e)
	if err != nil {
		return nil, err
	}
	v, err := e.Values("volume_velocity", "pressure")
	if err != nil {
		return nil, err
	}
	z, err := s.ImpedanceAcoustic()
	if err != nil {
		return nil, err
	}
	return Power(v[0], v[1], z), nil
}

package element

import (
	"fmt"
	"math"

	"sea/types"
)

// WaveSpeed 子系统模型提供的波速
type WaveSpeed interface {
	PhaseVelocity(s *Subsystem) ([]float64, error)
	GroupVelocity(s *Subsystem) ([]float64, error)
}

// PointImpedance 子系统模型提供的点力阻抗
type PointImpedance interface {
	ImpedancePointForce(s *Subsystem) ([]complex128, error)
}

// AcousticImpedance 声腔模型提供的点声源辐射阻抗
type AcousticImpedance interface {
	ImpedanceAcoustic(s *Subsystem) ([]complex128, error)
}

// PhaseVelocity 相速度
func (s *Subsystem) PhaseVelocity() ([]float64, error) {
	if m, ok := s.model.(WaveSpeed); ok {
		return m.PhaseVelocity(s)
	}
	return nil, fmt.Errorf("%w: %s 相速度", types.ErrNotSupported, s.ModelName())
}

// GroupVelocity 群速度
func (s *Subsystem) GroupVelocity() ([]float64, error) {
	if m, ok := s.model.(WaveSpeed); ok {
		return m.GroupVelocity(s)
	}
	return nil, fmt.Errorf("%w: %s 群速度", types.ErrNotSupported, s.ModelName())
}

// Wavenumber 波数 ω/c
func (s *Subsystem) Wavenumber() ([]float64, error) {
	c, err := s.PhaseVelocity()
	if err != nil {
		return nil, err
	}
	w := s.Frequency().Angular()
	for i := range c {
		c[i] = w[i] / c[i]
	}
	return c, nil
}

// ImpedancePointForce 点力阻抗
func (s *Subsystem) ImpedancePointForce() ([]complex128, error) {
	if m, ok := s.model.(PointImpedance); ok {
		return m.ImpedancePointForce(s)
	}
	return nil, fmt.Errorf("%w: %s 点力阻抗", types.ErrNotSupported, s.ModelName())
}

// ImpedanceAcoustic 点声源辐射阻抗
func (s *Subsystem) ImpedanceAcoustic() ([]complex128, error) {
	if m, ok := s.model.(AcousticImpedance); ok {
		return m.ImpedanceAcoustic(s)
	}
	return nil, fmt.Errorf("%w: %s 声辐射阻抗", types.ErrNotSupported, s.ModelName())
}

// Values 一次读取多个序列
func (b *Base) Values(names ...string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, name := range names {
		v, err := b.Series(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// DensityFromSpacing 由平均频率间隔求模态密度 n = 1/(2π·δf)
func DensityFromSpacing(spacing []float64) []float64 {
	n := make([]float64, len(spacing))
	for i, df := range spacing {
		n[i] = 1 / (2 * math.Pi * df)
	}
	return n
}

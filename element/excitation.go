package element

import (
	"fmt"

	"sea/types"
)

// Excitation 激励
type Excitation struct {
	*Base
}

// Subsystem 受激励的子系统
func (e *Excitation) Subsystem() *Subsystem {
	s, _ := e.Link("subsystem").(*Subsystem)
	return s
}

// Power 输入功率
func (e *Excitation) Power() ([]float64, error) {
	m, ok := e.model.(ExcitationModel)
	if !ok {
		return nil, fmt.Errorf("%w: %s 输入功率", types.ErrNotSupported, e.ModelName())
	}
	return m.Power(e)
}

// PowerLevel 功率级 dB re 1e-12 W
func (e *Excitation) PowerLevel() ([]float64, error) {
	p, err := e.Power()
	if err != nil {
		return nil, err
	}
	return Level(p, types.PowerRef), nil
}

package element

import (
	"fmt"
	"math"

	"sea/types"
)

// Coupling 有向耦合 subsystem_from → subsystem_to
type Coupling struct {
	*Base
}

// Junction 所在连接
func (c *Coupling) Junction() *Junction {
	j, _ := c.Link("junction").(*Junction)
	return j
}

// SubsystemFrom 源子系统
func (c *Coupling) SubsystemFrom() *Subsystem {
	s, _ := c.Link("subsystem_from").(*Subsystem)
	return s
}

// SubsystemTo 目标子系统
func (c *Coupling) SubsystemTo() *Subsystem {
	s, _ := c.Link("subsystem_to").(*Subsystem)
	return s
}

// CLF 耦合损耗因子
func (c *Coupling) CLF() ([]float64, error) {
	m, ok := c.model.(CouplingModel)
	if !ok {
		return nil, fmt.Errorf("%w: %s 耦合损耗因子", types.ErrNotSupported, c.ModelName())
	}
	return m.CLF(c)
}

// CLFLevel 耦合损耗因子级 dB re 1e-12
func (c *Coupling) CLFLevel() ([]float64, error) {
	clf, err := c.CLF()
	if err != nil {
		return nil, err
	}
	return Level(clf, types.CLFRef), nil
}

// Reciprocal 同一连接中方向相反的耦合
func (c *Coupling) Reciprocal() *Coupling {
	j := c.Junction()
	if j == nil {
		return nil
	}
	return j.Coupling(c.LinkName("subsystem_to"), c.LinkName("subsystem_from"))
}

// Power 传递功率 ω·η·E_from
func (c *Coupling) Power() ([]float64, error) {
	from := c.SubsystemFrom()
	if from == nil {
		return nil, fmt.Errorf("耦合 %s 未设置 subsystem_from", c.Name())
	}
	clf, err := c.CLF()
	if err != nil {
		return nil, err
	}
	energy, err := from.Energy()
	if err != nil {
		return nil, err
	}
	w := c.Frequency().Angular()
	for i := range clf {
		clf[i] *= w[i] * energy[i]
	}
	return clf, nil
}

// PowerNet 净传递功率，扣除反向耦合的功率
func (c *Coupling) PowerNet() ([]float64, error) {
	power, err := c.Power()
	if err != nil {
		return nil, err
	}
	if r := c.Reciprocal(); r != nil {
		back, err := r.Power()
		if err != nil {
			return nil, err
		}
		for i := range power {
			power[i] -= back[i]
		}
	}
	return power, nil
}

// Consistency 互易关系 η_ji = η_ij·n_i/n_j
func Consistency(clf, nFrom, nTo []float64) []float64 {
	out := make([]float64, len(clf))
	for i := range clf {
		if nTo[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = clf[i] * nFrom[i] / nTo[i]
	}
	return out
}

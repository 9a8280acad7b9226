package system

import (
	"context"
	"fmt"

	"sea/balance"
	"sea/element"
	"sea/types"
)

// Clean 全部子系统模态能量置零，状态回到未求解
func (s *System) Clean() {
	for sub := range s.Subsystems() {
		sub.ZeroSeries("modal_energy")
	}
	s.state = types.StateUnsolved
	s.result = nil
}

// IncludedSubsystems 参与求解的子系统，按创建顺序
func (s *System) IncludedSubsystems() []*element.Subsystem {
	var subsystems []*element.Subsystem
	for sub := range s.Subsystems() {
		if sub.Included() {
			subsystems = append(subsystems, sub)
		}
	}
	return subsystems
}

// Solve 求解功率平衡，总是先 Clean
// 任一频带失败时不写回结果，状态保持未求解
func (s *System) Solve(ctx context.Context) (*balance.Result, error) {
	s.Clean()
	s.state = types.StateSolving
	subsystems := s.IncludedSubsystems()
	nodes, err := balance.Nodes(subsystems)
	if err != nil {
		s.state = types.StateUnsolved
		return nil, err
	}
	res, err := s.solver.Solve(ctx, s.frequency, nodes)
	if err != nil {
		s.state = types.StateUnsolved
		return nil, err
	}
	for i, sub := range subsystems {
		for _, f := range res.Bands {
			if err := sub.SetSeriesAt("modal_energy", f, res.Energy[i][f]); err != nil {
				s.Clean()
				return nil, fmt.Errorf("写回子系统 %s: %w", sub.Name(), err)
			}
		}
	}
	s.state = types.StateSolved
	s.result = res
	return res, nil
}

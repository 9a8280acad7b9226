package balance

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sea/types"
)

// Solver 逐频带求解功率平衡方程
type Solver struct {
	Parallel       bool         // 频带并行
	Workers        int          // 并行数，0 为 CPU 数
	ConditionLimit float64      // 条件数上限，0 为 types.ConditionLimit
	Logger         *slog.Logger // 日志
}

// Result 求解结果
type Result struct {
	ID      uuid.UUID     // 求解编号
	Names   []string      // 子系统名称，与 Energy 行对应
	Bands   []int         // 已求解的频带
	Energy  [][]float64   // 模态能量 [子系统][频带]
	Elapsed time.Duration // 耗时
}

// Solve 对 freq 中启用的频带求解，任一频带失败则整体失败
func (s *Solver) Solve(ctx context.Context, freq *types.Frequency, nodes []Node) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := s.ConditionLimit
	if limit <= 0 {
		limit = types.ConditionLimit
	}
	start := time.Now()
	res := &Result{
		ID:     uuid.New(),
		Names:  make([]string, len(nodes)),
		Bands:  freq.EnabledBands(),
		Energy: make([][]float64, len(nodes)),
	}
	for i, n := range nodes {
		res.Names[i] = n.Name
		res.Energy[i] = make([]float64, freq.Len())
	}
	logger = logger.With("run", res.ID.String())
	logger.Info("开始求解", "subsystems", len(nodes), "bands", len(res.Bands), "parallel", s.Parallel)
	if len(nodes) == 0 {
		res.Elapsed = time.Since(start)
		return res, nil
	}
	omega := freq.Angular()
	band := func(m *Matrix, f int) error {
		Assemble(m, f, omega[f], nodes)
		cond, err := m.Solve(limit)
		if err != nil {
			logger.Debug("频带求解失败", "band", f, "center", freq.Center[f], "cond", cond, "error", err)
			return &types.SingularSystemError{Band: f, Frequency: freq.Center[f], Cond: cond}
		}
		for i := range nodes {
			res.Energy[i][f] = m.E.AtVec(i)
		}
		logger.Debug("频带求解完成", "band", f, "center", freq.Center[f], "cond", cond)
		return nil
	}
	if s.Parallel {
		workers := s.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for _, f := range res.Bands {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return band(NewMatrix(len(nodes)), f)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		m := NewMatrix(len(nodes))
		for _, f := range res.Bands {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("求解已取消: %w", err)
			}
			if err := band(m, f); err != nil {
				return nil, err
			}
		}
	}
	res.Elapsed = time.Since(start)
	logger.Info("求解完成", "elapsed", res.Elapsed)
	return res, nil
}

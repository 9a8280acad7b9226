package system

import (
	"fmt"
	"log/slog"

	"sea/balance"
	"sea/element"
	"sea/types"
)

// System SEA 模型，唯一持有全部实体
type System struct {
	frequency *types.Frequency          // 频带轴
	objects   []element.Object          // 实体，按创建顺序
	index     map[string]element.Object // 名称索引
	state     types.State               // 求解状态
	warnings  []error                   // 重名警告
	logger    *slog.Logger              // 日志
	solver    balance.Solver            // 求解器设置
	result    *balance.Result           // 最近一次求解结果
}

// Option 创建选项
type Option func(*System)

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) { s.logger = logger }
}

// WithSolver 设置求解器
func WithSolver(solver balance.Solver) Option {
	return func(s *System) { s.solver = solver }
}

// WithFrequency 设置频带轴，nil 为空轴
func WithFrequency(f *types.Frequency) Option {
	return func(s *System) {
		if f == nil {
			s.frequency = &types.Frequency{}
			return
		}
		s.frequency = f.Clone()
	}
}

// New 创建空系统
func New(opts ...Option) *System {
	s := &System{
		frequency: &types.Frequency{},
		index:     map[string]element.Object{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.solver.Logger == nil {
		s.solver.Logger = s.logger
	}
	return s
}

// Lookup 按名称查找实体
func (s *System) Lookup(name string) (element.Object, bool) {
	obj, ok := s.index[name]
	return obj, ok
}

// Frequency 频带轴
func (s *System) Frequency() *types.Frequency { return s.frequency }

// SetFrequency 替换频带轴，已有序列长度不符时在读取时报错
func (s *System) SetFrequency(f *types.Frequency) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.frequency = f.Clone()
	return nil
}

// State 求解状态
func (s *System) State() types.State { return s.state }

// MarkSolved 标记为已求解，用于加载已保存的结果
func (s *System) MarkSolved() { s.state = types.StateSolved }

// Warnings 重名警告
func (s *System) Warnings() []error { return s.warnings }

// Logger 日志
func (s *System) Logger() *slog.Logger { return s.logger }

// Result 最近一次求解结果
func (s *System) Result() *balance.Result { return s.result }

// Len 实体数量
func (s *System) Len() int { return len(s.objects) }

// String 概要
func (s *System) String() string {
	return fmt.Sprintf("System(objects=%d, bands=%d, state=%s)", len(s.objects), s.frequency.Len(), s.state)
}

package sea

import (
	"sea/load"
	"sea/system"
	"sea/types"

	_ "sea/element/beam"
	_ "sea/element/cavity"
	_ "sea/element/coupling"
	_ "sea/element/excitation"
	_ "sea/element/generic"
	_ "sea/element/material"
	_ "sea/element/plate"
)

// Model SEA 模型，注册全部内置模型
type Model struct {
	*system.System
}

// NewModel 创建空模型
func NewModel(f *types.Frequency, opts ...system.Option) *Model {
	return &Model{System: system.New(append([]system.Option{system.WithFrequency(f)}, opts...)...)}
}

// Open 加载模型文件
func Open(path string, opts ...system.Option) (*Model, error) {
	s, err := load.LoadFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return &Model{System: s}, nil
}

// Save 保存模型文件
func (m *Model) Save(path string) error {
	return load.SaveFile(path, m.System)
}

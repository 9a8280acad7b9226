package element

import (
	"fmt"
	"iter"
	"slices"

	"sea/types"
)

// Host 实体所属系统，只保存名称索引，不持有实体生命周期以外的状态
type Host interface {
	Lookup(name string) (Object, bool) // 按名称查找实体
	Frequency() *types.Frequency       // 频带轴
}

// Object 实体接口
type Object interface {
	Entity() *Base     // 公共数据
	Name() string      // 名称
	Kind() types.Kind  // 实体类型
	Included() bool    // 是否参与求解
	ModelName() string // 模型名称
}

// Model 模型接口，每种实体模型提供字段声明
type Model interface {
	Kind() types.Kind // 实体类型
	Name() string     // 模型名称
	Fields() []Field  // 附加字段
}

// ComponentModel 组件模型，声明自动创建的子系统
type ComponentModel interface {
	Model
	Subsystems() []SubsystemModel
}

// SubsystemModel 子系统模型
type SubsystemModel interface {
	Model
	ModalDensity(s *Subsystem) ([]float64, error)
}

// CouplingModel 耦合模型
type CouplingModel interface {
	Model
	CLF(c *Coupling) ([]float64, error)
}

// ExcitationModel 激励模型
type ExcitationModel interface {
	Model
	Power(e *Excitation) ([]float64, error)
}

// modelList 模型注册表
var modelList = map[types.Kind]map[string]Model{}

// AddModel 注册模型，重复注册会触发 panic
func AddModel[T Model](model T) T {
	kind := model.Kind()
	if kind == types.KindSubsystem {
		panic(fmt.Errorf("子系统模型由组件模型声明，不能单独注册: %s", model.Name()))
	}
	list, ok := modelList[kind]
	if !ok {
		list = map[string]Model{}
		modelList[kind] = list
	}
	if _, ok := list[model.Name()]; ok {
		panic(fmt.Errorf("模型重复注册: %s %s", kind, model.Name()))
	}
	list[model.Name()] = model
	return model
}

// GetModel 按名称查找模型
func GetModel(kind types.Kind, name string) (Model, error) {
	if model, ok := modelList[kind][name]; ok {
		return model, nil
	}
	return nil, fmt.Errorf("%w: %s '%s'", types.ErrUnknownModel, kind, name)
}

// ModelNames 已注册的模型名称
func ModelNames(kind types.Kind) []string {
	names := make([]string, 0, len(modelList[kind]))
	for name := range modelList[kind] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// filter 按类型过滤实体序列
func filter[T Object](seq iter.Seq[Object]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for obj := range seq {
			if t, ok := obj.(T); ok {
				if !yield(t) {
					return
				}
			}
		}
	}
}

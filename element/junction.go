package element

import (
	"iter"

	"sea/types"
)

// JunctionModel 连接模型
var JunctionModel = AddModel(Config{Type: types.KindJunction, Model: "Junction"})

// Junction 连接，多个组件在此相接
type Junction struct {
	*Base
}

// Shape 连接形状
func (j *Junction) Shape() types.Shape { return types.Shape(j.Enum("shape")) }

// Components 相接的组件
func (j *Junction) Components() iter.Seq[*Component] {
	return filter[*Component](j.Linked("components"))
}

// AddComponent 追加组件
func (j *Junction) AddComponent(component any) error { return j.AddToSet("components", component) }

// LinkedCouplings 连接上的耦合
func (j *Junction) LinkedCouplings() iter.Seq[*Coupling] {
	return filter[*Coupling](j.Linked("linked_couplings"))
}

// Subsystems 相接组件的全部子系统
func (j *Junction) Subsystems() iter.Seq[*Subsystem] {
	return func(yield func(*Subsystem) bool) {
		for c := range j.Components() {
			for s := range c.LinkedSubsystems() {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Coupling 查找指定方向的耦合
func (j *Junction) Coupling(from, to string) *Coupling {
	for c := range j.LinkedCouplings() {
		if c.LinkName("subsystem_from") == from && c.LinkName("subsystem_to") == to {
			return c
		}
	}
	return nil
}

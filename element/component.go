package element

import "iter"

// Component 组件，构造后由系统按模型自动创建子系统
type Component struct {
	*Base
}

// Material 材料
func (c *Component) Material() *Material {
	m, _ := c.Link("material").(*Material)
	return m
}

// LinkedSubsystems 所属子系统
func (c *Component) LinkedSubsystems() iter.Seq[*Subsystem] {
	return filter[*Subsystem](c.Linked("linked_subsystems"))
}

// LinkedJunctions 所在连接
func (c *Component) LinkedJunctions() iter.Seq[*Junction] {
	return filter[*Junction](c.Linked("linked_junctions"))
}

// SubsystemModels 模型声明的子系统
func (c *Component) SubsystemModels() []SubsystemModel {
	if m, ok := c.model.(ComponentModel); ok {
		return m.Subsystems()
	}
	return nil
}

// Subsystem 按子系统模型名称查找
func (c *Component) Subsystem(model string) *Subsystem {
	for s := range c.LinkedSubsystems() {
		if s.ModelName() == model {
			return s
		}
	}
	return nil
}

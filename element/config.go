package element

import (
	"fmt"

	"sea/types"
)

// Config 模型声明，嵌入到具体模型中
type Config struct {
	Type  types.Kind // 实体类型
	Model string     // 模型名称
	Extra []string   // 附加序列字段
}

// Kind 实体类型
func (c Config) Kind() types.Kind { return c.Type }

// Name 模型名称
func (c Config) Name() string { return c.Model }

// Fields 附加字段
func (c Config) Fields() []Field { return Series(c.Extra...) }

// CouplingRule 连接处自动耦合规则的键
type CouplingRule struct {
	Shape types.Shape // 连接形状
	From  string      // 源子系统标识
	To    string      // 目标子系统标识
}

// couplingRules 自动耦合规则表
var couplingRules = map[CouplingRule]string{}

// AddCouplingRule 注册自动耦合规则
// from/to 为 SubsystemKey 形式 "组件模型.子系统模型"
func AddCouplingRule(shape types.Shape, from, to, model string) {
	rule := CouplingRule{Shape: shape, From: from, To: to}
	if old, ok := couplingRules[rule]; ok {
		panic(fmt.Errorf("耦合规则重复注册: %v 已对应 %s", rule, old))
	}
	couplingRules[rule] = model
}

// CouplingOption 查找两个子系统在指定形状连接处的耦合模型
func CouplingOption(shape types.Shape, from, to *Subsystem) (string, bool) {
	model, ok := couplingRules[CouplingRule{Shape: shape, From: SubsystemKey(from), To: SubsystemKey(to)}]
	return model, ok
}

// SubsystemKey 子系统标识
func SubsystemKey(s *Subsystem) string {
	component := s.Component()
	if component == nil {
		return "." + s.ModelName()
	}
	return component.ModelName() + "." + s.ModelName()
}

// ComponentConfig 组件模型声明
type ComponentConfig struct {
	Config
	Slots []SubsystemModel // 自动创建的子系统
}

// Subsystems 自动创建的子系统模型
func (c ComponentConfig) Subsystems() []SubsystemModel { return c.Slots }

package types

import (
	"fmt"
	"strings"
)

// Kind 实体类型
type Kind uint8

// 实体类型常量定义
const (
	KindUnknown    Kind = iota // 未知类型
	KindMaterial               // 材料
	KindComponent              // 组件
	KindSubsystem              // 子系统
	KindJunction               // 连接
	KindCoupling               // 耦合
	KindExcitation             // 激励
)

// kindString 类型映射
var kindString = map[Kind]struct {
	Name   string // 类型名称
	Plural string // 文档键名
}{
	KindUnknown:    {Name: "Unknown", Plural: "unknown"},
	KindMaterial:   {Name: "Material", Plural: "materials"},
	KindComponent:  {Name: "Component", Plural: "components"},
	KindSubsystem:  {Name: "Subsystem", Plural: "subsystems"},
	KindJunction:   {Name: "Junction", Plural: "junctions"},
	KindCoupling:   {Name: "Coupling", Plural: "couplings"},
	KindExcitation: {Name: "Excitation", Plural: "excitations"},
}

// Kinds 按加载顺序排列的实体类型
var Kinds = []Kind{KindMaterial, KindComponent, KindSubsystem, KindJunction, KindCoupling, KindExcitation}

// String 返回类型名称
func (k Kind) String() string {
	if kt, ok := kindString[k]; ok {
		return kt.Name
	}
	return "Unknown"
}

// Plural 文档中的键名
func (k Kind) Plural() string {
	if kt, ok := kindString[k]; ok {
		return kt.Plural
	}
	return "unknown"
}

// Shape 连接形状
type Shape string

// 连接形状常量定义
const (
	ShapePoint   Shape = "Point"   // 点连接
	ShapeLine    Shape = "Line"    // 线连接
	ShapeSurface Shape = "Surface" // 面连接
)

// ParseShape 解析连接形状
func ParseShape(s string) (Shape, error) {
	for _, shape := range []Shape{ShapePoint, ShapeLine, ShapeSurface} {
		if strings.EqualFold(s, string(shape)) {
			return shape, nil
		}
	}
	return "", fmt.Errorf("未知的连接形状 '%s'", s)
}

// State 求解状态
type State uint8

// 求解状态常量定义
const (
	StateUnsolved State = iota // 未求解
	StateSolving               // 求解中
	StateSolved                // 已求解
)

// String 状态名称
func (s State) String() string {
	switch s {
	case StateSolving:
		return "solving"
	case StateSolved:
		return "solved"
	default:
		return "unsolved"
	}
}

package element

import "sea/types"

// FieldType 字段类型
type FieldType uint8

// 字段类型常量定义
const (
	FieldSeries  FieldType = iota // 频带序列
	FieldLink                     // 指向父对象的链接
	FieldLinkSet                  // 多对多链接
	FieldReverse                  // 反向集合，只读
	FieldEnum                     // 枚举值
)

// Field 字段声明
type Field struct {
	Name    string     // 属性名
	Type    FieldType  // 字段类型
	Target  types.Kind // 链接目标类型
	Reverse string     // 目标上的反向集合名
	Values  []string   // 枚举可选值
}

// Series 序列字段
func Series(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Type: FieldSeries}
	}
	return fields
}

// Link 链接字段
func Link(name string, target types.Kind, reverse string) Field {
	return Field{Name: name, Type: FieldLink, Target: target, Reverse: reverse}
}

// Reverse 反向集合字段
func Reverse(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Type: FieldReverse}
	}
	return fields
}

// 各类实体的公共字段
var kindFields = map[types.Kind][]Field{
	types.KindMaterial: join(
		Series("density", "temperature", "pressure", "bulk", "loss_factor"),
		Reverse("linked_components"),
	),
	types.KindComponent: join(
		[]Field{Link("material", types.KindMaterial, "linked_components")},
		Series("length", "width", "height"),
		Reverse("linked_subsystems", "linked_junctions"),
	),
	types.KindSubsystem: join(
		[]Field{Link("component", types.KindComponent, "linked_subsystems")},
		Series("modal_energy", "loss_factor"),
		Reverse("linked_couplings_from", "linked_couplings_to", "linked_excitations"),
	),
	types.KindJunction: join(
		[]Field{
			{Name: "shape", Type: FieldEnum, Values: []string{string(types.ShapePoint), string(types.ShapeLine), string(types.ShapeSurface)}},
			{Name: "components", Type: FieldLinkSet, Target: types.KindComponent, Reverse: "linked_junctions"},
		},
		Reverse("linked_couplings"),
	),
	types.KindCoupling: {
		Link("junction", types.KindJunction, "linked_couplings"),
		Link("subsystem_from", types.KindSubsystem, "linked_couplings_from"),
		Link("subsystem_to", types.KindSubsystem, "linked_couplings_to"),
	},
	types.KindExcitation: {
		Link("subsystem", types.KindSubsystem, "linked_excitations"),
	},
}

// 依赖字段，全部 included 时实体才 included
var kindDependencies = map[types.Kind][]string{
	types.KindComponent:  {"material"},
	types.KindSubsystem:  {"component"},
	types.KindCoupling:   {"subsystem_from", "subsystem_to"},
	types.KindExcitation: {"subsystem"},
}

// 级联字段，启用/禁用与删除沿这些反向集合传播
var kindDependents = map[types.Kind][]string{
	types.KindMaterial:  {"linked_components"},
	types.KindComponent: {"linked_subsystems"},
	types.KindSubsystem: {"linked_couplings_from", "linked_couplings_to", "linked_excitations"},
	types.KindJunction:  {"linked_couplings"},
}

// Dependencies 实体类型的依赖字段
func Dependencies(kind types.Kind) []string { return kindDependencies[kind] }

func join(groups ...[]Field) (fields []Field) {
	for _, g := range groups {
		fields = append(fields, g...)
	}
	return fields
}

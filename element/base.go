package element

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"sea/types"
)

// Properties 构造属性，键为属性名
type Properties map[string]any

// Base 实体公共数据
type Base struct {
	name    string               // 名称
	kind    types.Kind           // 实体类型
	model   Model                // 模型
	host    Host                 // 所属系统
	enabled bool                 // 是否启用
	fields  map[string]Field     // 字段表
	order   []string             // 字段声明顺序
	links   map[string]string    // 链接目标名称
	sets    map[string][]string  // 多对多链接目标名称
	reverse map[string][]string  // 反向集合
	series  map[string][]float64 // 频带序列
	enums   map[string]string    // 枚举值
}

// New 创建实体，初始化字段后按键名顺序应用属性
// 名称唯一性由调用方保证
func New(host Host, name string, model Model, props Properties) (Object, error) {
	b := &Base{
		name:    name,
		kind:    model.Kind(),
		model:   model,
		host:    host,
		enabled: true,
		fields:  map[string]Field{},
		links:   map[string]string{},
		sets:    map[string][]string{},
		reverse: map[string][]string{},
		series:  map[string][]float64{},
		enums:   map[string]string{},
	}
	n := host.Frequency().Len()
	for _, f := range join(kindFields[b.kind], model.Fields()) {
		if _, ok := b.fields[f.Name]; ok {
			continue
		}
		b.fields[f.Name] = f
		b.order = append(b.order, f.Name)
		switch f.Type {
		case FieldSeries:
			b.series[f.Name] = make([]float64, n)
		case FieldReverse:
			b.reverse[f.Name] = nil
		case FieldEnum:
			b.enums[f.Name] = f.Values[0]
		}
	}
	obj := wrap(b)
	for _, key := range slices.Sorted(maps.Keys(props)) {
		if err := b.Set(key, props[key]); err != nil {
			b.Detach()
			return nil, &types.InvalidPropertyError{Key: key, Value: props[key], Type: model.Name(), Err: err}
		}
	}
	return obj, nil
}

// wrap 按实体类型包装
func wrap(b *Base) Object {
	switch b.kind {
	case types.KindMaterial:
		return &Material{b}
	case types.KindComponent:
		return &Component{b}
	case types.KindSubsystem:
		return &Subsystem{b}
	case types.KindJunction:
		return &Junction{b}
	case types.KindCoupling:
		return &Coupling{b}
	case types.KindExcitation:
		return &Excitation{b}
	}
	return b
}

// Entity 公共数据
func (b *Base) Entity() *Base { return b }

// Name 名称
func (b *Base) Name() string { return b.name }

// Kind 实体类型
func (b *Base) Kind() types.Kind { return b.kind }

// Model 模型
func (b *Base) Model() Model { return b.model }

// ModelName 模型名称
func (b *Base) ModelName() string { return b.model.Name() }

// Host 所属系统
func (b *Base) Host() Host { return b.host }

// Frequency 所属系统的频带轴
func (b *Base) Frequency() *types.Frequency { return b.host.Frequency() }

// Enabled 是否启用
func (b *Base) Enabled() bool { return b.enabled }

// Included 启用且全部依赖均 included，每次调用重新计算
func (b *Base) Included() bool {
	if !b.enabled {
		return false
	}
	for _, dep := range kindDependencies[b.kind] {
		obj := b.Link(dep)
		if obj == nil || !obj.Included() {
			return false
		}
	}
	return true
}

// Enable 启用，cascade 为真时同时启用下游实体
func (b *Base) Enable(cascade bool) { b.setEnabled(true, cascade) }

// Disable 禁用，cascade 为真时同时禁用下游实体
func (b *Base) Disable(cascade bool) { b.setEnabled(false, cascade) }

func (b *Base) setEnabled(enabled, cascade bool) {
	b.enabled = enabled
	if !cascade {
		return
	}
	for obj := range b.Dependents() {
		obj.Entity().setEnabled(enabled, cascade)
	}
}

// Dependents 依赖本实体的下游实体，删除与级联启用时使用
func (b *Base) Dependents() iter.Seq[Object] {
	return func(yield func(Object) bool) {
		for _, name := range kindDependents[b.kind] {
			for obj := range b.Linked(name) {
				if !yield(obj) {
					return
				}
			}
		}
	}
}

// Fields 字段声明，按声明顺序
func (b *Base) Fields() []Field {
	fields := make([]Field, len(b.order))
	for i, name := range b.order {
		fields[i] = b.fields[name]
	}
	return fields
}

// Field 查找字段
func (b *Base) Field(name string) (Field, bool) {
	f, ok := b.fields[name]
	return f, ok
}

// Set 设置属性
func (b *Base) Set(key string, value any) error {
	switch key {
	case "name":
		return fmt.Errorf("%w: %s", types.ErrImmutableName, b.name)
	case "model":
		return fmt.Errorf("%w: model", types.ErrImmutableAttribute)
	case "enabled":
		enabled, ok := value.(bool)
		if !ok {
			return fmt.Errorf("enabled 需要布尔值，得到 %T", value)
		}
		b.enabled = enabled
		return nil
	}
	f, ok := b.fields[key]
	if !ok {
		return fmt.Errorf("%w: %s 没有属性 '%s'", types.ErrInvalidProperty, b.model.Name(), key)
	}
	switch f.Type {
	case FieldReverse:
		return fmt.Errorf("%w: %s", types.ErrImmutableAttribute, key)
	case FieldLink:
		return b.SetLink(key, value)
	case FieldLinkSet:
		return b.SetLinkSet(key, value)
	case FieldSeries:
		return b.SetSeries(key, value)
	case FieldEnum:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s 需要字符串，得到 %T", key, value)
		}
		if !slices.Contains(f.Values, s) {
			return fmt.Errorf("%s 的值 '%s' 不在 %v 中", key, s, f.Values)
		}
		b.enums[key] = s
		return nil
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidProperty, key)
}

// Enum 枚举值
func (b *Base) Enum(name string) string { return b.enums[name] }

// Properties 导出可设置的属性，链接导出为名称
func (b *Base) Properties() Properties {
	props := Properties{}
	for _, name := range b.order {
		switch b.fields[name].Type {
		case FieldSeries:
			props[name] = slices.Clone(b.series[name])
		case FieldLink:
			if obj := b.Link(name); obj != nil {
				props[name] = obj.Name()
			}
		case FieldLinkSet:
			var names []string
			for obj := range b.Linked(name) {
				names = append(names, obj.Name())
			}
			props[name] = names
		case FieldEnum:
			props[name] = b.enums[name]
		}
	}
	return props
}

// Detach 解除本实体与其他实体之间的全部引用
// 下游实体应在此之前由调用方删除
func (b *Base) Detach() {
	for _, name := range b.order {
		f := b.fields[name]
		switch f.Type {
		case FieldLink:
			if obj := b.Link(name); obj != nil {
				obj.Entity().removeReverse(f.Reverse, b.name)
			}
			delete(b.links, name)
		case FieldLinkSet:
			for obj := range b.Linked(name) {
				obj.Entity().removeReverse(f.Reverse, b.name)
			}
			delete(b.sets, name)
		case FieldReverse:
			for obj := range b.Linked(name) {
				obj.Entity().dropReference(b.name)
			}
			b.reverse[name] = nil
		}
	}
}

// dropReference 删除指向 target 的链接
func (b *Base) dropReference(target string) {
	for name, t := range b.links {
		if t == target {
			delete(b.links, name)
		}
	}
	for name, set := range b.sets {
		b.sets[name] = slices.DeleteFunc(set, func(s string) bool { return s == target })
	}
}

// String 调试输出
func (b *Base) String() string {
	return fmt.Sprintf("%s(%s, %s)", b.kind, b.model.Name(), b.name)
}

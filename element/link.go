package element

import (
	"fmt"
	"iter"
	"slices"

	"sea/types"
)

// Link 读取链接，目标已删除时清除记录并返回 nil
func (b *Base) Link(name string) Object {
	target, ok := b.links[name]
	if !ok {
		return nil
	}
	obj, ok := b.host.Lookup(target)
	if !ok {
		delete(b.links, name)
		return nil
	}
	return obj
}

// LinkName 链接目标名称，未设置时为空
func (b *Base) LinkName(name string) string {
	if obj := b.Link(name); obj != nil {
		return obj.Name()
	}
	return ""
}

// SetLink 设置链接，target 可以是名称、实体或 nil
// 先从旧目标的反向集合中移除，再加入新目标的反向集合
func (b *Base) SetLink(name string, target any) error {
	f, ok := b.fields[name]
	if !ok || f.Type != FieldLink {
		return fmt.Errorf("%w: %s 没有链接 '%s'", types.ErrInvalidProperty, b.model.Name(), name)
	}
	obj, err := b.resolve(f, target)
	if err != nil {
		return err
	}
	if old := b.Link(name); old != nil {
		old.Entity().removeReverse(f.Reverse, b.name)
	}
	if obj == nil {
		delete(b.links, name)
		return nil
	}
	b.links[name] = obj.Name()
	obj.Entity().addReverse(f.Reverse, b.name)
	return nil
}

// DeleteLink 删除链接
func (b *Base) DeleteLink(name string) error { return b.SetLink(name, nil) }

// SetLinkSet 替换多对多链接
func (b *Base) SetLinkSet(name string, targets any) error {
	f, ok := b.fields[name]
	if !ok || f.Type != FieldLinkSet {
		return fmt.Errorf("%w: %s 没有链接集合 '%s'", types.ErrInvalidProperty, b.model.Name(), name)
	}
	var list []any
	switch t := targets.(type) {
	case nil:
	case []any:
		list = t
	case []string:
		for _, s := range t {
			list = append(list, s)
		}
	case []Object:
		for _, o := range t {
			list = append(list, o)
		}
	default:
		return fmt.Errorf("%s 需要名称列表，得到 %T", name, targets)
	}
	objs := make([]Object, 0, len(list))
	for _, item := range list {
		obj, err := b.resolve(f, item)
		if err != nil {
			return err
		}
		if obj != nil {
			objs = append(objs, obj)
		}
	}
	for old := range b.Linked(name) {
		old.Entity().removeReverse(f.Reverse, b.name)
	}
	b.sets[name] = nil
	for _, obj := range objs {
		if !slices.Contains(b.sets[name], obj.Name()) {
			b.sets[name] = append(b.sets[name], obj.Name())
		}
		obj.Entity().addReverse(f.Reverse, b.name)
	}
	return nil
}

// AddToSet 向多对多链接追加目标
func (b *Base) AddToSet(name string, target any) error {
	f, ok := b.fields[name]
	if !ok || f.Type != FieldLinkSet {
		return fmt.Errorf("%w: %s 没有链接集合 '%s'", types.ErrInvalidProperty, b.model.Name(), name)
	}
	obj, err := b.resolve(f, target)
	if err != nil || obj == nil {
		return err
	}
	if !slices.Contains(b.sets[name], obj.Name()) {
		b.sets[name] = append(b.sets[name], obj.Name())
	}
	obj.Entity().addReverse(f.Reverse, b.name)
	return nil
}

// Linked 反向集合或多对多链接的惰性视图，跳过已删除的实体
func (b *Base) Linked(name string) iter.Seq[Object] {
	var names []string
	if f, ok := b.fields[name]; ok && f.Type == FieldLinkSet {
		names = slices.Clone(b.sets[name])
	} else {
		names = slices.Clone(b.reverse[name])
	}
	return func(yield func(Object) bool) {
		for _, n := range names {
			obj, ok := b.host.Lookup(n)
			if !ok {
				continue
			}
			if !yield(obj) {
				return
			}
		}
	}
}

// resolve 将名称或实体解析为本系统中的实体
func (b *Base) resolve(f Field, target any) (Object, error) {
	var obj Object
	switch t := target.(type) {
	case nil:
		return nil, nil
	case string:
		if t == "" {
			return nil, nil
		}
		o, ok := b.host.Lookup(t)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", types.ErrUnknownObject, t)
		}
		obj = o
	case Object:
		o, ok := b.host.Lookup(t.Name())
		if !ok || o.Entity() != t.Entity() {
			return nil, fmt.Errorf("%w: '%s' 不属于当前系统", types.ErrUnknownObject, t.Name())
		}
		obj = o
	default:
		return nil, fmt.Errorf("%s 需要名称或实体，得到 %T", f.Name, target)
	}
	if f.Target != types.KindUnknown && obj.Kind() != f.Target {
		return nil, fmt.Errorf("%w: %s 需要 %s，'%s' 是 %s", types.ErrInvalidProperty, f.Name, f.Target, obj.Name(), obj.Kind())
	}
	return obj, nil
}

func (b *Base) addReverse(name, child string) {
	if !slices.Contains(b.reverse[name], child) {
		b.reverse[name] = append(b.reverse[name], child)
	}
}

func (b *Base) removeReverse(name, child string) {
	b.reverse[name] = slices.DeleteFunc(b.reverse[name], func(s string) bool { return s == child })
}

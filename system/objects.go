package system

import (
	"fmt"
	"iter"
	"slices"

	"sea/element"
	"sea/types"
)

// create 分配名称并构造实体
func (s *System) create(name string, model element.Model, props element.Properties) (element.Object, error) {
	name, warning := s.assignName(name)
	obj, err := element.New(s, name, model, props)
	if err != nil {
		return nil, err
	}
	if warning != nil {
		s.warn(warning)
	}
	s.objects = append(s.objects, obj)
	s.index[name] = obj
	s.logger.Debug("创建对象", "kind", obj.Kind(), "model", model.Name(), "name", name)
	return obj, nil
}

// add 按模型名称创建实体
func (s *System) add(kind types.Kind, name, model string, props element.Properties) (element.Object, error) {
	m, err := element.GetModel(kind, model)
	if err != nil {
		return nil, err
	}
	return s.create(name, m, props)
}

// Add 按实体类型创建，组件会自动创建子系统
func (s *System) Add(kind types.Kind, name, model string, props element.Properties) (element.Object, error) {
	switch kind {
	case types.KindMaterial:
		return s.AddMaterial(name, model, props)
	case types.KindComponent:
		return s.AddComponent(name, model, props)
	case types.KindJunction:
		return s.AddJunction(name, model, props)
	case types.KindCoupling:
		return s.AddCoupling(name, model, props)
	case types.KindExcitation:
		return s.AddExcitation(name, model, props)
	}
	return nil, fmt.Errorf("%w: 不能直接创建 %s", types.ErrUnknownModel, kind)
}

// AddMaterial 创建材料
func (s *System) AddMaterial(name, model string, props element.Properties) (*element.Material, error) {
	obj, err := s.add(types.KindMaterial, name, model, props)
	if err != nil {
		return nil, err
	}
	return obj.(*element.Material), nil
}

// AddComponent 创建组件，并按模型创建子系统 name_子系统模型
func (s *System) AddComponent(name, model string, props element.Properties) (*element.Component, error) {
	obj, err := s.add(types.KindComponent, name, model, props)
	if err != nil {
		return nil, err
	}
	c := obj.(*element.Component)
	for _, sm := range c.SubsystemModels() {
		if _, err := s.create(c.Name()+"_"+sm.Name(), sm, element.Properties{"component": c.Name()}); err != nil {
			s.remove(c)
			return nil, fmt.Errorf("组件 %s 创建子系统 %s 失败: %w", c.Name(), sm.Name(), err)
		}
	}
	return c, nil
}

// AddJunction 创建连接
func (s *System) AddJunction(name, model string, props element.Properties) (*element.Junction, error) {
	obj, err := s.add(types.KindJunction, name, model, props)
	if err != nil {
		return nil, err
	}
	return obj.(*element.Junction), nil
}

// AddCoupling 创建耦合
func (s *System) AddCoupling(name, model string, props element.Properties) (*element.Coupling, error) {
	obj, err := s.add(types.KindCoupling, name, model, props)
	if err != nil {
		return nil, err
	}
	return obj.(*element.Coupling), nil
}

// AddExcitation 创建激励
func (s *System) AddExcitation(name, model string, props element.Properties) (*element.Excitation, error) {
	obj, err := s.add(types.KindExcitation, name, model, props)
	if err != nil {
		return nil, err
	}
	return obj.(*element.Excitation), nil
}

// Object 按名称或实体查找
func (s *System) Object(target any) (element.Object, error) {
	switch t := target.(type) {
	case string:
		if obj, ok := s.index[t]; ok {
			return obj, nil
		}
		return nil, fmt.Errorf("%w: '%s'", types.ErrUnknownObject, t)
	case element.Object:
		if obj, ok := s.index[t.Name()]; ok && obj.Entity() == t.Entity() {
			return obj, nil
		}
		return nil, fmt.Errorf("%w: '%s'", types.ErrUnknownObject, t.Name())
	}
	return nil, fmt.Errorf("%w: %v", types.ErrUnknownObject, target)
}

// Remove 删除实体及依赖它的实体
func (s *System) Remove(target any) error {
	obj, err := s.Object(target)
	if err != nil {
		return err
	}
	s.remove(obj)
	return nil
}

// remove 先删除下游实体，再解除引用并移出列表
func (s *System) remove(obj element.Object) {
	if cur, ok := s.index[obj.Name()]; !ok || cur.Entity() != obj.Entity() {
		return
	}
	for dep := range obj.Entity().Dependents() {
		s.remove(dep)
	}
	obj.Entity().Detach()
	delete(s.index, obj.Name())
	s.objects = slices.DeleteFunc(s.objects, func(o element.Object) bool { return o.Entity() == obj.Entity() })
	s.logger.Debug("删除对象", "kind", obj.Kind(), "name", obj.Name())
}

// Objects 全部实体，每次迭代读取当前列表
func (s *System) Objects() iter.Seq[element.Object] {
	return func(yield func(element.Object) bool) {
		for _, obj := range slices.Clone(s.objects) {
			if !yield(obj) {
				return
			}
		}
	}
}

// view 按类型过滤的视图
func view[T element.Object](s *System) iter.Seq[T] {
	return func(yield func(T) bool) {
		for obj := range s.Objects() {
			if t, ok := obj.(T); ok {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Materials 材料
func (s *System) Materials() iter.Seq[*element.Material] { return view[*element.Material](s) }

// Components 组件
func (s *System) Components() iter.Seq[*element.Component] { return view[*element.Component](s) }

// Subsystems 子系统
func (s *System) Subsystems() iter.Seq[*element.Subsystem] { return view[*element.Subsystem](s) }

// Junctions 连接
func (s *System) Junctions() iter.Seq[*element.Junction] { return view[*element.Junction](s) }

// Couplings 耦合
func (s *System) Couplings() iter.Seq[*element.Coupling] { return view[*element.Coupling](s) }

// Excitations 激励
func (s *System) Excitations() iter.Seq[*element.Excitation] { return view[*element.Excitation](s) }

// UpdateCouplings 按已注册的规则为连接上不同组件的子系统补齐耦合
func (s *System) UpdateCouplings(junction any) ([]*element.Coupling, error) {
	obj, err := s.Object(junction)
	if err != nil {
		return nil, err
	}
	j, ok := obj.(*element.Junction)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' 不是连接", types.ErrUnknownObject, obj.Name())
	}
	subsystems := slices.Collect(j.Subsystems())
	var created []*element.Coupling
	for _, from := range subsystems {
		for _, to := range subsystems {
			if from.LinkName("component") == to.LinkName("component") {
				continue
			}
			model, ok := element.CouplingOption(j.Shape(), from, to)
			if !ok || j.Coupling(from.Name(), to.Name()) != nil {
				continue
			}
			c, err := s.AddCoupling(j.Name()+"_"+from.Name()+"_"+to.Name(), model, element.Properties{
				"junction":       j.Name(),
				"subsystem_from": from.Name(),
				"subsystem_to":   to.Name(),
			})
			if err != nil {
				return created, err
			}
			created = append(created, c)
		}
	}
	return created, nil
}

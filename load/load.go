package load

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"sea/element"
	"sea/system"
	"sea/types"
)

// LoadString 加载模型文档
func LoadString(s string, opts ...system.Option) (*system.System, error) {
	return Read(strings.NewReader(s), opts...)
}

// LoadFile 加载模型文件
func LoadFile(path string, opts ...system.Option) (*system.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read 解析文档并构建系统
func Read(r io.Reader, opts ...system.Option) (*system.System, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("解析模型文档: %w", err)
	}
	return Build(&doc, opts...)
}

// Build 按材料、组件、子系统、连接、耦合、激励的顺序构建系统
func Build(doc *Document, opts ...system.Option) (*system.System, error) {
	axis, err := doc.Frequency.axis()
	if err != nil {
		return nil, err
	}
	s := system.New(append([]system.Option{system.WithFrequency(axis)}, opts...)...)
	for _, kind := range types.Kinds {
		for i, rec := range *doc.Records(kind) {
			props := make(element.Properties, len(rec.Properties))
			for key, value := range rec.Properties {
				if props[key], err = doc.expand(value); err != nil {
					return nil, fmt.Errorf("%s[%d] %s: 属性 %s: %w", kind.Plural(), i, rec.Name, key, err)
				}
			}
			var obj element.Object
			if kind == types.KindSubsystem {
				obj, err = applySubsystem(s, rec, props)
			} else {
				obj, err = s.Add(kind, rec.Name, rec.Model, props)
			}
			if err != nil {
				return nil, fmt.Errorf("%s[%d] %s: %w", kind.Plural(), i, rec.Name, err)
			}
			if rec.Enabled != nil && !*rec.Enabled {
				obj.Entity().Disable(false)
			}
		}
	}
	if doc.Solved {
		s.MarkSolved()
	}
	return s, nil
}

// applySubsystem 子系统由组件创建，记录只修改属性
func applySubsystem(s *system.System, rec Record, props element.Properties) (element.Object, error) {
	name, _ := props["component"].(string)
	obj, err := s.Object(name)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*element.Component)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' 不是组件", types.ErrUnknownObject, name)
	}
	sub := c.Subsystem(rec.Model)
	if sub == nil {
		return nil, fmt.Errorf("%w: 组件 %s 没有子系统 %s", types.ErrUnknownModel, name, rec.Model)
	}
	delete(props, "component")
	for _, key := range slices.Sorted(maps.Keys(props)) {
		if err := sub.Set(key, props[key]); err != nil {
			return nil, &types.InvalidPropertyError{Key: key, Value: props[key], Type: rec.Model, Err: err}
		}
	}
	return sub, nil
}

// Dump 导出系统为文档
func Dump(s *system.System) *Document {
	f := s.Frequency().Clone()
	doc := &Document{
		Frequency: Frequency{Center: f.Center, Lower: f.Lower, Upper: f.Upper, Enabled: f.Enabled},
		Solved:    s.State() == types.StateSolved,
	}
	for obj := range s.Objects() {
		rec := Record{Name: obj.Name(), Model: obj.ModelName(), Properties: obj.Entity().Properties()}
		if !obj.Entity().Enabled() {
			rec.Enabled = new(bool)
		}
		list := doc.Records(obj.Kind())
		*list = append(*list, rec)
	}
	return doc
}

// Write 写出模型文档
func Write(w io.Writer, s *system.System) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Dump(s)); err != nil {
		return err
	}
	return enc.Close()
}

// SaveFile 保存模型文件
func SaveFile(path string, s *system.System) error {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

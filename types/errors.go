package types

import (
	"errors"
	"fmt"
)

// 错误定义
var (
	ErrImmutableName      = errors.New("名称不可修改")
	ErrImmutableAttribute = errors.New("属性只读")
	ErrUnknownObject      = errors.New("未知的对象")
	ErrUnknownModel       = errors.New("未知的模型")
	ErrInvalidProperty    = errors.New("无效的属性")
	ErrShapeMismatch      = errors.New("序列长度与频带数不一致")
	ErrSingularSystem     = errors.New("功率平衡矩阵奇异")
	ErrAmbiguousCoupling  = errors.New("同一方向存在多个耦合")
	ErrNotSupported       = errors.New("模型不支持该物理量")
)

// DuplicateNameWarning 重名警告，名称已自动追加后缀
type DuplicateNameWarning struct {
	Proposed string // 请求名称
	Assigned string // 实际名称
}

func (w *DuplicateNameWarning) Error() string {
	return fmt.Sprintf("名称 '%s' 已存在，改用 '%s'", w.Proposed, w.Assigned)
}

// InvalidPropertyError 构造时属性设置失败
type InvalidPropertyError struct {
	Key   string // 属性名
	Value any    // 属性值
	Type  string // 实体类型
	Err   error  // 原因
}

func (e *InvalidPropertyError) Error() string {
	return fmt.Sprintf("%s 的属性 %s=%v 无效: %v", e.Type, e.Key, e.Value, e.Err)
}

// Unwrap 同时匹配 ErrInvalidProperty 与原因
func (e *InvalidPropertyError) Unwrap() []error {
	return []error{ErrInvalidProperty, e.Err}
}

// ShapeMismatchError 序列长度不匹配
type ShapeMismatchError struct {
	Attribute string // 属性名
	Got       int    // 实际长度
	Want      int    // 频带数
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("属性 %s 长度 %d，频带数 %d", e.Attribute, e.Got, e.Want)
}

// Is 匹配 ErrShapeMismatch
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// SingularSystemError 指定频带的矩阵奇异
type SingularSystemError struct {
	Band      int     // 频带索引
	Frequency float64 // 中心频率
	Cond      float64 // 条件数
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("频带 %d (%g Hz) 功率平衡矩阵奇异，条件数 %g", e.Band, e.Frequency, e.Cond)
}

// Is 匹配 ErrSingularSystem
func (e *SingularSystemError) Is(target error) bool {
	return target == ErrSingularSystem
}

package system

import (
	"strconv"

	"sea/types"
)

// assignName 分配唯一名称，重名时追加数字后缀直到唯一
// 返回的警告在实体创建成功后由调用方记录
func (s *System) assignName(proposed string) (string, *types.DuplicateNameWarning) {
	if _, ok := s.index[proposed]; !ok {
		return proposed, nil
	}
	name := proposed
	for i := types.SuffixStart; ; i++ {
		name = proposed + strconv.Itoa(i)
		if _, ok := s.index[name]; !ok {
			break
		}
	}
	return name, &types.DuplicateNameWarning{Proposed: proposed, Assigned: name}
}

// warn 记录重名警告
func (s *System) warn(w *types.DuplicateNameWarning) {
	s.warnings = append(s.warnings, w)
	s.logger.Warn("名称重复", "proposed", w.Proposed, "assigned", w.Assigned)
}

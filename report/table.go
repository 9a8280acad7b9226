package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"sea/element"
	"sea/system"
)

// Table 物理量随频带变化的表
type Table struct {
	Attribute string      // 物理量名称
	Centers   []float64   // 频带中心频率
	Names     []string    // 实体名称
	Values    [][]float64 // [实体][频带]
}

// Query 读取实体的序列或派生量，names 为空时取全部子系统
func Query(s *system.System, names []string, attribute string) (*Table, error) {
	if len(names) == 0 {
		for sub := range s.Subsystems() {
			names = append(names, sub.Name())
		}
	}
	t := &Table{
		Attribute: attribute,
		Centers:   s.Frequency().Clone().Center,
		Names:     names,
		Values:    make([][]float64, len(names)),
	}
	for i, name := range names {
		obj, err := s.Object(name)
		if err != nil {
			return nil, err
		}
		if t.Values[i], err = element.Quantity(obj, attribute); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, attribute, err)
		}
	}
	return t, nil
}

// Column 指定实体的一列
func (t *Table) Column(name string) ([]float64, bool) {
	for i, n := range t.Names {
		if n == name {
			return t.Values[i], true
		}
	}
	return nil, false
}

// Positive 全部值为正，可用对数坐标
func (t *Table) Positive() bool {
	for _, col := range t.Values {
		for _, v := range col {
			if !(v > 0) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// WriteTable 按频带逐行输出，数值用 SI 前缀
func WriteTable(w io.Writer, t *Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", "Frequency", strings.Join(t.Names, "\t"))
	for f, center := range t.Centers {
		row := make([]string, len(t.Names))
		for i := range t.Names {
			row[i] = format(t.Values[i][f])
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", humanize.SIWithDigits(center, 1, "Hz"), strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// format 数值格式，零值与非有限值原样输出
func format(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return humanize.SIWithDigits(v, 3, "")
}

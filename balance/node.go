package balance

import (
	"fmt"

	"sea/element"
	"sea/types"
)

// Node 参与求解的子系统，频带序列在求解前一次读出
type Node struct {
	Name         string    // 子系统名称
	TLF          []float64 // 总损耗因子
	ModalDensity []float64 // 模态密度
	PowerInput   []float64 // 输入功率
	Edges        []Edge    // 输出耦合
}

// Edge 输出耦合
type Edge struct {
	Name string    // 耦合名称
	To   int       // 目标子系统索引
	CLF  []float64 // 耦合损耗因子
}

// Nodes 读取子系统数据，subsystems 的顺序即矩阵行列顺序
// 同一有向子系统对存在多个 included 耦合时返回 ErrAmbiguousCoupling
func Nodes(subsystems []*element.Subsystem) ([]Node, error) {
	index := make(map[string]int, len(subsystems))
	for i, s := range subsystems {
		index[s.Name()] = i
	}
	nodes := make([]Node, len(subsystems))
	for i, s := range subsystems {
		node := Node{Name: s.Name()}
		var err error
		if node.TLF, err = s.TLF(); err != nil {
			return nil, fmt.Errorf("子系统 %s 总损耗因子: %w", s.Name(), err)
		}
		if node.ModalDensity, err = s.ModalDensity(); err != nil {
			return nil, fmt.Errorf("子系统 %s 模态密度: %w", s.Name(), err)
		}
		if node.PowerInput, err = s.PowerInput(); err != nil {
			return nil, fmt.Errorf("子系统 %s 输入功率: %w", s.Name(), err)
		}
		seen := map[int]string{}
		for c := range s.CouplingsFrom() {
			if !c.Included() {
				continue
			}
			j, ok := index[c.LinkName("subsystem_to")]
			if !ok {
				continue
			}
			if other, ok := seen[j]; ok {
				return nil, fmt.Errorf("%w: %s → %s (%s, %s)", types.ErrAmbiguousCoupling,
					s.Name(), subsystems[j].Name(), other, c.Name())
			}
			seen[j] = c.Name()
			clf, err := c.CLF()
			if err != nil {
				return nil, fmt.Errorf("耦合 %s: %w", c.Name(), err)
			}
			node.Edges = append(node.Edges, Edge{Name: c.Name(), To: j, CLF: clf})
		}
		nodes[i] = node
	}
	return nodes, nil
}

// Assemble 组装指定频带的方程
// B[i][i] = tlf_i·n_i，B[j][i] = -clf(i→j)·n_i，p[i] = P_i/ω
func Assemble(m *Matrix, band int, omega float64, nodes []Node) {
	m.Zero()
	for i, node := range nodes {
		n := node.ModalDensity[band]
		m.StampMatrix(i, i, node.TLF[band]*n)
		for _, e := range node.Edges {
			m.StampMatrix(e.To, i, -e.CLF[band]*n)
		}
		m.StampRightSide(i, node.PowerInput[band]/omega)
	}
}

package graph

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"sea/balance"
	"sea/system"
	"sea/types"
)

// Graph 能量传递图，节点为 included 子系统，边为 included 耦合
// 图在创建时读出全部数据，之后修改系统不会反映到图中
type Graph struct {
	nodes    []balance.Node      // 子系统数据，索引即节点 ID
	index    map[string]int64    // 名称到节点 ID
	edges    map[[2]int64]string // 有向子系统对到耦合名称
	omega    []float64           // 角频率
	directed *simple.DirectedGraph
}

// Path 一条传递路径，Couplings[i] 连接 Subsystems[i] 与 Subsystems[i+1]
type Path struct {
	Subsystems []string
	Couplings  []string
}

// NewGraph 由系统创建
func NewGraph(s *system.System) (*Graph, error) {
	nodes, err := balance.Nodes(s.IncludedSubsystems())
	if err != nil {
		return nil, err
	}
	g := &Graph{
		nodes:    nodes,
		index:    make(map[string]int64, len(nodes)),
		edges:    map[[2]int64]string{},
		omega:    s.Frequency().Angular(),
		directed: simple.NewDirectedGraph(),
	}
	for i, n := range nodes {
		g.index[n.Name] = int64(i)
		g.directed.AddNode(simple.Node(i))
	}
	for i, n := range nodes {
		for _, e := range n.Edges {
			g.edges[[2]int64{int64(i), int64(e.To)}] = e.Name
			g.directed.SetEdge(g.directed.NewEdge(simple.Node(i), simple.Node(e.To)))
		}
	}
	return g, nil
}

// id 按名称查找节点
func (g *Graph) id(name string) (int64, error) {
	id, ok := g.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: '%s' 不是参与求解的子系统", types.ErrUnknownObject, name)
	}
	return id, nil
}

// ends 起点与终点
func (g *Graph) ends(from, to string) (int64, int64, error) {
	a, err := g.id(from)
	if err != nil {
		return 0, 0, err
	}
	b, err := g.id(to)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// HasPath 是否存在从 from 到 to 的传递路径
func (g *Graph) HasPath(from, to string) (bool, error) {
	a, b, err := g.ends(from, to)
	if err != nil {
		return false, err
	}
	return topo.PathExistsIn(g.directed, simple.Node(a), simple.Node(b)), nil
}

// Paths 全部简单路径，深度优先
func (g *Graph) Paths(from, to string) ([]Path, error) {
	a, b, err := g.ends(from, to)
	if err != nil {
		return nil, err
	}
	var paths []Path
	visited := map[int64]bool{a: true}
	stack := []int64{a}
	var walk func(u int64)
	walk = func(u int64) {
		if u == b {
			paths = append(paths, g.path(stack))
			return
		}
		next := graph.NodesOf(g.directed.From(u))
		slices.SortFunc(next, func(x, y graph.Node) int { return cmp.Compare(x.ID(), y.ID()) })
		for _, v := range next {
			id := v.ID()
			if visited[id] {
				continue
			}
			visited[id] = true
			stack = append(stack, id)
			walk(id)
			stack = stack[:len(stack)-1]
			visited[id] = false
		}
	}
	walk(a)
	return paths, nil
}

// path 节点序列转为路径
func (g *Graph) path(ids []int64) Path {
	p := Path{Subsystems: make([]string, len(ids))}
	for i, id := range ids {
		p.Subsystems[i] = g.nodes[id].Name
		if i > 0 {
			p.Couplings = append(p.Couplings, g.edges[[2]int64{ids[i-1], id}])
		}
	}
	return p
}

// EnergyRatio 能量比 E_n/E_1，逐频带 Π clf / Π tlf
func (g *Graph) EnergyRatio(p Path) ([]float64, error) {
	if len(p.Subsystems) == 0 {
		return nil, fmt.Errorf("空路径")
	}
	ratio := make([]float64, len(g.omega))
	for f := range ratio {
		ratio[f] = 1
	}
	var prev int64
	for i, name := range p.Subsystems {
		id, err := g.id(name)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			clf, err := g.clf(prev, id)
			if err != nil {
				return nil, err
			}
			for f := range ratio {
				ratio[f] *= clf[f]
			}
		}
		for f := range ratio {
			ratio[f] /= g.nodes[id].TLF[f]
		}
		prev = id
	}
	return ratio, nil
}

// clf 两个相邻节点之间的耦合损耗因子
func (g *Graph) clf(from, to int64) ([]float64, error) {
	for _, e := range g.nodes[from].Edges {
		if int64(e.To) == to {
			return e.CLF, nil
		}
	}
	return nil, fmt.Errorf("%s 与 %s 之间没有耦合", g.nodes[from].Name, g.nodes[to].Name)
}

// LevelDifference 沿路径的衰减 -10·log10(E_n/E_1)
func (g *Graph) LevelDifference(p Path) ([]float64, error) {
	ratio, err := g.EnergyRatio(p)
	if err != nil {
		return nil, err
	}
	for f := range ratio {
		ratio[f] = -10 * math.Log10(ratio[f])
	}
	return ratio, nil
}

// Energy 只考虑本路径时，首个子系统的输入功率在末端产生的能量 P/ω·E_n/E_1
func (g *Graph) Energy(p Path) ([]float64, error) {
	ratio, err := g.EnergyRatio(p)
	if err != nil {
		return nil, err
	}
	first := g.nodes[g.index[p.Subsystems[0]]]
	for f := range ratio {
		ratio[f] *= first.PowerInput[f] / g.omega[f]
	}
	return ratio, nil
}

// DominantPath 指定频带能量比最大的路径，边权为 -ln(clf/tlf)
func (g *Graph) DominantPath(from, to string, band int) (Path, bool, error) {
	a, b, err := g.ends(from, to)
	if err != nil {
		return Path{}, false, err
	}
	if band < 0 || band >= len(g.omega) {
		return Path{}, false, fmt.Errorf("频带索引 %d 越界，频带数 %d", band, len(g.omega))
	}
	weighted := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := range g.nodes {
		weighted.AddNode(simple.Node(i))
	}
	for i, n := range g.nodes {
		for _, e := range n.Edges {
			ratio := e.CLF[band] / n.TLF[band]
			if !(ratio > 0) {
				continue
			}
			weighted.SetWeightedEdge(weighted.NewWeightedEdge(simple.Node(i), simple.Node(e.To), -math.Log(ratio)))
		}
	}
	nodes, _ := path.DijkstraFrom(simple.Node(a), weighted).To(b)
	if len(nodes) == 0 {
		return Path{}, false, nil
	}
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return g.path(ids), true, nil
}

// Groups 相互可达的子系统分组
func (g *Graph) Groups() [][]string {
	var groups [][]string
	for _, scc := range topo.TarjanSCC(g.directed) {
		group := make([]string, len(scc))
		for i, n := range scc {
			group[i] = g.nodes[n.ID()].Name
		}
		slices.Sort(group)
		groups = append(groups, group)
	}
	return groups
}

// Len 节点数量
func (g *Graph) Len() int { return len(g.nodes) }

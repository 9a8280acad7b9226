package report

import (
	"io"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"sea/system"
)

// Link 网络图中的一条耦合
type Link struct {
	Name string  // 耦合名称
	From string  // 源子系统
	To   string  // 目标子系统
	CLF  float64 // 指定频带的耦合损耗因子
}

// Network 子系统与耦合组成的网络
type Network struct {
	Components map[string]string // 子系统所属组件
	Subsystems []string          // 子系统
	Excluded   map[string]bool   // 不参与求解的子系统
	Links      []Link            // 耦合
}

// NetworkOf 读取系统的网络结构，耦合损耗因子取 band 频带的值
func NetworkOf(s *system.System, band int) *Network {
	n := &Network{Components: map[string]string{}, Excluded: map[string]bool{}}
	for sub := range s.Subsystems() {
		n.Subsystems = append(n.Subsystems, sub.Name())
		n.Components[sub.Name()] = sub.LinkName("component")
		if !sub.Included() {
			n.Excluded[sub.Name()] = true
		}
	}
	for c := range s.Couplings() {
		link := Link{Name: c.Name(), From: c.LinkName("subsystem_from"), To: c.LinkName("subsystem_to")}
		if link.From == "" || link.To == "" {
			continue
		}
		if clf, err := c.CLF(); err == nil && band >= 0 && band < len(clf) {
			link.CLF = clf[band]
		}
		n.Links = append(n.Links, link)
	}
	return n
}

// Charts 网页图表
type Charts struct {
	Table   *Table   // 曲线数据
	Network *Network // 网络图，可为 nil
}

// Render 输出 HTML 页面
func (c *Charts) Render(w io.Writer) error {
	page := components.NewPage()
	if c.Network != nil {
		page.AddCharts(c.graph())
	}
	if c.Table != nil {
		page.AddCharts(c.line())
	}
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RenderHTML 输出单张曲线图
func RenderHTML(w io.Writer, t *Table) error {
	return (&Charts{Table: t}).Render(w)
}

func (c *Charts) graph() *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "子系统网络",
			Subtitle: "节点为子系统，连线为耦合",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
	)
	nodes := make([]opts.GraphNode, len(c.Network.Subsystems))
	for i, name := range c.Network.Subsystems {
		nodes[i] = opts.GraphNode{
			Name:     name,
			Category: 0,
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		}
		if c.Network.Excluded[name] {
			nodes[i].Category = 1
		}
	}
	links := make([]opts.GraphLink, len(c.Network.Links))
	for i, l := range c.Network.Links {
		links[i] = opts.GraphLink{Source: l.From, Target: l.To, Value: float32(l.CLF)}
	}
	graph.AddSeries("耦合", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Categories: []*opts.GraphCategory{
				{Name: "子系统", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
				{Name: "未参与", ItemStyle: &opts.ItemStyle{Color: "#9e9e9eb7"}},
			},
			Roam:               opts.Bool(true),
			Force:              &opts.GraphForce{Repulsion: 200},
			EdgeSymbol:         []string{"none", "arrow"},
			EdgeLabel:          &opts.EdgeLabel{Show: opts.Bool(false)},
			FocusNodeAdjacency: opts.Bool(true),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Curveness: 0.2,
		}),
	)
	return graph
}

func (c *Charts) line() *charts.Line {
	t := c.Table
	yAxis := opts.YAxis{Name: t.Attribute, Scale: opts.Bool(true)}
	if t.Positive() {
		yAxis.Type = "log"
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    t.Attribute,
			Subtitle: "随频带中心频率变化",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hz"}),
		charts.WithYAxisOpts(yAxis),
	)
	line.SetXAxis(t.Centers)
	for i, name := range t.Names {
		items := make([]opts.LineData, len(t.Centers))
		for f, v := range t.Values[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				items[f].Value = "-"
				continue
			}
			items[f].Value = v
		}
		line.AddSeries(name, items)
	}
	return line
}

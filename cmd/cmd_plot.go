package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"sea/report"
)

func plotCmd() *cobra.Command {
	var (
		objects   []string
		attribute string
		out       string
		band      int
	)

	cmd := &cobra.Command{
		Use:   "plot <model.yaml>",
		Short: "输出物理量随频率变化的图表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openModel(args[0], newLogger())
			if err != nil {
				return fmt.Errorf("plot: %w", err)
			}
			t, err := report.Query(m.System, objects, attribute)
			if err != nil {
				return fmt.Errorf("plot: %w", err)
			}

			format := strings.TrimPrefix(filepath.Ext(out), ".")
			if format == "" {
				format = cfg.Report.Format
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			switch format {
			case "html":
				c := &report.Charts{Table: t, Network: report.NetworkOf(m.System, band)}
				err = c.Render(f)
			case "png":
				err = report.PlotPNG(f, t, cfg.Report.Width, cfg.Report.Height)
			default:
				width := vg.Length(cfg.Report.Width) * vg.Inch / 96
				height := vg.Length(cfg.Report.Height) * vg.Inch / 96
				err = report.Plot(f, t, width, height, format)
			}
			if err != nil {
				return fmt.Errorf("plot: %w", err)
			}
			return f.Close()
		},
	}

	cmd.Flags().StringSliceVar(&objects, "objects", nil, "实体名称，缺省为全部子系统")
	cmd.Flags().StringVar(&attribute, "attribute", "modal_energy", "物理量")
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件，扩展名决定格式")
	cmd.Flags().IntVar(&band, "band", 0, "网络图中耦合损耗因子所取的频带")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

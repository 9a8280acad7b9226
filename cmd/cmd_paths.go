package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sea/graph"
	"sea/report"
)

func pathsCmd() *cobra.Command {
	var (
		from, to string
		band     int
	)

	cmd := &cobra.Command{
		Use:   "paths <model.yaml>",
		Short: "分析两个子系统之间的能量传递路径",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openModel(args[0], newLogger())
			if err != nil {
				return fmt.Errorf("paths: %w", err)
			}
			g, err := graph.NewGraph(m.System)
			if err != nil {
				return fmt.Errorf("paths: %w", err)
			}
			paths, err := g.Paths(from, to)
			if err != nil {
				return fmt.Errorf("paths: %w", err)
			}
			w := cmd.OutOrStdout()
			if len(paths) == 0 {
				fmt.Fprintf(w, "%s 与 %s 之间没有传递路径\n", from, to)
				return nil
			}

			t := &report.Table{Attribute: "level_difference", Centers: m.Frequency().Clone().Center}
			for i, p := range paths {
				diff, err := g.LevelDifference(p)
				if err != nil {
					return err
				}
				name := fmt.Sprintf("#%d", i+1)
				fmt.Fprintf(w, "%s %s\n", name, strings.Join(p.Subsystems, " → "))
				t.Names = append(t.Names, name)
				t.Values = append(t.Values, diff)
			}
			fmt.Fprintln(w)
			if err := report.WriteTable(w, t); err != nil {
				return err
			}

			dominant, ok, err := g.DominantPath(from, to, band)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(w, "\n%g Hz 主要路径: %s\n", t.Centers[band], strings.Join(dominant.Subsystems, " → "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "起点子系统")
	cmd.Flags().StringVar(&to, "to", "", "终点子系统")
	cmd.Flags().IntVar(&band, "band", 0, "主要路径所取的频带")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sea/element"
	"sea/report"
)

func infoCmd() *cobra.Command {
	var (
		objects   []string
		attribute string
		list      bool
	)

	cmd := &cobra.Command{
		Use:   "info <model.yaml>",
		Short: "查看实体的物理量",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openModel(args[0], newLogger())
			if err != nil {
				return fmt.Errorf("info: %w", err)
			}
			w := cmd.OutOrStdout()

			if list {
				for obj := range m.Objects() {
					state := ""
					if !obj.Entity().Included() {
						state = " (不参与)"
					}
					fmt.Fprintf(w, "%-12s %-32s %s%s\n", obj.Kind(), obj.Name(), obj.ModelName(), state)
				}
				return nil
			}

			if attribute == "" {
				for _, name := range objects {
					obj, err := m.Object(name)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s: %v\n", name, element.Quantities(obj))
				}
				return nil
			}

			t, err := report.Query(m.System, objects, attribute)
			if err != nil {
				return fmt.Errorf("info: %w", err)
			}
			return report.WriteTable(w, t)
		},
	}

	cmd.Flags().StringSliceVar(&objects, "objects", nil, "实体名称，缺省为全部子系统")
	cmd.Flags().StringVar(&attribute, "attribute", "modal_energy", "物理量，为空时列出可查询的物理量")
	cmd.Flags().BoolVar(&list, "list", false, "列出全部实体")
	return cmd
}

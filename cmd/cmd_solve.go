package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sea/report"
)

func solveCmd() *cobra.Command {
	var (
		out    string
		dbPath string
		record bool
	)

	cmd := &cobra.Command{
		Use:   "solve <model.yaml>",
		Short: "求解功率平衡并输出模态能量",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			m, err := openModel(args[0], logger)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}
			res, err := m.Solve(ctx)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}

			t, err := report.Query(m.System, nil, "modal_energy")
			if err != nil {
				return err
			}
			if err := report.WriteTable(cmd.OutOrStdout(), t); err != nil {
				return err
			}

			if out != "" {
				if err := m.Save(out); err != nil {
					return fmt.Errorf("solve: 保存 %s: %w", out, err)
				}
				logger.Info("已保存求解结果", "path", out)
			}

			if record || dbPath != "" {
				st, err := openStore(dbPath)
				if err != nil {
					return fmt.Errorf("solve: 打开记录: %w", err)
				}
				defer func() { _ = st.Close() }()
				if err := st.SaveRun(ctx, args[0], m.System, res); err != nil {
					return fmt.Errorf("solve: 记录求解: %w", err)
				}
				logger.Info("已记录求解", "id", res.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "保存求解后的模型")
	cmd.Flags().StringVar(&dbPath, "db", "", "求解记录数据库")
	cmd.Flags().BoolVar(&record, "record", false, "记录到配置中的数据库")
	return cmd
}

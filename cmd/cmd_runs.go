package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func runsCmd() *cobra.Command {
	var (
		dbPath string
		show   string
		remove string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "列出求解记录",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(dbPath)
			if err != nil {
				return fmt.Errorf("runs: %w", err)
			}
			defer func() { _ = st.Close() }()
			w := cmd.OutOrStdout()

			if remove != "" {
				id, err := uuid.Parse(remove)
				if err != nil {
					return fmt.Errorf("runs: %w", err)
				}
				return st.DeleteRun(ctx, id)
			}

			if show != "" {
				id, err := uuid.Parse(show)
				if err != nil {
					return fmt.Errorf("runs: %w", err)
				}
				energies, err := st.Energies(ctx, id)
				if err != nil {
					return fmt.Errorf("runs: %w", err)
				}
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "subsystem\tband\tcenter\tmodal_energy")
				for _, e := range energies {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%.4g\n", e.Subsystem, e.Band, humanize.SIWithDigits(e.Center, 1, "Hz"), e.Energy)
				}
				return tw.Flush()
			}

			runs, err := st.Runs(ctx)
			if err != nil {
				return fmt.Errorf("runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(w, "没有求解记录")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "id\tmodel\tcreated\tbands\tsubsystems\telapsed")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
					r.ID, r.Model, humanize.Time(r.Created), r.Bands, r.Subsystems, time.Duration(r.Elapsed))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "求解记录数据库，缺省取配置")
	cmd.Flags().StringVar(&show, "show", "", "输出指定记录的模态能量")
	cmd.Flags().StringVar(&remove, "delete", "", "删除指定记录")
	return cmd
}

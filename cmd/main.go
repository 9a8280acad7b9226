package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sea"
	"sea/config"
	"sea/store"
	"sea/system"
)

var (
	cfg        *config.Config
	configPath string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sea",
		Short:         "统计能量分析",
		Long:          "读取子系统、耦合与激励组成的模型，逐频带求解功率平衡并输出模态能量。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("加载配置: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径")

	rootCmd.AddCommand(
		solveCmd(),
		infoCmd(),
		plotCmd(),
		pathsCmd(),
		runsCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	var level slog.Level
	if cfg != nil {
		_ = level.UnmarshalText([]byte(cfg.Logging.Level))
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openModel 按配置加载模型
func openModel(path string, logger *slog.Logger) (*sea.Model, error) {
	solver := cfg.Balance()
	solver.Logger = logger
	return sea.Open(path, system.WithLogger(logger), system.WithSolver(solver))
}

// openStore 打开求解记录，path 为空时取配置
func openStore(path string) (*store.DB, error) {
	if path == "" {
		path = cfg.Store.Path
	}
	return store.Open(path)
}

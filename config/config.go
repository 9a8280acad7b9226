package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"sea/balance"
	"sea/types"
)

// Config 命令行程序配置
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Store   StoreConfig   `mapstructure:"store"`
	Report  ReportConfig  `mapstructure:"report"`
}

// LoggingConfig 日志
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug info warn error
	Format string `mapstructure:"format"` // text json
}

// SolverConfig 求解器
type SolverConfig struct {
	Parallel       bool    `mapstructure:"parallel"`
	Workers        int     `mapstructure:"workers"`
	ConditionLimit float64 `mapstructure:"condition_limit"`
}

// StoreConfig 求解记录数据库
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// ReportConfig 图表输出
type ReportConfig struct {
	Width  int    `mapstructure:"width"`  // 像素
	Height int    `mapstructure:"height"` // 像素
	Format string `mapstructure:"format"` // png svg html
}

// Load 读取配置，path 为空时在当前目录和 $HOME/.sea 中查找 sea.yaml
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("solver.parallel", false)
	v.SetDefault("solver.workers", 0)
	v.SetDefault("solver.condition_limit", types.ConditionLimit)

	v.SetDefault("store.path", "sea.db")

	v.SetDefault("report.width", 800)
	v.SetDefault("report.height", 500)
	v.SetDefault("report.format", "png")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sea")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(homeDir(), ".sea"))
	}

	// SEA_SOLVER_WORKERS 对应 solver.workers
	v.SetEnvPrefix("SEA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("检查配置: %w", err)
	}
	return &cfg, nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return fmt.Errorf("logging.level 取值 debug/info/warn/error，得到 %q", c.Logging.Level)
	}
	if !slices.Contains([]string{"text", "json"}, c.Logging.Format) {
		return fmt.Errorf("logging.format 取值 text/json，得到 %q", c.Logging.Format)
	}
	if c.Solver.Workers < 0 {
		return fmt.Errorf("solver.workers 不能为负")
	}
	if !(c.Solver.ConditionLimit > 1) {
		return fmt.Errorf("solver.condition_limit 必须大于 1")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path 不能为空")
	}
	if c.Report.Width <= 0 || c.Report.Height <= 0 {
		return fmt.Errorf("report 尺寸必须为正")
	}
	if !slices.Contains([]string{"png", "svg", "html"}, c.Report.Format) {
		return fmt.Errorf("report.format 取值 png/svg/html，得到 %q", c.Report.Format)
	}
	return nil
}

// Balance 求解器设置
func (c *Config) Balance() balance.Solver {
	return balance.Solver{
		Parallel:       c.Solver.Parallel,
		Workers:        c.Solver.Workers,
		ConditionLimit: c.Solver.ConditionLimit,
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

package main

import (
	"dailydigest/internal/domain/config"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dailydigest",
	Short: "Browse and publish the AI daily paper digest",
	Long: `dailydigest reads per-day issue directories (digest.md, papers/*.md,
assets/figures, issue-data.json) and serves them as browsable pages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "site.yaml", "path to site config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// loadConfig 读取 --config 指定的文件，文件不存在时使用默认配置。
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadOrDefault(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", flagConfig, err)
	}
	return cfg, nil
}

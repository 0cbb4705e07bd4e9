// Package main LegislaBot 命令行工具
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/wire"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
)

var (
	configDir string
	timeout   time.Duration
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "legislabot",
	Short: "Draft, check and export Mexican legislative bills",
	Long: `LegislaBot drafts initiative bills from a topic in three stages
(research, draft, refine), checks their structure and exports them.

Commands that touch the database read the same configuration as the API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.InitWithWriter(cmd.ErrOrStderr(), level, "text")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.yaml (default: ./configs)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	generateCmd.Flags().StringVarP(&generateTopic, "topic", "t", "", "Bill topic (required)")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Save the result as a draft")
	generateCmd.Flags().StringVarP(&generateOut, "output", "o", "", "Write the bill to a file instead of stdout")
	_ = generateCmd.MarkFlagRequired("topic")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "txt", "Export format: txt, md or html")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default: derived from the bill title)")

	usageCmd.Flags().IntVar(&usageDays, "days", 30, "Number of days to report")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configDir != "" {
		return config.LoadFrom(configDir)
	}
	return config.Load()
}

// withCore 加载配置并初始化服务，fn 返回后释放资源
func withCore(cmd *cobra.Command, fn func(ctx context.Context, core *wire.Core) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	core, cleanup, err := wire.InitializeCore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer cleanup()

	return fn(ctx, core)
}

package cmd

import (
	"fmt"
	"os"

	"r2-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "r2-manager",
	Short: "Cloudflare R2 bucket manager",
	Long: `r2-manager manages one bucket of Cloudflare R2 or any S3-compatible service.
Connection settings come from the environment or a .env file
(STORAGE_ENDPOINT, STORAGE_BUCKET, STORAGE_ACCESS_KEY, STORAGE_SECRET_KEY,
or the CLOUDFLARE_* equivalents).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath string

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable ISO8601 timestamps for CLI output
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory containing the .env file")
}

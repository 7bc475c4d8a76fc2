package cmd

import (
	"fmt"
	"os"

	"symdiff/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "symdiff",
	Short: "Symmetric difference of record collections",
	Long: `symdiff compares two collections of records by a set of key properties and
reports the records whose key appears in exactly one of them.
It reads JSON, NDJSON, YAML, CSV and XLSX from local files, S3 storage or MySQL tables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console output with ISO8601 timestamps reads better on a terminal.
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

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"symdiff/core/config"
	"symdiff/core/database"
	"symdiff/core/logger"
	"symdiff/core/source"
	"symdiff/core/storage"
	"symdiff/feature/diff"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	diffKeys     []string
	diffDetailed bool
	diffOut      string
)

// diffCmd computes the symmetric difference of two sources.
var diffCmd = &cobra.Command{
	Use:   "diff LEFT RIGHT",
	Short: "Print the records whose key appears in exactly one of two sources",
	Long: `Loads two record collections and prints their symmetric difference by key as JSON.

Sources are local paths (.json, .ndjson, .jsonl, .yaml, .yml, .csv, .xlsx,
optionally compressed as .gz or .zst), s3://bucket/object, or db://table.

Examples:
  # Compare two local files by id
  symdiff diff --keys id left.json right.csv

  # Compare a stored export with a table, tagging each result with its side
  symdiff diff --keys region,sku --detailed s3://exports/items.ndjson.gz db://items

  # Upload the report instead of printing it
  symdiff diff --keys id --out s3://reports/diff.json left.json right.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringSliceVar(&diffKeys, "keys", nil, "Key properties, highest priority first (comma separated)")
	diffCmd.Flags().BoolVar(&diffDetailed, "detailed", false, "Include side-tagged entries in the report")
	diffCmd.Flags().StringVar(&diffOut, "out", "", "Write the report to a file or s3:// object instead of stdout")
	_ = diffCmd.MarkFlagRequired("keys")

	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	opts := source.Options{
		Bucket:     cfg.Storage.Bucket,
		Logger:     l,
		MaxRecords: cfg.Diff.MaxRecords,
	}
	if usesScheme(source.SchemeS3, args[0], args[1], diffOut) {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		opts.Client = client
	}
	if usesScheme(source.SchemeDB, args[0], args[1]) {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		opts.DB = db
	}

	src := source.NewLoader(opts)
	defer src.Close()

	left, right, err := src.LoadPair(ctx, args[0], args[1], diffKeys)
	if err != nil {
		return err
	}

	report, err := diff.NewService(nil, nil, l).Diff(ctx, diff.Request{
		Keys:     diffKeys,
		Left:     left,
		Right:    right,
		Detailed: diffDetailed,
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := writeOutput(ctx, cmd.OutOrStdout(), opts.Client, cfg.Storage.Bucket, diffOut, data); err != nil {
		return err
	}

	if diffOut != "" {
		l.Info("Report written",
			zap.String("out", diffOut),
			zap.Int("results", report.Summary.ResultTotal),
		)
	}
	return nil
}

// usesScheme reports whether any of the locations has the given scheme.
// Unparsable locations are left for the loader to reject.
func usesScheme(scheme source.Scheme, locations ...string) bool {
	for _, raw := range locations {
		if raw == "" {
			continue
		}
		if loc, err := source.ParseLocation(raw); err == nil && loc.Scheme == scheme {
			return true
		}
	}
	return false
}

// writeOutput sends data to w when out is empty, otherwise to the file or
// storage object named by out.
func writeOutput(ctx context.Context, w io.Writer, client storage.Client, bucket, out string, data []byte) error {
	if out == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}

	loc, err := source.ParseLocation(out)
	if err != nil {
		return err
	}

	switch loc.Scheme {
	case source.SchemeS3:
		if client == nil {
			return fmt.Errorf("%w: storage", source.ErrNotConfigured)
		}
		if loc.Bucket != "" {
			bucket = loc.Bucket
		}
		return storage.Upload(ctx, client, bucket, loc.Path, "application/json", data)
	case source.SchemeDB:
		return errors.New("reports cannot be written to a database table")
	default:
		if err := os.WriteFile(loc.Path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/agrifield/advisor/internal/core/config"
	"github.com/agrifield/advisor/internal/infra/storage/postgres"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent decisions and error counts",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)

	_, _ = fmt.Fprintln(w, "DECISION\tRULE\tMETHOD\tCONFIDENCE\tCREATED")
	rows, err := db.QueryContext(ctx,
		"SELECT id, rule, primary_method, confidence, created_at FROM decisions ORDER BY created_at DESC LIMIT 20")
	if err != nil {
		slog.Error("Failed to query decisions", "error", err)
		os.Exit(1)
	}
	for rows.Next() {
		var id, rule, method string
		var confidence float64
		var createdAt time.Time
		if err := rows.Scan(&id, &rule, &method, &confidence, &createdAt); err != nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n", id, rule, method, confidence, createdAt.Format(time.RFC3339))
	}
	_ = rows.Close()

	_, _ = fmt.Fprintln(w, "\nERROR TYPE\tCOUNT")
	rows, err = db.QueryContext(ctx,
		"SELECT error_type, COUNT(*) FROM error_log GROUP BY error_type ORDER BY COUNT(*) DESC")
	if err != nil {
		slog.Error("Failed to query error log", "error", err)
		os.Exit(1)
	}
	for rows.Next() {
		var errType string
		var count int64
		if err := rows.Scan(&errType, &count); err != nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\n", errType, count)
	}
	_ = rows.Close()

	_ = w.Flush()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/leaguedesk/cardimport/internal/app"
	"github.com/leaguedesk/cardimport/internal/config"
	"github.com/leaguedesk/cardimport/internal/domain/importrun"
	"github.com/leaguedesk/cardimport/internal/platform/logging"
)

// Operator CLI for running imports without the HTTP surface. Reads the CSV
// from -file (or the configured IMPORT_CSV_PATH when omitted) and prints
// either the SQL preview or the JSON report to stdout.
func main() {
	filePath := flag.String("file", "", "path to the disciplinary card CSV (defaults to IMPORT_CSV_PATH)")
	action := flag.String("action", importrun.ActionImport, "import or preview_sql")
	dryRun := flag.Bool("dry-run", false, "plan and report without committing")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	service, closeDB, err := app.NewImportService(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build import service: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeDB() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var csvInput io.Reader
	if *filePath != "" {
		f, err := os.Open(*filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open csv: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		csvInput = f
	}

	switch *action {
	case importrun.ActionPreview:
		sqlText, err := service.PreviewSQL(ctx, csvInput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preview sql: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(sqlText)

	case importrun.ActionImport:
		report, runErr := service.Import(ctx, csvInput, *dryRun)
		blob, err := sonic.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal report: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(blob))
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "import: %v\n", runErr)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown action %q: valid actions are %s, %s\n", *action, importrun.ActionImport, importrun.ActionPreview)
		os.Exit(2)
	}
}

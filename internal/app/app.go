package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/leaguedesk/cardimport/internal/config"
	"github.com/leaguedesk/cardimport/internal/domain/cardimport"
	"github.com/leaguedesk/cardimport/internal/infrastructure/repository/postgres"
	"github.com/leaguedesk/cardimport/internal/interfaces/httpapi"
	idgen "github.com/leaguedesk/cardimport/internal/platform/id"
	"github.com/leaguedesk/cardimport/internal/platform/logging"
	"github.com/leaguedesk/cardimport/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	importSvc, closeDB, err := NewImportService(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	handler := httpapi.NewHandler(importSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.AdminToken, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closeDB()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeDB, nil
}

// NewImportService wires the import pipeline against the configured database.
// The returned closer releases the connection pool.
func NewImportService(cfg config.Config, logger *logging.Logger) (*usecase.CardImportService, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	planner, err := buildPlanner(cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	importSvc := usecase.NewCardImportService(
		postgres.NewRosterRepository(db),
		postgres.NewCardRepository(db),
		postgres.NewPreviewRenderer(),
		postgres.NewImportRunRepository(db),
		idgen.NewUUIDGenerator(),
		planner,
		cfg.ImportCSVPath,
		logger,
	)

	return importSvc, db.Close, nil
}

// buildPlanner assembles the normalizer from configured alias files, falling
// back to the built-in tables when no path is set.
func buildPlanner(cfg config.Config) (*cardimport.Planner, error) {
	var teamAliases, reasonAliases cardimport.AliasTable

	if cfg.ImportTeamAliasesPath != "" {
		loaded, err := cardimport.LoadAliasFile(cfg.ImportTeamAliasesPath)
		if err != nil {
			return nil, fmt.Errorf("load team aliases: %w", err)
		}
		teamAliases = loaded
	}
	if cfg.ImportReasonAliasesPath != "" {
		loaded, err := cardimport.LoadAliasFile(cfg.ImportReasonAliasesPath)
		if err != nil {
			return nil, fmt.Errorf("load reason aliases: %w", err)
		}
		reasonAliases = loaded
	}

	normalizer := cardimport.NewNormalizer(teamAliases, reasonAliases, cfg.ImportStrictCardTypes)
	return cardimport.NewPlanner(normalizer, cfg.ImportSourceTag), nil
}

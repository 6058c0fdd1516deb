package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"kuittipankki/internal/auth"
	"kuittipankki/internal/catalog"
	catalogStore "kuittipankki/internal/catalog/store"
	"kuittipankki/internal/config"
	"kuittipankki/internal/csvimport"
	"kuittipankki/internal/database"
	"kuittipankki/internal/export"
	"kuittipankki/internal/filestore"
	apiHttp "kuittipankki/internal/http"
	authnHandler "kuittipankki/internal/http/authn"
	catalogHandler "kuittipankki/internal/http/catalog"
	exportHandler "kuittipankki/internal/http/export"
	importHandler "kuittipankki/internal/http/importcsv"
	receiptHandler "kuittipankki/internal/http/receipt"
	reportHandler "kuittipankki/internal/http/report"
	"kuittipankki/internal/receipt"
	receiptStore "kuittipankki/internal/receipt/store"
	"kuittipankki/internal/report"
	reportStore "kuittipankki/internal/report/store"
	"kuittipankki/internal/user"
	userStore "kuittipankki/internal/user/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.TokenSecret == "" {
		slog.Error("TOKEN_SECRET must be set")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	files, err := filestore.New(cfg.Uploads.Dir)
	if err != nil {
		slog.Error("failed to open upload directory", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	var (
		userService    = user.NewService(userStore.New(db))
		catalogService = catalog.NewService(catalogStore.New(db))
		receiptService = receipt.NewService(receiptStore.New(db))
		reportService  = report.NewService(reportStore.New(db))
		importService  = csvimport.NewService(receiptService, catalogService)
		exportService  = export.NewService(receiptService)
	)

	var (
		authnH   = authnHandler.NewHandler(userService, tokens)
		receiptH = receiptHandler.NewHandler(receiptService, files, cfg.Uploads.MaxBytes)
		catalogH = catalogHandler.NewHandler(catalogService)
		reportH  = reportHandler.NewHandler(reportService)
		importH  = importHandler.NewHandler(importService, cfg.Uploads.MaxBytes)
		exportH  = exportHandler.NewHandler(exportService)
	)

	router := apiHttp.New(tokens, authnH, receiptH, catalogH, reportH, importH, exportH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

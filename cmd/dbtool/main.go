package main

import (
	"database/sql"
	"flag"
	"fmt"
	"map-routing-service/internal/adapters/repositories"
	"map-routing-service/internal/config"
	"map-routing-service/internal/platform/db"
	"map-routing-service/internal/platform/obs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// dbtool creates the geocode cache schema ahead of deployment.
func main() {
	dialect := flag.String("dialect", db.DialectPostgres, "database dialect: postgres or sqlite")
	flag.Parse()

	config.LoadDotEnv()

	logger, err := obs.NewLogger(config.Get("APP_ENV", "production"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var conn *sql.DB
	switch *dialect {
	case db.DialectPostgres:
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			logger.Fatal("DATABASE_URL is required")
		}
		conn, err = db.Open(databaseURL)
	case db.DialectSQLite:
		conn, err = db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	default:
		logger.Fatal("unknown dialect", zap.String("dialect", *dialect))
	}
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	logger.Info("initializing database schema...", zap.String("dialect", *dialect))
	if err := repositories.InitSchema(conn, *dialect); err != nil {
		logger.Fatal("schema initialization failed", zap.Error(err))
	}
	logger.Info("schema ready")
}

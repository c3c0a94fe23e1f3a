package main

import (
	"os"

	"punchline/internal/config"
	"punchline/internal/db"
	"punchline/internal/logging"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

type CLI struct {
	File    string `arg:"" help:"CSV of kind,type,text rows." default:"data/cards.csv" type:"existingfile"`
	Migrate bool   `help:"Run auto-migrations before loading." default:"true" negatable:""`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("load-cards"),
		kong.Description("Upsert setup and punchline cards into the card library."),
		kong.UsageOnError(),
	)
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn("failed to load .env", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "load-cards")
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("database connection failed", "err", err)
	}
	if cli.Migrate {
		if err := db.Migrate(conn); err != nil {
			logger.Fatal("database migration failed", "err", err)
		}
	}
	loaded, err := db.LoadCardLibrary(conn, cli.File)
	if err != nil {
		logger.Fatal("failed to load cards", "file", cli.File, "loaded", loaded, "err", err)
	}
	logger.Info("loaded cards", "file", cli.File, "count", loaded)
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"punchline/internal/config"
	"punchline/internal/logging"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type CLI struct {
	Dir string `help:"Migrations directory." default:"db/migrations" type:"path"`

	Up     UpCmd     `cmd:"" default:"1" help:"Apply all pending migrations."`
	Down   DownCmd   `cmd:"" help:"Roll back migrations."`
	Create CreateCmd `cmd:"" help:"Create an empty up/down migration pair."`
}

type UpCmd struct{}

type DownCmd struct {
	Steps int `help:"Number of migrations to roll back." default:"1"`
}

type CreateCmd struct {
	Name string `arg:"" help:"Migration name, without spaces."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("migrate"),
		kong.Description("Manage the punchline database schema."),
		kong.UsageOnError(),
	)
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn("failed to load .env", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "migrate")
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	ctx.FatalIfErrorf(ctx.Run(&cli, cfg, logger))
}

func (UpCmd) Run(cli *CLI, cfg config.Config, logger *log.Logger) error {
	m, err := newMigrate(cli.Dir, cfg)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("database migration failed: %w", err)
	}
	logger.Info("database migrations applied")
	return nil
}

func (c DownCmd) Run(cli *CLI, cfg config.Config, logger *log.Logger) error {
	m, err := newMigrate(cli.Dir, cfg)
	if err != nil {
		return err
	}
	if err := m.Steps(-c.Steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("database rollback failed: %w", err)
	}
	logger.Info("database migrations rolled back", "steps", c.Steps)
	return nil
}

func (c CreateCmd) Run(cli *CLI, logger *log.Logger) error {
	if strings.ContainsAny(c.Name, " ") {
		return errors.New("migration name must not contain spaces")
	}
	version := time.Now().UTC().Format("20060102150405")
	base := fmt.Sprintf("%s_%s", version, c.Name)
	upPath := filepath.Join(cli.Dir, base+".up.sql")
	downPath := filepath.Join(cli.Dir, base+".down.sql")

	if err := os.MkdirAll(cli.Dir, 0o755); err != nil {
		return fmt.Errorf("create migrations dir: %w", err)
	}
	if err := writeFile(upPath, "-- up migration\n"); err != nil {
		return fmt.Errorf("create up migration: %w", err)
	}
	if err := writeFile(downPath, "-- down migration\n"); err != nil {
		return fmt.Errorf("create down migration: %w", err)
	}
	logger.Info("created migration", "up", upPath, "down", downPath)
	return nil
}

func newMigrate(dir string, cfg config.Config) (*migrate.Migrate, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration setup failed: %w", err)
	}
	return m, nil
}

func writeFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

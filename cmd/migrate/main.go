package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/bookstore-admin/pkg/config"
	"github.com/angelmondragon/bookstore-admin/pkg/db"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
	"github.com/angelmondragon/bookstore-admin/pkg/migrate"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

type options struct {
	cmd     migrate.Command
	dir     string
	name    string
	version string
}

func main() {
	_ = godotenv.Load()

	rawCmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	cmd, err := migrate.ParseCommand(*rawCmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts := options{cmd: cmd, dir: *dir, name: *name, version: *version}

	// files-only commands work without any config
	if !cmd.NeedsDB() {
		if err := runOffline(opts); err != nil {
			fmt.Fprintf(os.Stderr, "migrate %s failed: %v\n", cmd, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":       cfg.App.Env,
		"cmd":       string(cmd),
		"dir":       opts.dir,
		"db_driver": cfg.DB.Driver,
	})

	if err := runOnline(ctx, cfg, logg, opts); err != nil {
		logg.Error(ctx, "migrate failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migrate finished")
}

func runOffline(opts options) error {
	switch opts.cmd {
	case migrate.CommandCreate:
		if opts.name == "" {
			return errors.New("missing -name")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			return err
		}
		fmt.Println("created migration:", path)
	case migrate.CommandValidate:
		versions, err := migrate.Versions(opts.dir)
		if err != nil {
			return err
		}
		fmt.Printf("migration validation passed (%d files, latest %s)\n", len(versions), versions[len(versions)-1])
	}
	return nil
}

func runOnline(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts options) (err error) {
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, client.Close())
	}()

	if cfg.DB.IsSQLite() {
		if opts.cmd != migrate.CommandUp {
			return fmt.Errorf("%s needs postgres; sqlite only supports up", opts.cmd)
		}
		return migrate.AutoMigrateModels(client.DB())
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("sql database: %w", err)
	}
	runner, err := migrate.NewRunner(sqlDB, opts.dir)
	if err != nil {
		return err
	}

	if opts.cmd == migrate.CommandVersion {
		return runner.ToVersion(ctx, opts.version)
	}
	return runner.Exec(ctx, opts.cmd)
}

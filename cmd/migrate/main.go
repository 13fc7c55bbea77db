// Command migrate applies schema migrations to one of the two backing
// stores. The chain store (ClickHouse) and the content store (Postgres)
// keep their SQL under migrations/<store>.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type storeTarget struct {
	defaultDSN string
	dir        string
	// extraQuery is appended to the DSN; the clickhouse driver needs
	// x-multi-statement to run files with several statements.
	extraQuery string
}

var stores = map[string]storeTarget{
	"chain": {
		defaultDSN: "clickhouse://localhost:9000/default",
		dir:        "migrations/clickhouse",
		extraQuery: "x-multi-statement=true",
	},
	"content": {
		defaultDSN: "pgx5://localhost:5432/teiki",
		dir:        "migrations/postgres",
	},
}

var config struct {
	Store string `long:"store" env:"TEIKI_MIGRATE_STORE" description:"target store (chain or content)" default:"chain"`
	DSN   string `long:"dsn" env:"TEIKI_MIGRATE_DSN" description:"override the store's default DSN"`
	Dir   string `long:"dir" env:"TEIKI_MIGRATE_DIR" description:"override the store's migrations directory"`
	Down  bool   `long:"down" description:"roll back all migrations instead of applying them"`
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Fatal("Migration run failed", zap.String("store", config.Store), zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, ok := stores[config.Store]
	if !ok {
		return fmt.Errorf("unknown store %q", config.Store)
	}

	dsn := config.DSN
	if dsn == "" {
		dsn = target.defaultDSN
	}
	if target.extraQuery != "" {
		sep := "?"
		if u, err := url.Parse(dsn); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		dsn += sep + target.extraQuery
	}

	dir := config.Dir
	if dir == "" {
		dir = target.dir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat migrations dir %s: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(abs), dsn)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("Migration source close error", zap.Error(srcErr))
		}
		if dbErr != nil {
			logger.Warn("Migration database close error", zap.Error(dbErr))
		}
	}()

	apply := m.Up
	if config.Down {
		apply = m.Down
	}
	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No migrations to apply", zap.String("store", config.Store))
			return nil
		}
		return err
	}

	logger.Info("Migrations applied", zap.String("store", config.Store), zap.String("dir", abs))
	return nil
}

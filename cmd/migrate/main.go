package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"appointment-booking/internal/pkg/config"
	"appointment-booking/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// usage: migrate [up|down|force <version>|version]
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fail("load .env", err)
	}
	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		fail("process env config", err)
	}

	m, db, err := migrations.New(dbCfg.BuildDSN())
	if err != nil {
		fail("open migrator", err)
	}
	defer func() {
		_, _ = m.Close()
		_ = db.Close()
	}()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		if len(os.Args) < 3 {
			fail("force", errors.New("version is required"))
		}
		version, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			fail("force", convErr)
		}
		err = m.Force(version)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			fail("version", verr)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return
	default:
		fail("usage", fmt.Errorf("unknown command %q", cmd))
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fail(cmd, err)
	}
	slog.Info("migrations complete", "command", cmd)
}

func fail(step string, err error) {
	slog.Error("migration failed", "step", step, "error", err)
	os.Exit(1)
}

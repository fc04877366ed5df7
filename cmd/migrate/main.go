package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/config"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel, cfg.AppEnv)

	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}

	dir, err := findMigrationsDir()
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New("file://"+dir, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to open migrations: %v", err)
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "down":
		err = m.Down()
	default:
		direction = "up"
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration %s failed: %v", direction, err)
	}
	log.WithFields(logrus.Fields{"direction": direction, "source": dir}).Info("Migrations applied")
}

// findMigrationsDir walks up from the working directory, then looks next
// to the binary, so the command works from the repo root, a subpackage,
// or a deployed artifact.
func findMigrationsDir() (string, error) {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		dir := cwd
		for i := 0; i < 6; i++ {
			candidates = append(candidates, filepath.Join(dir, "migrations"))
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if exe, err := os.Executable(); err == nil {
		base := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(base, "migrations"),
			filepath.Join(base, "..", "migrations"),
			filepath.Join(base, "..", "..", "migrations"),
		)
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", errors.New("migrations directory not found")
}

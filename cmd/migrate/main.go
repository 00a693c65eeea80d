package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const envDatabaseDSN = "DATABASE_DSN"

func main() {
	var (
		dsn     = flag.String("dsn", "", "Database connection string")
		path    = flag.String("path", "migrations", "Migrations directory")
		up      = flag.Bool("up", false, "Apply all pending migrations")
		down    = flag.Int("down", 0, "Roll back the given number of migrations")
		version = flag.Bool("version", false, "Print the current migration version")
	)
	flag.Parse()

	if *dsn == "" {
		*dsn = os.Getenv(envDatabaseDSN)
	}
	if *dsn == "" {
		log.Fatalf("database connection string required: use -dsn flag or %s env var", envDatabaseDSN)
	}

	m, err := migrate.New("file://"+*path, *dsn)
	if err != nil {
		log.Fatalf("failed to initialize migrations: %v", err)
	}
	defer m.Close()

	switch {
	case *up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration failed: %v", err)
		}
		fmt.Println("migrations applied")

	case *down > 0:
		if err := m.Steps(-*down); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		fmt.Printf("rolled back %d migration(s)\n", *down)

	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to read version: %v", err)
		}
		fmt.Printf("version: %d dirty: %v\n", v, dirty)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

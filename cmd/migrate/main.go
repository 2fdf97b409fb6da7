package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gravadigital/proagil-api/internal/config"
	"github.com/gravadigital/proagil-api/internal/logger"
	"github.com/gravadigital/proagil-api/internal/storage/migrations"
	"github.com/gravadigital/proagil-api/internal/storage/postgres"
)

func main() {
	os.Exit(run())
}

func run() int {
	rollback := flag.Bool("rollback", false, "Revert the most recent schema migration")
	status := flag.Bool("status", false, "List schema migrations and whether they are applied")
	flag.Parse()

	cfg := config.Load()

	logger.Initialize(cfg.Log.Level)
	log := logger.Migration()

	if *rollback && *status {
		log.Error("-rollback and -status cannot be combined")
		return 2
	}

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to catalogue database", "error", err)
		return 1
	}
	defer postgres.Close(db)

	switch {
	case *status:
		statuses, err := migrations.Status(db)
		if err != nil {
			log.Error("Failed to read schema status", "error", err)
			return 1
		}
		printStatus(statuses)

	case *rollback:
		if err := migrations.RollbackMigration(db); err != nil {
			log.Error("Schema rollback failed", "error", err)
			return 1
		}

	default:
		if err := migrations.RunMigrations(db); err != nil {
			log.Error("Schema migration failed", "error", err)
			return 1
		}
	}
	return 0
}

func printStatus(statuses []migrations.MigrationStatus) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAPPLIED AT")
	for _, s := range statuses {
		appliedAt := "pending"
		if s.Applied {
			appliedAt = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, appliedAt)
	}
	w.Flush()
}

package migrations

import (
	"fmt"
	"time"

	"github.com/gravadigital/proagil-api/internal/logger"
	"gorm.io/gorm"
)

// Migration is one versioned change to the catalogue schema. IDs sort in
// the order the migrations are applied.
type Migration struct {
	ID   string
	Name string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

// GetMigrations returns all available migrations in order
func GetMigrations() []Migration {
	return []Migration{
		{
			ID:   "001",
			Name: "create_core_tables",
			Up:   migration001Up,
			Down: migration001Down,
		},
		{
			ID:   "002",
			Name: "create_constraints",
			Up:   migration002Up,
			Down: migration002Down,
		},
		{
			ID:   "003",
			Name: "create_indexes",
			Up:   migration003Up,
			Down: migration003Down,
		},
		{
			ID:   "004",
			Name: "insert_sample_data",
			Up:   migration004Up,
			Down: migration004Down,
		},
	}
}

// MigrationStatus reports whether a migration has been applied and when
type MigrationStatus struct {
	Migration
	Applied   bool
	AppliedAt time.Time
}

type appliedMigration struct {
	ID        string
	AppliedAt time.Time
}

// RunMigrations applies every migration not yet recorded in schema_migrations,
// each in its own transaction
func RunMigrations(db *gorm.DB) error {
	log := logger.Migration()

	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	var ran, skipped int
	for _, migration := range GetMigrations() {
		if _, ok := applied[migration.ID]; ok {
			log.Debug("Schema migration already applied", "id", migration.ID, "name", migration.Name)
			skipped++
			continue
		}

		log.Info("Applying schema migration", "id", migration.ID, "name", migration.Name)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("failed to run migration %s (%s): %w", migration.ID, migration.Name, err)
			}

			return recordMigration(tx, migration.ID, migration.Name)
		})
		if err != nil {
			log.Error("Schema migration failed", "id", migration.ID, "name", migration.Name, "error", err)
			return err
		}
		ran++
	}

	log.Info("Catalogue schema is up to date", "applied", ran, "skipped", skipped)
	return nil
}

// Status lists every known migration with its applied state, in order
func Status(db *gorm.DB) ([]MigrationStatus, error) {
	if err := createMigrationsTable(db); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return nil, err
	}

	migrations := GetMigrations()
	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, migration := range migrations {
		at, ok := applied[migration.ID]
		statuses = append(statuses, MigrationStatus{Migration: migration, Applied: ok, AppliedAt: at})
	}
	return statuses, nil
}

// createMigrationsTable creates the migrations tracking table
func createMigrationsTable(db *gorm.DB) error {
	return db.Exec(`
        CREATE TABLE IF NOT EXISTS schema_migrations (
            id VARCHAR(10) PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )
    `).Error
}

// appliedMigrations reads the recorded migration ids with their apply time
func appliedMigrations(db *gorm.DB) (map[string]time.Time, error) {
	var rows []appliedMigration
	if err := db.Raw("SELECT id, applied_at FROM schema_migrations ORDER BY id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	applied := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		applied[row.ID] = row.AppliedAt
	}
	return applied, nil
}

// recordMigration records that a migration has been applied
func recordMigration(db *gorm.DB, migrationID, name string) error {
	return db.Exec("INSERT INTO schema_migrations (id, name) VALUES (?, ?)", migrationID, name).Error
}

// RollbackMigration reverts the applied migration with the highest id
func RollbackMigration(db *gorm.DB) error {
	log := logger.Migration()

	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return fmt.Errorf("no migrations to rollback")
	}

	migrations := GetMigrations()
	var target *Migration
	for i := len(migrations) - 1; i >= 0; i-- {
		if _, ok := applied[migrations[i].ID]; ok {
			target = &migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("applied migrations are unknown to this build")
	}

	log.Info("Reverting schema migration", "id", target.ID, "name", target.Name)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return fmt.Errorf("failed to rollback migration %s (%s): %w", target.ID, target.Name, err)
		}

		return tx.Exec("DELETE FROM schema_migrations WHERE id = ?", target.ID).Error
	})
	if err != nil {
		log.Error("Schema rollback failed", "id", target.ID, "error", err)
		return err
	}

	log.Info("Schema migration reverted", "id", target.ID)
	return nil
}

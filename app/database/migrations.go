package database

import (
	"database/sql"
	"log"
)

// RunMigrations ensures the expense table and its indexes exist.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	queries := []string{
		`CREATE TABLE IF NOT EXISTS expense (
			id SERIAL PRIMARY KEY,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			serial TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			shop TEXT NOT NULL DEFAULT '',
			warranty INTEGER NOT NULL DEFAULT 0,
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			trashed_at TIMESTAMP WITH TIME ZONE
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating expense table: %v", err)
			return err
		}
	}

	migrations := []string{
		`CREATE INDEX IF NOT EXISTS idx_expense_created_at ON expense(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_expense_trashed_at ON expense(trashed_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			log.Printf("Error running expense migration: %v", err)
			// Continue as some might be duplicate index errors depending on PG version
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// InitDB opens (creating if necessary) the single-file SQLite database
// at path and ensures the schema exists. Foreign keys are switched on
// for every connection so deleting a project cascades to its tasks.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		status TEXT NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create projects table: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		projectId TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL CHECK(status IN ('To Do', 'In Progress', 'Done')),
		deadline TEXT,
		tags TEXT,
		completed INTEGER NOT NULL DEFAULT 0,
		comments TEXT,
		FOREIGN KEY (projectId) REFERENCES projects(id) ON DELETE CASCADE
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks table: %w", err)
	}

	log.Info().Str("path", path).Msg("database initialized")
	return db, nil
}

package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// ProjectStore handles database operations for projects. Task cleanup
// on delete is the schema's job: the foreign key cascades.
type ProjectStore struct {
	db *sql.DB
}

func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create inserts a new project and assigns its id.
func (s *ProjectStore) Create(p *Project) error {
	p.ID = uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, description) VALUES (?, ?, ?)`,
		p.ID, p.Name, p.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	return nil
}

// List returns every project.
func (s *ProjectStore) List() ([]Project, error) {
	rows, err := s.db.Query(`SELECT id, name, description FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var (
			p    Project
			desc sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.Description = desc.String
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// Update rewrites a project's fields, or returns ErrNotFound.
func (s *ProjectStore) Update(p *Project) error {
	res, err := s.db.Exec(
		`UPDATE projects SET name = ?, description = ? WHERE id = ?`,
		p.Name, p.Description, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return requireRow(res)
}

// Delete removes a project and, through the cascade, its tasks.
func (s *ProjectStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return requireRow(res)
}

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TaskStore handles database operations for tasks. Tags are a []string
// everywhere above this layer; the comma-flattened form the table holds
// never leaves it.
type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func flattenTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(flat string) []string {
	if flat == "" {
		return []string{}
	}
	return strings.Split(flat, ",")
}

// Create inserts a new task and assigns its id. A projectId that does
// not reference an existing project returns ErrMissingReference.
func (s *TaskStore) Create(t *Task) error {
	t.ID = uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO tasks (id, projectId, title, description, status, deadline, tags, completed, comments)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Deadline,
		flattenTags(t.Tags), t.Completed, t.Comments,
	)
	if err != nil {
		err = translateConstraint(err)
		if errors.Is(err, ErrMissingReference) {
			return err
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// List returns every task with its tags reconstructed.
func (s *TaskStore) List() ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, projectId, title, description, status, deadline, tags, completed, comments FROM tasks`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

func scanTask(rows *sql.Rows) (*Task, error) {
	var (
		t                         Task
		desc, deadline, tags, com sql.NullString
	)
	err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &desc, &t.Status, &deadline, &tags, &t.Completed, &com)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	t.Description = desc.String
	t.Deadline = deadline.String
	t.Tags = splitTags(tags.String)
	t.Comments = com.String
	return &t, nil
}

// Update rewrites a task's fields, or returns ErrNotFound.
func (s *TaskStore) Update(t *Task) error {
	res, err := s.db.Exec(
		`UPDATE tasks
		 SET projectId = ?, title = ?, description = ?, status = ?, deadline = ?, tags = ?, completed = ?, comments = ?
		 WHERE id = ?`,
		t.ProjectID, t.Title, t.Description, t.Status, t.Deadline,
		flattenTags(t.Tags), t.Completed, t.Comments, t.ID,
	)
	if err != nil {
		err = translateConstraint(err)
		if errors.Is(err, ErrMissingReference) {
			return err
		}
		return fmt.Errorf("failed to update task: %w", err)
	}

	return requireRow(res)
}

// Delete removes a task, or returns ErrNotFound.
func (s *TaskStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return requireRow(res)
}

// FindDue returns every task whose deadline falls on target (a
// 2006-01-02 date), joined with its project's name. Tasks whose project
// is gone still appear, with a nil ProjectName.
func (s *TaskStore) FindDue(target string) ([]DueTask, error) {
	rows, err := s.db.Query(
		`SELECT t.title, t.description, t.status, t.deadline, p.name
		 FROM tasks t
		 LEFT JOIN projects p ON t.projectId = p.id
		 WHERE DATE(t.deadline) = ?`,
		target,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query due tasks: %w", err)
	}
	defer rows.Close()

	due := []DueTask{}
	for rows.Next() {
		var (
			d           DueTask
			desc        sql.NullString
			projectName sql.NullString
		)
		if err := rows.Scan(&d.Title, &desc, &d.Status, &d.Deadline, &projectName); err != nil {
			return nil, fmt.Errorf("failed to scan due task: %w", err)
		}
		d.Description = desc.String
		if projectName.Valid {
			name := projectName.String
			d.ProjectName = &name
		}
		due = append(due, d)
	}

	return due, rows.Err()
}

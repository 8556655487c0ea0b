package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// UserStore handles database operations for users. Reads never select
// the password column; GetByEmail is the one exception, for the login
// check.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user and assigns its id. The Password field must
// already be hashed. A taken email returns ErrDuplicate.
func (s *UserStore) Create(u *User) error {
	u.ID = uuid.NewString()
	if u.Status == "" {
		u.Status = "active"
	}

	_, err := s.db.Exec(
		`INSERT INTO users (id, name, email, password, role, status) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Password, u.Role, u.Status,
	)
	if err != nil {
		err = translateConstraint(err)
		if errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// List returns every user without the password hash.
func (s *UserStore) List() ([]User, error) {
	rows, err := s.db.Query(`SELECT id, name, email, role, status FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// GetByEmail returns the user including the stored hash, or ErrNotFound.
func (s *UserStore) GetByEmail(email string) (*User, error) {
	row := s.db.QueryRow(
		`SELECT id, name, email, password, role, status FROM users WHERE email = ?`, email,
	)

	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// Update rewrites a user's profile fields. An empty Password keeps the
// stored hash; a non-empty one must already be hashed. Unknown ids
// return ErrNotFound.
func (s *UserStore) Update(u *User) error {
	var (
		res sql.Result
		err error
	)
	if u.Password != "" {
		res, err = s.db.Exec(
			`UPDATE users SET name = ?, email = ?, password = ?, role = ?, status = ? WHERE id = ?`,
			u.Name, u.Email, u.Password, u.Role, u.Status, u.ID,
		)
	} else {
		res, err = s.db.Exec(
			`UPDATE users SET name = ?, email = ?, role = ?, status = ? WHERE id = ?`,
			u.Name, u.Email, u.Role, u.Status, u.ID,
		)
	}
	if err != nil {
		err = translateConstraint(err)
		if errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return requireRow(res)
}

// Delete removes a user, or returns ErrNotFound.
func (s *UserStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return requireRow(res)
}

// requireRow converts a zero-row mutation into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

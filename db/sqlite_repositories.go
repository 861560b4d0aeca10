package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/davidkairu/TaskManagerApp/models"
)

// SQLiteUserRepository implements the UserRepository interface for SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new user and returns its id. Username uniqueness is
// enforced by the UNIQUE constraint rather than a pre-check, so two
// concurrent registrations can't both succeed.
func (r *SQLiteUserRepository) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`,
		username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("error inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading inserted user id: %w", err)
	}
	return id, nil
}

// FindByUsername finds a user by username
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = ?`, username)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &user, nil
}

// Count returns the number of registered users
func (r *SQLiteUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// SQLiteTaskRepository implements the TaskRepository interface for SQLite
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLiteTaskRepository
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteTaskRepository) Close() error {
	return r.db.Close()
}

// Insert creates a task for ownerID and returns its id
func (r *SQLiteTaskRepository) Insert(ctx context.Context, name string, priority int, ownerID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (name, priority, user_id) VALUES (?, ?, ?)`,
		name, priority, ownerID)
	if err != nil {
		return 0, fmt.Errorf("error inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading inserted task id: %w", err)
	}
	return id, nil
}

// FindByID finds a task by id, scoped to ownerID. A task owned by
// someone else yields ErrNotFound, same as a missing one.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, priority, user_id, completed FROM tasks WHERE id = ? AND user_id = ?`,
		id, ownerID)

	var task models.Task
	err := row.Scan(&task.ID, &task.Name, &task.Priority, &task.OwnerID, &task.Completed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning task: %w", err)
	}
	return &task, nil
}

// FindAllForOwner lists ownerID's tasks ascending by priority, ties
// broken by insertion order.
func (r *SQLiteTaskRepository) FindAllForOwner(ctx context.Context, ownerID int64) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, priority, user_id, completed FROM tasks WHERE user_id = ? ORDER BY priority, id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Name, &task.Priority, &task.OwnerID, &task.Completed); err != nil {
			return nil, fmt.Errorf("error scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// Update rewrites name and priority. Zero rows affected (missing or
// not owned) is not an error.
func (r *SQLiteTaskRepository) Update(ctx context.Context, id, ownerID int64, name string, priority int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET name = ?, priority = ? WHERE id = ? AND user_id = ?`,
		name, priority, id, ownerID)
	if err != nil {
		return fmt.Errorf("error updating task: %w", err)
	}
	return nil
}

// ToggleCompleted flips the completed flag. No-op if not owned.
func (r *SQLiteTaskRepository) ToggleCompleted(ctx context.Context, id, ownerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = NOT completed WHERE id = ? AND user_id = ?`,
		id, ownerID)
	if err != nil {
		return fmt.Errorf("error toggling task: %w", err)
	}
	return nil
}

// Delete removes the task. No-op if not owned.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id, ownerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`,
		id, ownerID)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}

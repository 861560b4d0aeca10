package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/davidkairu/TaskManagerApp/models"
)

var (
	// ErrNotFound is returned when a row does not exist, or exists but
	// is not owned by the caller. The two cases are deliberately
	// indistinguishable so that task ids can't be probed.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// UserRepository defines the interface for credential storage
type UserRepository interface {
	Repository
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// TaskRepository defines the interface for task storage. All methods
// are owner-scoped: mutations on rows not owned by ownerID are silent
// no-ops.
type TaskRepository interface {
	Repository
	Insert(ctx context.Context, name string, priority int, ownerID int64) (int64, error)
	FindByID(ctx context.Context, id, ownerID int64) (*models.Task, error)
	FindAllForOwner(ctx context.Context, ownerID int64) ([]models.Task, error)
	Update(ctx context.Context, id, ownerID int64, name string, priority int) error
	ToggleCompleted(ctx context.Context, id, ownerID int64) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// RepositoryFactory creates repositories backed by a shared SQLite handle
type RepositoryFactory struct {
	DB *sql.DB
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(db *sql.DB) *RepositoryFactory {
	return &RepositoryFactory{DB: db}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	return NewSQLiteUserRepository(f.DB)
}

// NewTaskRepository creates a new task repository
func (f *RepositoryFactory) NewTaskRepository() TaskRepository {
	return NewSQLiteTaskRepository(f.DB)
}

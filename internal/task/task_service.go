package task

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/davidkairu/TaskManagerApp/db"
	"github.com/davidkairu/TaskManagerApp/models"
)

// ErrValidation is returned when a task form is missing a name or has
// a non-numeric priority.
var ErrValidation = errors.New("task name and numeric priority are required")

var validate = validator.New()

// TaskForm is the raw add/edit form submission. Priority stays a
// string until validated; the numeric tag rejects garbage before
// ParseInt runs.
type TaskForm struct {
	Name     string `validate:"required"`
	Priority string `validate:"required,numeric"`
}

// ParsePriority validates the form and returns the numeric priority.
func (f TaskForm) ParsePriority() (int, error) {
	if err := validate.Struct(f); err != nil {
		return 0, ErrValidation
	}
	priority, err := strconv.Atoi(f.Priority)
	if err != nil {
		return 0, ErrValidation
	}
	return priority, nil
}

// TaskService performs owner-scoped task operations. Every method
// takes the caller's Identity; task ids alone are never trusted.
type TaskService struct {
	tasks  db.TaskRepository
	writer *db.Writer
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks db.TaskRepository, writer *db.Writer) *TaskService {
	return &TaskService{tasks: tasks, writer: writer}
}

// Add validates the form and inserts a task for the caller.
func (s *TaskService) Add(ctx context.Context, identity models.Identity, form TaskForm) (int64, error) {
	priority, err := form.ParsePriority()
	if err != nil {
		return 0, err
	}
	return s.writer.InsertTask(s.tasks, ctx, form.Name, priority, identity.UserID)
}

// ListForOwner returns the caller's tasks ascending by priority.
func (s *TaskService) ListForOwner(ctx context.Context, identity models.Identity) ([]models.Task, error) {
	return s.tasks.FindAllForOwner(ctx, identity.UserID)
}

// Get fetches one of the caller's tasks, for pre-filling the edit
// form. db.ErrNotFound covers both missing and not-owned.
func (s *TaskService) Get(ctx context.Context, identity models.Identity, id int64) (*models.Task, error) {
	return s.tasks.FindByID(ctx, id, identity.UserID)
}

// Update rewrites a task's name and priority. Silent no-op when the
// task isn't the caller's.
func (s *TaskService) Update(ctx context.Context, identity models.Identity, id int64, form TaskForm) error {
	priority, err := form.ParsePriority()
	if err != nil {
		return err
	}
	return s.writer.UpdateTask(s.tasks, ctx, id, identity.UserID, form.Name, priority)
}

// ToggleCompleted flips a task's completion flag. No-op when not owned.
func (s *TaskService) ToggleCompleted(ctx context.Context, identity models.Identity, id int64) error {
	return s.writer.ToggleTask(s.tasks, ctx, id, identity.UserID)
}

// Delete removes a task. No-op when not owned, including repeat deletes.
func (s *TaskService) Delete(ctx context.Context, identity models.Identity, id int64) error {
	return s.writer.DeleteTask(s.tasks, ctx, id, identity.UserID)
}

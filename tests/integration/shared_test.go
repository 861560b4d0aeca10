package integration

import (
	"strconv"
	"testing"

	"github.com/davidkairu/TaskManagerApp/db"
	"github.com/davidkairu/TaskManagerApp/internal/auth"
	"github.com/davidkairu/TaskManagerApp/internal/task"
	"github.com/davidkairu/TaskManagerApp/tests/testutils"
)

type testEnv struct {
	userRepo    db.UserRepository
	taskRepo    db.TaskRepository
	writer      *db.Writer
	authService *auth.AuthService
	taskService *task.TaskService
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func setupEnv(t *testing.T) *testEnv {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	t.Cleanup(cleanup)

	writer := db.NewWriter()
	t.Cleanup(writer.Stop)

	userRepo := factory.NewUserRepository()
	taskRepo := factory.NewTaskRepository()

	return &testEnv{
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		writer:      writer,
		authService: auth.NewAuthService(userRepo, writer),
		taskService: task.NewTaskService(taskRepo, writer),
	}
}

package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/davidkairu/TaskManagerApp/db"
	"github.com/davidkairu/TaskManagerApp/models"
)

// CreateTestUser inserts a user with a bcrypt-hashed password and
// returns the resulting identity.
func CreateTestUser(t *testing.T, users db.UserRepository, username, password string) models.Identity {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	id, err := users.Create(context.Background(), username, string(hash))
	require.NoError(t, err)

	return models.Identity{UserID: id, Username: username}
}

// CreateTestTask inserts a task owned by the given identity.
func CreateTestTask(t *testing.T, tasks db.TaskRepository, owner models.Identity, name string, priority int) int64 {
	id, err := tasks.Insert(context.Background(), name, priority, owner.UserID)
	require.NoError(t, err)
	return id
}

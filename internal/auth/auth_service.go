package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/davidkairu/TaskManagerApp/db"
	"github.com/davidkairu/TaskManagerApp/models"
)

// ErrInvalidCredentials covers both "no such user" and "wrong
// password"; login failures are never differentiated.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrValidation is returned when a registration form is incomplete.
var ErrValidation = errors.New("username and password are required")

var validate = validator.New()

// Credentials is a register/login form submission.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// AuthService registers accounts and verifies login attempts.
type AuthService struct {
	users  db.UserRepository
	writer *db.Writer
}

// NewAuthService creates a new AuthService
func NewAuthService(users db.UserRepository, writer *db.Writer) *AuthService {
	return &AuthService{users: users, writer: writer}
}

// Register creates a new account with a bcrypt-hashed password.
// Returns db.ErrDuplicateUsername when the username is taken.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	creds := Credentials{Username: username, Password: password}
	if err := validate.Struct(creds); err != nil {
		return ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	_, err = s.writer.CreateUser(s.users, ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, db.ErrDuplicateUsername) {
			return db.ErrDuplicateUsername
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// Login verifies the credentials and returns the caller's identity.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &models.Identity{UserID: user.ID, Username: user.Username}, nil
}

package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopstock/shopstock/internal/seed"
	"github.com/shopstock/shopstock/internal/user/domain"
	"github.com/shopstock/shopstock/pkg/auth"
	"github.com/shopstock/shopstock/pkg/logger"
)

// RegisterUserCommand represents the command to register a new shop owner
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo   domain.UserRepository
	seeder *seed.Seeder
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository, seeder *seed.Seeder) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, seeder: seeder}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	// Validation
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !strings.Contains(cmd.Email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	// Check if the email is already taken
	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, fmt.Errorf("email already exists")
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      cmd.Name,
		Email:     cmd.Email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Seed the default catalog and demo history for the new shop.
	// A failure here is not fatal for the signup: the shop just
	// starts out emptier than intended.
	seeded, err := h.seeder.EnsureSeeded(user.ID)
	if err != nil {
		logger.Logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("Failed to seed new shop")
	} else if seeded {
		user.Initialized = true
	}

	return user, nil
}

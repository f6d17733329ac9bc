package command

import (
	"context"
	"fmt"

	"github.com/shopstock/shopstock/internal/seed"
	"github.com/shopstock/shopstock/internal/store"
	"github.com/shopstock/shopstock/internal/user/domain"
	"github.com/shopstock/shopstock/pkg/auth"
	"github.com/shopstock/shopstock/pkg/logger"
)

// LoginUserCommand represents the command to log a shop owner in
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login: credential check, token
// issuance, first-login seeding and store activation.
type LoginUserHandler struct {
	repo   domain.UserRepository
	seeder *seed.Seeder
	stores *store.Manager
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, seeder *seed.Seeder, stores *store.Manager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, seeder: seeder, stores: stores}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	// Validation
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	user, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	// First sign-in of a shop that was never seeded (e.g. the seeding
	// during signup failed half-way is NOT retried; only an unset
	// marker triggers seeding here).
	if !user.Initialized {
		if seeded, err := h.seeder.EnsureSeeded(user.ID); err != nil {
			logger.Logger.Error().
				Err(err).
				Str("user_id", user.ID).
				Msg("Failed to seed shop on first login")
		} else if seeded {
			logger.Logger.Info().
				Str("user_id", user.ID).
				Msg("Seeded default catalog on first login")
		}
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Activate the session store: load the catalog and sales history
	// into memory for this user.
	if _, err := h.stores.Activate(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to load shop data: %w", err)
	}

	return &LoginResponse{Token: token, User: user}, nil
}

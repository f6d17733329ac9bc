package command

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/store"
)

// LogoutUserCommand represents the command to log a shop owner out
type LogoutUserCommand struct {
	UserID string
}

// LogoutUserHandler disposes the user's session store on logout
type LogoutUserHandler struct {
	stores *store.Manager
}

// NewLogoutUserHandler creates a new logout user handler
func NewLogoutUserHandler(stores *store.Manager) *LogoutUserHandler {
	return &LogoutUserHandler{stores: stores}
}

// Handle executes the logout user command
func (h *LogoutUserHandler) Handle(cmd LogoutUserCommand) error {
	if cmd.UserID == "" {
		return fmt.Errorf("invalid user id")
	}
	h.stores.Dispose(cmd.UserID)
	return nil
}

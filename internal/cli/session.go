// internal/cli/session.go
package cli

import (
	"github.com/google/uuid"

	"github.com/gfranca/mercado/internal/models"
)

// Session carries the authenticated actor through the menu handlers; there
// is no process-wide logged-in state.
type Session struct {
	ID   uuid.UUID
	User *models.User
}

func NewSession(user *models.User) *Session {
	return &Session{
		ID:   uuid.New(),
		User: user,
	}
}

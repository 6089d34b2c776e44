package ports

import (
	"context"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// FindByEmail expects an already normalised email. Returns domain.ErrUserNotFound on a miss.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create assigns the user's ID. Returns domain.ErrEmailInUse when the email is taken.
	Create(ctx context.Context, user *domain.User) error
}

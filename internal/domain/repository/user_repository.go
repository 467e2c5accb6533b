package repository

import (
	"context"

	"github.com/oksasatya/planify/internal/domain/entity"
)

// UserRepository defines the persistence operations of the credential store.
// Email lookups expect an already-normalized (trimmed, lowercased) address.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

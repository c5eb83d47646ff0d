package account

import (
	"context"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, account *UserAccount) error

	// Update replaces an existing account
	Update(ctx context.Context, id kernel.UserID, account *UserAccount) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id kernel.UserID) (*UserAccount, error)

	// GetByEmail retrieves an account by its normalized email
	GetByEmail(ctx context.Context, email kernel.Email) (*UserAccount, error)

	// List returns every account in registration order
	List(ctx context.Context) ([]UserAccount, error)
}

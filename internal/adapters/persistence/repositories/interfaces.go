package repositories

import (
	"context"

	"staffdesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TokenRepository defines personal access token repository interface
type TokenRepository interface {
	Create(ctx context.Context, token *models.PersonalAccessToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PersonalAccessToken, error)
	Delete(ctx context.Context, id uint) error
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	List(ctx context.Context) ([]*models.Employee, error)
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uint) error
	// ExistsByEmail ignores the row with excludeID; pass 0 to check every row.
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

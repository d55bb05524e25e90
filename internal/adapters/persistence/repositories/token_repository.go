package repositories

import (
	"context"

	"staffdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// tokenRepository implements TokenRepository interface
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new personal access token repository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Create stores a new token
func (r *tokenRepository) Create(ctx context.Context, token *models.PersonalAccessToken) error {
	return translateError(r.db.WithContext(ctx).Create(token).Error)
}

// GetByTokenHash gets a token by its hash
func (r *tokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.PersonalAccessToken, error) {
	var token models.PersonalAccessToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &token, nil
}

// Delete removes a single token; other tokens of the same user are untouched
func (r *tokenRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PersonalAccessToken{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

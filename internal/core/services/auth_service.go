package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/core/domain"
	"staffdesk/internal/pkg/logger"
	"staffdesk/internal/pkg/password"
)

// TokenName is the label stored with every token issued at login
const TokenName = "auth-token"

// AuthService handles authentication business logic
type AuthService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	validator *Validator
	log       logger.Logger

	// compared against when the email is unknown so both failures cost one bcrypt check
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	validator *Validator,
	log logger.Logger,
	bcryptCost int,
) *AuthService {
	dummyHash, err := password.HashWithCost("invalid-password-placeholder", bcryptCost)
	if err != nil {
		dummyHash, _ = password.Hash("invalid-password-placeholder")
	}

	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		validator: validator,
		log:       log.With("component", "auth_service"),
		dummyHash: dummyHash,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token string              `json:"token"`
	User  *models.UserSummary `json:"user"`
}

// Principal is the caller resolved from a bearer token
type Principal struct {
	User  *models.User
	Token *models.PersonalAccessToken
}

// Login checks credentials and issues a new token.
// Unknown email and wrong password both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	// 1. Request shape
	input.Email = strings.TrimSpace(input.Email)
	verr := domain.NewValidationError()
	if err := s.validator.Struct(input, verr); err != nil {
		return nil, err
	}
	if verr := verr.OrNil(); verr != nil {
		return nil, verr
	}

	// 2. Find user by exact email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		// Same bcrypt work as a real check
		password.Verify(input.Password, s.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Issue token
	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)

	return &LoginResult{
		Token: token,
		User:  user.ToSummary(),
	}, nil
}

// IssueToken creates a new token for user and returns its plaintext value.
// Only the hash is stored.
func (s *AuthService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	plain, err := password.GenerateToken()
	if err != nil {
		return "", err
	}

	record := &models.PersonalAccessToken{
		UserID:    user.ID,
		Name:      TokenName,
		TokenHash: password.HashToken(plain),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	return plain, nil
}

// Authenticate resolves a plaintext bearer token to its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	record, err := s.tokenRepo.GetByTokenHash(ctx, password.HashToken(token))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find token owner: %w", err)
	}

	return &Principal{User: user, Token: record}, nil
}

// Logout revokes only the token the request was made with
func (s *AuthService) Logout(ctx context.Context, principal *Principal) error {
	if err := s.tokenRepo.Delete(ctx, principal.Token.ID); err != nil {
		// Already gone counts as revoked
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("revoke token: %w", err)
	}

	s.log.Info(ctx, "user logged out", "user_id", principal.User.ID, "token_id", principal.Token.ID)
	return nil
}

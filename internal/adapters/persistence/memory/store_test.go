package memory

import (
	"context"
	"testing"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployee(name, email string) *models.Employee {
	e := &models.Employee{}
	e.Apply(domain.EmployeeFields{
		Name:     name,
		Email:    email,
		Position: "Engineer",
		Salary:   1000,
		Status:   domain.EmployeeActive,
	})
	return e
}

func TestEmployees_CreateAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Employees()

	first := newEmployee("Alice Johnson", "alice@company.com")
	second := newEmployee("Bob Smith", "bob@company.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alice Johnson", list[0].Name)
	assert.Equal(t, "Bob Smith", list[1].Name)
}

func TestEmployees_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Employees()

	alice := newEmployee("Alice Johnson", "alice@company.com")
	bob := newEmployee("Bob Smith", "bob@company.com")
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	err := repo.Create(ctx, newEmployee("Alice Again", "alice@company.com"))
	assert.ErrorIs(t, err, repositories.ErrDuplicateEntry)

	bob.Email = "alice@company.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), repositories.ErrDuplicateEntry)

	// Keeping its own email is fine
	alice.Position = "Lead"
	require.NoError(t, repo.Update(ctx, alice))

	taken, err := repo.ExistsByEmail(ctx, "alice@company.com", alice.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.ExistsByEmail(ctx, "alice@company.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestEmployees_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Employees()

	e := newEmployee("Alice Johnson", "alice@company.com")
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	got.Name = "Changed"

	again, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", again.Name)
}

func TestEmployees_DeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Employees()

	e := newEmployee("Alice Johnson", "alice@company.com")
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	assert.ErrorIs(t, repo.Delete(ctx, e.ID), repositories.ErrNotFound)
	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, e), repositories.ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTokens_BelongToExistingUser(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.Tokens().Create(ctx, &models.PersonalAccessToken{UserID: 42, TokenHash: "h"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	user := &models.User{Name: "Admin", Email: "admin@company.com", Password: "x"}
	require.NoError(t, store.Users().Create(ctx, user))

	first := &models.PersonalAccessToken{UserID: user.ID, TokenHash: "h1"}
	second := &models.PersonalAccessToken{UserID: user.ID, TokenHash: "h2"}
	require.NoError(t, store.Tokens().Create(ctx, first))
	require.NoError(t, store.Tokens().Create(ctx, second))
	assert.ErrorIs(t, store.Tokens().Create(ctx, &models.PersonalAccessToken{UserID: user.ID, TokenHash: "h1"}), repositories.ErrDuplicateEntry)

	// Deleting one token leaves the other
	require.NoError(t, store.Tokens().Delete(ctx, first.ID))
	_, err = store.Tokens().GetByTokenHash(ctx, "h1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	got, err := store.Tokens().GetByTokenHash(ctx, "h2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestUsers_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	require.NoError(t, users.Create(ctx, &models.User{Name: "Admin", Email: "admin@company.com"}))
	assert.ErrorIs(t, users.Create(ctx, &models.User{Name: "Other", Email: "admin@company.com"}), repositories.ErrDuplicateEntry)

	exists, err := users.ExistsByEmail(ctx, "admin@company.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.ExistsByEmail(ctx, "nobody@company.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

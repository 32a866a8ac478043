package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
)

func newTestUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestUserRepositoryCreateAndGet(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	user := &domain.User{
		Email:        "a@x.com",
		PasswordHash: "$2a$12$fakehash",
		FirstName:    "Jane",
		LastName:     "Doe",
	}

	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Equal(t, id, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)
	require.Equal(t, "$2a$12$fakehash", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	first := &domain.User{Email: "a@x.com", PasswordHash: "h1", FirstName: "Jane", LastName: "Doe"}
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := &domain.User{Email: "a@x.com", PasswordHash: "h2", FirstName: "John", LastName: "Doe"}
	_, err = repo.Create(ctx, second)
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestUserRepositoryEmailIsExactMatch(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	user := &domain.User{Email: "a@x.com", PasswordHash: "h1", FirstName: "Jane", LastName: "Doe"}
	_, err := repo.Create(ctx, user)
	require.NoError(t, err)

	_, err = repo.GetByEmail(ctx, "A@X.COM")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, 999)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

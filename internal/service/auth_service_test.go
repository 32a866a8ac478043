package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"investor-portal/internal/repository/memory"
	"investor-portal/internal/token"
)

func newTestAuthService(t *testing.T) (AuthService, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	issuer := token.NewIssuer("test-secret", 30*24*time.Hour)
	// bcrypt.MinCost keeps the hashing fast in tests.
	return NewAuthService(repo, issuer, bcrypt.MinCost), repo
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:     "a@x.com",
		Password:  "password1",
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   "Acme Capital",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	require.NotZero(t, registered.User.ID)
	require.Equal(t, "a@x.com", registered.User.Email)
	require.Equal(t, "Jane", registered.User.FirstName)
	require.Equal(t, "Doe", registered.User.LastName)
	require.NotEmpty(t, registered.Token)
	require.Empty(t, registered.User.PasswordHash, "returned user must not carry the password hash")

	logged, err := svc.Login(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, logged.User.ID)
	require.NotEmpty(t, logged.Token)
	require.Empty(t, logged.User.PasswordHash)

	issuer := token.NewIssuer("test-secret", 30*24*time.Hour)
	userID, err := issuer.Verify(logged.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	input := validRegisterInput()
	input.Password = "password2"
	_, err = svc.Register(ctx, input)
	require.ErrorIs(t, err, ErrDuplicateAccount)
	require.Equal(t, 1, repo.Count())
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, validRegisterInput())
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrDuplicateAccount)
			duplicates++
		}
	}
	require.Equal(t, 1, successes, "exactly one concurrent registration must win")
	require.Equal(t, attempts-1, duplicates)
	require.Equal(t, 1, repo.Count())
}

func TestLoginInvalidCredentialsAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody@x.com", "password1")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)

	_, wrongErr := svc.Login(ctx, "a@x.com", "wrong-password")
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)

	require.Equal(t, unknownErr, wrongErr)
}

func TestPasswordStoredHashedAndSalted(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	other := validRegisterInput()
	other.Email = "b@x.com"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	first, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := repo.GetByEmail(ctx, "b@x.com")
	require.NoError(t, err)

	require.NotEqual(t, "password1", first.PasswordHash)
	require.NotEqual(t, first.PasswordHash, second.PasswordHash, "bcrypt must salt each hash")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(first.PasswordHash), []byte("password1")))
}

func TestRegisterValidation(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *RegisterInput) { in.Password = "short" }, "password"},
		{"oversized password", func(in *RegisterInput) { in.Password = strings.Repeat("x", 73) }, "password"},
		{"missing first name", func(in *RegisterInput) { in.FirstName = "  " }, "firstName"},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }, "lastName"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)

			_, err := svc.Register(ctx, input)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			require.Contains(t, validation.Fields, tc.field)
		})
	}

	require.Equal(t, 0, repo.Count(), "rejected input must not touch the store")
}

func TestLoginEmailIsCaseSensitive(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "A@X.COM", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

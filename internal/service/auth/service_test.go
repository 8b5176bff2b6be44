package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askmatic/askly-server/internal/model/user"
	authservice "github.com/askmatic/askly-server/internal/service/auth"
	"github.com/askmatic/askly-server/internal/storage"
)

func newService() (*authservice.Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return authservice.NewService(store.Users(), zerolog.Nop()), store
}

func register(t *testing.T, svc *authservice.Service, email, password string) user.User {
	t.Helper()
	u, err := svc.Register(context.Background(), user.FullName{FirstName: "Ada", LastName: "Lovelace"}, email, password)
	require.NoError(t, err)
	return u
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store := newService()

	u := register(t, svc, "ada@example.com", "hunter22")

	stored, err := store.Users().FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService()

	register(t, svc, "ada@example.com", "hunter22")

	_, err := svc.Register(context.Background(), user.FullName{FirstName: "Eve", LastName: "Mallory"}, "ada@example.com", "other")
	assert.ErrorIs(t, err, authservice.ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newService()
	registered := register(t, svc, "ada@example.com", "hunter22")

	u, err := svc.Login(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newService()
	register(t, svc, "ada@example.com", "hunter22")

	_, wrongPassword := svc.Login(context.Background(), "ada@example.com", "not-it")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "hunter22")

	assert.ErrorIs(t, wrongPassword, authservice.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, authservice.ErrInvalidCredentials)
	// Same sentinel both ways: no account enumeration through error text.
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestProfileUnknownUser(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/envatex/internal/domain"
)

func newAuthUC(t *testing.T) (*AuthUC, *fakeUsers) {
	t.Helper()
	users := newFakeUsers()
	uc := &AuthUC{Users: users, Tokens: fakeTokens{}}
	created, err := uc.EnsureAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)
	return uc, users
}

func TestLogin_IssuesAdminToken(t *testing.T) {
	uc, _ := newAuthUC(t)

	res, err := uc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.Role)

	c, err := uc.Authenticate(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Subject)
	assert.True(t, c.IsAdmin())
}

func TestLogin_Errors(t *testing.T) {
	uc, users := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, "", "x")
	assert.ErrorIs(t, err, domain.ErrMissingField)
	_, err = uc.Login(ctx, "admin", "")
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, "ghost", "admin123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	users.err = errBoom
	_, err = uc.Login(ctx, "admin", "admin123")
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	uc, users := newAuthUC(t)

	created, err := uc.EnsureAdmin(context.Background(), "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, users.users, 1)

	_, err = uc.Login(context.Background(), "admin", "admin123")
	assert.NoError(t, err, "existing password is kept")
}

func TestAuthenticate_Rejects(t *testing.T) {
	uc, _ := newAuthUC(t)

	_, err := uc.Authenticate("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Authenticate("garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

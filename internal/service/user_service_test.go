package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	seq   int
	users map[string]dom.User // keyed by uid
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]dom.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u dom.User) (dom.User, error) {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	f.seq++
	u.UID = fmt.Sprintf("user-%03d", f.seq)
	u.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.users[u.UID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUID(_ context.Context, uid string) (dom.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) Search(_ context.Context, q string, limit int) ([]dom.User, error) {
	var out []dom.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(q)) && len(out) < limit {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		u, err := svc.Register(ctx, "alice", "correct horse", nil, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, u.UID)
		assert.NotEqual(t, "correct horse", u.PasswordHash)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())
		_, err := svc.Register(ctx, "alice", "pw-one-two", nil, nil)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "other-pw-xyz", nil, nil)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("blank username", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())
		_, err := svc.Register(ctx, "   ", "pw-one-two", nil, nil)
		assert.ErrorIs(t, err, dom.ErrValidation)
	})

	t.Run("blank optional fields become nil", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())
		email := "  "
		display := "  Alice  "

		u, err := svc.Register(ctx, "alice", "pw-one-two", &email, &display)
		require.NoError(t, err)
		assert.Nil(t, u.Email)
		require.NotNil(t, u.DisplayName)
		assert.Equal(t, "Alice", *u.DisplayName)
	})
}

func TestUserService_ValidateCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())
	registered, err := svc.Register(ctx, "alice", "correct horse", nil, nil)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		u, err := svc.ValidateCredentials(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, registered.UID, u.UID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.ValidateCredentials(ctx, "alice", "battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.ValidateCredentials(ctx, "bob", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_Search(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())
	_, err := svc.Register(ctx, "alice", "pw-one-two", nil, nil)
	require.NoError(t, err)

	t.Run("matches", func(t *testing.T) {
		list, err := svc.Search(ctx, "ali")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("blank query returns empty list", func(t *testing.T) {
		list, err := svc.Search(ctx, "   ")
		require.NoError(t, err)
		require.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestUserService_GetByUID(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.GetByUID(ctx, "ghost")
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

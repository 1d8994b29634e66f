package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digibook/room-booking-backend/internal/auth"
)

type memRepository struct {
	users map[string]*User
	seq   int
}

func newMemRepository() *memRepository {
	return &memRepository{users: make(map[string]*User)}
}

func (r *memRepository) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r *memRepository) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Active = active
	return nil
}

func newTestService() (Service, *memRepository) {
	repo := newMemRepository()
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Guest@Example.COM ", "longenough", "Guest")
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", u.Email)
	assert.True(t, u.Active)
	assert.NotEqual(t, "longenough", u.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "guest@example.com", "longenough", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("blank email", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "longenough", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "other@example.com", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "guest@example.com", "longenough", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "guest@example.com", "longenough")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "guest@example.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "longenough")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user cannot log in", func(t *testing.T) {
		require.NoError(t, svc.SetActive(ctx, registered.ID, false))
		_, err := svc.Login(ctx, "guest@example.com", "longenough")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestResolveOptionalUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "guest@example.com", "longenough", "")
	require.NoError(t, err)

	got, err := svc.ResolveOptional(ctx, registered.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, registered.Email, got.Email)

	got, err = svc.ResolveOptional(ctx, "user-missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

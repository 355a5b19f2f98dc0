package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memAccountRepo struct {
	byEmail map[string]*Account
	byID    map[uuid.UUID]*Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{
		byEmail: make(map[string]*Account),
		byID:    make(map[uuid.UUID]*Account),
	}
}

func (r *memAccountRepo) Create(ctx context.Context, a *Account) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.byEmail[a.Email] = &cp
	r.byID[a.ID] = &cp
	return nil
}

func (r *memAccountRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	if a, ok := r.byEmail[email]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (r *memAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	if a, ok := r.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

type memSessionRepo struct {
	sessions map[string]*Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*Session)}
}

func (r *memSessionRepo) Create(ctx context.Context, s *Session) error {
	s.CreatedAt = time.Now()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*Session, error) {
	if s, ok := r.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (r *memSessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteAllForAccount(ctx context.Context, accountID uuid.UUID) error {
	for id, s := range r.sessions {
		if s.AccountID == accountID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func newTestService() (*Service, *memAccountRepo, *memSessionRepo) {
	accounts := newMemAccountRepo()
	sessions := newMemSessionRepo()
	return NewService(accounts, sessions, testSecret, time.Hour), accounts, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	account, err := svc.Register(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.NotEqual(t, "hunter22", account.PasswordHash, "password must be stored hashed")

	creds, err := svc.Login(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, creds.Token)
	assert.Equal(t, account.ID, creds.AccountID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "keshav@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "keshav@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	account, err := svc.Register(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)
	creds, err := svc.Login(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)

	id, err := svc.Authenticate(ctx, creds.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, id.AccountID)
	assert.NotEmpty(t, id.SessionID)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateRejectsForgedSignature(t *testing.T) {
	svc, _, _ := newTestService()
	forger := NewService(newMemAccountRepo(), newMemSessionRepo(), "another-secret-another-secret-xx", time.Hour)
	ctx := context.Background()

	_, err := forger.Register(ctx, "mallory@example.com", "pw")
	require.NoError(t, err)
	creds, err := forger.Login(ctx, "mallory@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, creds.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)
	creds, err := svc.Login(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, creds.Token))
	assert.Empty(t, sessions.sessions)

	// Token is signed and unexpired but its session is gone.
	_, err = svc.Authenticate(ctx, creds.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Logging out again is fine: the session delete is best effort.
	assert.NoError(t, svc.Logout(ctx, creds.Token))
}

func TestAuthenticateRejectsExpiredSession(t *testing.T) {
	accounts := newMemAccountRepo()
	sessions := newMemSessionRepo()
	svc := NewService(accounts, sessions, testSecret, -time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)
	creds, err := svc.Login(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, creds.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutAll(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)

	first, err := svc.Login(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "keshav@example.com", "hunter22")
	require.NoError(t, err)
	require.Len(t, sessions.sessions, 2)

	require.NoError(t, svc.LogoutAll(ctx, first.Token))
	assert.Empty(t, sessions.sessions)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

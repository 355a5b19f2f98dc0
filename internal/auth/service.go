package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// AccountRepository is the persistence the service needs for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

// SessionRepository is the persistence the service needs for sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForAccount(ctx context.Context, accountID uuid.UUID) error
}

// Service issues and verifies logins. Tokens are HS256 JWTs whose jti
// points at a server-side session row; a token is only honored while
// that row exists and has not expired.
type Service struct {
	accounts  AccountRepository
	sessions  SessionRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// Credentials is the result of a successful login.
type Credentials struct {
	Token     string
	ExpiresAt time.Time
	AccountID uuid.UUID
}

// NewService creates an auth service.
func NewService(accounts AccountRepository, sessions SessionRepository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		accounts:  accounts,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (*Account, error) {
	existing, err := s.accounts.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &Account{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Login validates credentials, opens a session, and returns a signed
// token for it.
func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !CheckPassword(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	expiresAt := time.Now().Add(s.tokenTTL)
	session := &Session{
		ID:        sessionID,
		AccountID: account.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.signToken(account.ID, sessionID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Credentials{
		Token:     token,
		ExpiresAt: expiresAt,
		AccountID: account.ID,
	}, nil
}

func (s *Service) signToken(accountID uuid.UUID, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": accountID.String(),
		"jti": sessionID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// VerifyToken checks the token's signature and claims. It does not
// consult the session store; use Authenticate for that.
func (s *Service) VerifyToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	accountIDStr, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	accountID, err := uuid.Parse(accountIDStr)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	sessionID, ok := claims["jti"].(string)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	return Identity{AccountID: accountID, SessionID: sessionID}, nil
}

// Authenticate verifies the token and confirms its session is still
// live. This is the full check the middleware runs per request.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (Identity, error) {
	id, err := s.VerifyToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	session, err := s.sessions.GetByID(ctx, id.SessionID)
	if errors.Is(err, store.ErrNotFound) {
		return Identity{}, ErrInvalidToken
	}
	if err != nil {
		return Identity{}, fmt.Errorf("failed to check session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return Identity{}, ErrInvalidToken
	}

	return id, nil
}

// Account returns the account behind an identity.
func (s *Service) Account(ctx context.Context, id Identity) (*Account, error) {
	account, err := s.accounts.GetByID(ctx, id.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// Logout revokes the token's session.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	id, err := s.VerifyToken(tokenString)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, id.SessionID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// LogoutAll revokes every session of the token's account.
func (s *Service) LogoutAll(ctx context.Context, tokenString string) error {
	id, err := s.VerifyToken(tokenString)
	if err != nil {
		return err
	}

	if err := s.sessions.DeleteAllForAccount(ctx, id.AccountID); err != nil {
		return fmt.Errorf("failed to delete account sessions: %w", err)
	}
	return nil
}

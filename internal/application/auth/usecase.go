package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/repository"
	"github.com/prayastok/stok-api/pkg/jwt"
)

// Config holds the single admin credential pair and token settings.
// PasswordHash (bcrypt) wins over Password when both are set.
type Config struct {
	Username     string
	Password     string
	PasswordHash string
	JWTSecret    string
	Issuer       string
	ExpMinutes   int
}

// UseCase handles the single-operator login. Each successful login issues a
// session with an explicit lifecycle (issued, expires, revoked on logout);
// the JWT handed out is bound to that session.
type UseCase struct {
	sessions repository.SessionRepository
	cfg      Config
	now      func() time.Time
}

// NewUseCase builds the auth use case.
func NewUseCase(sessions repository.SessionRepository, cfg Config) *UseCase {
	return &UseCase{sessions: sessions, cfg: cfg, now: time.Now}
}

// Login checks the submitted pair against the configured admin credential and
// issues a session token. Comparison is constant-time either way.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.credentialsMatch(in.Username, in.Password) {
		return nil, domain.ErrUnauthorized
	}

	now := uc.now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		Username:  in.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Duration(uc.cfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessions.Create(session); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, session.ID, session.Username, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout revokes the session; the token stops working immediately even though
// the JWT itself has not expired.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	return uc.sessions.Revoke(sessionID, uc.now())
}

// Validate confirms the session exists and is neither revoked nor expired.
// The middleware calls this after JWT signature verification.
func (uc *UseCase) Validate(ctx context.Context, sessionID string) error {
	session, err := uc.sessions.GetByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrSessionRevoked
	}
	if !session.Active(uc.now()) {
		return domain.ErrSessionRevoked
	}
	return nil
}

func (uc *UseCase) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.cfg.Username)) == 1

	var passOK bool
	if uc.cfg.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(uc.cfg.Password)) == 1
	}
	return userOK && passOK
}

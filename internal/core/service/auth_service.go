package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/claimwise/insurance-portal/internal/core/domain"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthConfig tunes token issuing and password hashing.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// AuthService verifies credentials against the lookup table and issues the
// token that binds an HTTP client to the session.
type AuthService struct {
	creds     ports.CredentialRepository
	users     ports.StoreReader
	jwtSecret string
	tokenTTL  time.Duration
	cost      int
}

func NewAuthService(creds ports.CredentialRepository, users ports.StoreReader, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		creds:     creds,
		users:     users,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.TokenTTL,
		cost:      cfg.BcryptCost,
	}
}

// RegisterCredential hashes password and stores it for email.
func (s *AuthService) RegisterCredential(ctx context.Context, email, password, userID string) error {
	if password == "" {
		return domain.NewValidationError("password", "is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.creds.Register(ctx, domain.Credential{Email: email, PasswordHash: string(hash), UserID: userID})
}

// Verify resolves email and password to a user. The check is an exact
// comparison with no lockout.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.AuthError{Message: domain.MsgInvalidCredentials}
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, &domain.AuthError{Message: domain.MsgInvalidCredentials}
	}

	user, ok := s.users.UserByID(cred.UserID)
	if !ok {
		return nil, &domain.AuthError{Message: domain.MsgUserNotFound}
	}
	return &user, nil
}

func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ParseToken validates signature and expiry and returns the asserted claims.
func (s *AuthService) ParseToken(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, errors.Join(domain.ErrUnauthenticated, errors.New("token has no subject"))
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	out := &ports.TokenClaims{UserID: sub, Email: email, Role: domain.Role(role)}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

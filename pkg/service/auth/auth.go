package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/amirasaad/minibank/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// dummyHash keeps password comparison running even when the user does not
// exist, so login timing does not leak which usernames are registered.
const dummyHash = "$2a$14$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Service is the auth gate: it verifies login credentials, issues signed
// identity tokens and resolves the acting user from a verified token.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth service signing tokens with cfg.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies username and password and returns a signed token embedding
// the user id.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	log := s.logger.With("context", "Login", "username", username)

	repo, err := s.uow.UserRepository()
	if err != nil {
		return "", err
	}
	u, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = utils.CheckPasswordHash(password, dummyHash)
			log.Info("login failed: unknown username")
			return "", domain.ErrUserNotFound
		}
		log.Error("login failed", "error", err)
		return "", err
	}
	if !utils.CheckPasswordHash(password, u.PasswordHash) {
		log.Info("login failed: password mismatch")
		return "", domain.ErrUserUnauthorized
	}

	token, err := s.GenerateToken(u)
	if err != nil {
		log.Error("token generation failed", "error", err)
		return "", err
	}
	log.Info("login successful", "userID", u.ID)
	return token, nil
}

// GenerateToken signs a time-limited HS256 token carrying the user id.
func (s *Service) GenerateToken(u *domain.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// Verify parses and validates a raw token string and returns the embedded
// user id. The route middleware normally does this; Verify exists for
// callers outside the fiber pipeline.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	return UserIDFromToken(token)
}

// UserIDFromToken extracts the user id claim from an already verified token.
func UserIDFromToken(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	return userID, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"github.com/noteduco342/readgroup-backend/internal/session"
	"github.com/noteduco342/readgroup-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const DefaultAccessTokenTTL = 15 * time.Minute

// Claims is the payload of both token kinds. Access tokens carry an expiry,
// refresh tokens do not.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService struct {
	userRepo repository.UserRepositoryInterface
	sessions session.Store
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepositoryInterface, sessions session.Store, cfg AuthConfig) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTokenTTL
	}
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	username = validation.NormalizeUsername(username)
	if username == "" {
		return nil, invalid("Please provide a username!")
	}
	if password == "" {
		return nil, invalid("Please provide a password!")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.signAccess(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signRefresh(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Add(ctx, refresh); err != nil {
		return nil, fmt.Errorf("record refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token for the identity in a registered refresh
// token. The refresh token itself stays valid.
func (s *AuthService) Refresh(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	ok, err := s.sessions.Contains(ctx, token)
	if err != nil {
		return "", fmt.Errorf("check refresh token: %w", err)
	}
	if !ok {
		return "", ErrForbidden
	}

	claims, err := parseToken(token, s.cfg.RefreshSecret)
	if err != nil {
		return "", ErrForbidden
	}
	return s.signAccess(claims.ID, claims.Username)
}

// Logout drops token from the registry. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Remove(ctx, token)
}

// Authenticate verifies an access token and returns the identity it carries.
func (s *AuthService) Authenticate(token string) (*models.Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := parseToken(token, s.cfg.AccessSecret)
	if err != nil {
		return nil, ErrForbidden
	}
	if claims.ID == "" {
		return nil, ErrForbidden
	}
	return &models.Identity{ID: claims.ID, Username: claims.Username}, nil
}

func (s *AuthService) signAccess(userID, username string) (string, error) {
	now := s.now()
	claims := Claims{
		ID:       userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.AccessSecret)
}

func (s *AuthService) signRefresh(userID, username string) (string, error) {
	claims := Claims{
		ID:       userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps tokens from separate logins distinct.
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.RefreshSecret)
}

func parseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

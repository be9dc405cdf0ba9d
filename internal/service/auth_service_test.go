package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/noteduco342/readgroup-backend/internal/session"
)

const (
	testAccessSecret  = "test-secret-key-12345"
	testRefreshSecret = "test-refresh-secret-12345"
)

func newTestAuthService(t *testing.T) (*AuthService, *UserService, *session.MemoryStore) {
	t.Helper()
	users := NewMockUserRepository()
	store := session.NewMemoryStore()
	auth := NewAuthService(users, store, AuthConfig{
		AccessSecret:  []byte(testAccessSecret),
		RefreshSecret: []byte(testRefreshSecret),
	})
	return auth, NewUserService(users, nil), store
}

// Tests for AuthService

func TestLogin(t *testing.T) {
	authService, userService, store := newTestAuthService(t)
	ctx := context.Background()

	if _, err := userService.Create(ctx, CreateUserInput{Username: strPtr("alice"), Password: strPtr("pw1")}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	tests := []struct {
		name      string
		username  string
		password  string
		expectErr error
	}{
		{"Valid credentials", "alice", "pw1", nil},
		{"Wrong password", "alice", "pw2", ErrInvalidCredentials},
		{"Unknown user", "nobody", "pw1", ErrNotFound},
		{"Missing username", "", "pw1", ErrValidation},
		{"Missing password", "alice", "", ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := store.Len()
			pair, err := authService.Login(ctx, tt.username, tt.password)
			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.expectErr)
				}
				if pair != nil {
					t.Error("no tokens expected on failure")
				}
				if store.Len() != before {
					t.Error("failed login must not register a refresh token")
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error: %v", err)
			}
			if pair.AccessToken == "" || pair.RefreshToken == "" {
				t.Fatal("expected both tokens")
			}
			ok, _ := store.Contains(ctx, pair.RefreshToken)
			if !ok {
				t.Error("refresh token not recorded")
			}
			id, err := authService.Authenticate(pair.AccessToken)
			if err != nil {
				t.Fatalf("Authenticate(access) error: %v", err)
			}
			if id.Username != "alice" {
				t.Errorf("identity username = %q, want alice", id.Username)
			}
		})
	}
}

func TestLogin_SeparateLoginsGetDistinctRefreshTokens(t *testing.T) {
	authService, userService, _ := newTestAuthService(t)
	ctx := context.Background()
	userService.Create(ctx, CreateUserInput{Username: strPtr("alice"), Password: strPtr("pw1")})

	a, err := authService.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := authService.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}
	if a.RefreshToken == b.RefreshToken {
		t.Fatal("refresh tokens of separate logins must differ")
	}

	authService.Logout(ctx, a.RefreshToken)
	if _, err := authService.Refresh(ctx, b.RefreshToken); err != nil {
		t.Errorf("logging out one session revoked another: %v", err)
	}
}

func TestRefreshLifecycle(t *testing.T) {
	authService, userService, _ := newTestAuthService(t)
	ctx := context.Background()
	userService.Create(ctx, CreateUserInput{Username: strPtr("alice"), Password: strPtr("pw1")})

	pair, err := authService.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	for i := 0; i < 3; i++ {
		access, err := authService.Refresh(ctx, pair.RefreshToken)
		if err != nil {
			t.Fatalf("refresh #%d: %v", i, err)
		}
		if _, err := authService.Authenticate(access); err != nil {
			t.Fatalf("refreshed token does not authenticate: %v", err)
		}
	}

	if err := authService.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := authService.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("second logout must be a no-op: %v", err)
	}

	if _, err := authService.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrForbidden) {
		t.Errorf("Refresh() after logout error = %v, want ErrForbidden", err)
	}
}

func TestRefresh_Failures(t *testing.T) {
	authService, _, store := newTestAuthService(t)
	ctx := context.Background()

	if _, err := authService.Refresh(ctx, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("empty token: error = %v, want ErrUnauthenticated", err)
	}
	if _, err := authService.Refresh(ctx, "never-issued"); !errors.Is(err, ErrForbidden) {
		t.Errorf("unknown token: error = %v, want ErrForbidden", err)
	}

	// registered but signed with the wrong secret
	forged, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: "u1", Username: "mallory"}).
		SignedString([]byte("wrong-secret"))
	store.Add(ctx, forged)
	if _, err := authService.Refresh(ctx, forged); !errors.Is(err, ErrForbidden) {
		t.Errorf("forged token: error = %v, want ErrForbidden", err)
	}
}

func TestAuthenticate(t *testing.T) {
	authService, _, _ := newTestAuthService(t)

	valid, _ := authService.signAccess("u1", "alice")
	refresh, _ := authService.signRefresh("u1", "alice")

	authService.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _ := authService.signAccess("u1", "alice")
	authService.now = time.Now

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name      string
		token     string
		expectErr error
	}{
		{"Valid access token", valid, nil},
		{"Missing token", "", ErrUnauthenticated},
		{"Garbage", "not-a-jwt", ErrForbidden},
		{"Expired", expired, ErrForbidden},
		{"Refresh token is not an access token", refresh, ErrForbidden},
		{"Unsigned token", none, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := authService.Authenticate(tt.token)
			if tt.expectErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if id.ID != "u1" || id.Username != "alice" {
					t.Errorf("identity = %+v", id)
				}
				return
			}
			if !errors.Is(err, tt.expectErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.expectErr)
			}
		})
	}
}

func TestAccessTokenExpiryUsesConfiguredTTL(t *testing.T) {
	users := NewMockUserRepository()
	authService := NewAuthService(users, session.NewMemoryStore(), AuthConfig{
		AccessSecret:  []byte(testAccessSecret),
		RefreshSecret: []byte(testRefreshSecret),
		AccessTTL:     2 * time.Minute,
	})
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	authService.now = func() time.Time { return fixed }

	token, err := authService.signAccess("u1", "alice")
	if err != nil {
		t.Fatal(err)
	}
	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		t.Fatal(err)
	}
	if !claims.ExpiresAt.Time.Equal(fixed.Add(2 * time.Minute)) {
		t.Errorf("exp = %v, want %v", claims.ExpiresAt.Time, fixed.Add(2*time.Minute))
	}
}

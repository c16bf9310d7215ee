package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Shoury-Rana/LinkCrate/internal/config"
	"github.com/Shoury-Rana/LinkCrate/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/shares", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	return req
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, config.Envs.JWTSecret, jwt.MapClaims{
		"userId": userID.String(),
		"role":   "USER",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	var gotID uuid.UUID
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r)
		gotRole, _ = r.Context().Value(RoleKey).(string)
	})

	rec := httptest.NewRecorder()
	AuthMiddleware(next).ServeHTTP(rec, authedRequest(token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "USER", gotRole)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	valid := func(claims jwt.MapClaims) jwt.MapClaims {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
		return claims
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "no cookie", token: ""},
		{name: "garbage token", token: "not.a.jwt"},
		{
			name:  "wrong signing key",
			token: signToken(t, "some-other-secret", valid(jwt.MapClaims{"userId": uuid.NewString()})),
		},
		{
			name: "expired token",
			token: signToken(t, config.Envs.JWTSecret, jwt.MapClaims{
				"userId": uuid.NewString(),
				"exp":    time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			name:  "missing userId claim",
			token: signToken(t, config.Envs.JWTSecret, valid(jwt.MapClaims{})),
		},
		{
			name:  "non-uuid userId claim",
			token: signToken(t, config.Envs.JWTSecret, valid(jwt.MapClaims{"userId": "42"})),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			rec := httptest.NewRecorder()
			AuthMiddleware(next).ServeHTTP(rec, authedRequest(tt.token))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	run := func(role string) (*httptest.ResponseRecorder, bool) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		token := signToken(t, config.Envs.JWTSecret, jwt.MapClaims{
			"userId": uuid.NewString(),
			"role":   role,
			"exp":    time.Now().Add(time.Hour).Unix(),
		})

		rec := httptest.NewRecorder()
		AuthMiddleware(RequireAdmin(next)).ServeHTTP(rec, authedRequest(token))
		return rec, called
	}

	rec, called := run(string(models.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	rec, called = run(string(models.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmdeguzman/storefront-api/configs"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

func authzConfig() configs.Config {
	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "test-idp"
	cfg.Security.Audience = "storefront-api"
	return cfg
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func baseClaims(cfg configs.Config) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   cfg.Security.Issuer,
		"aud":   cfg.Security.Audience,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"sub":   "u1",
		"email": "maria@example.com",
	}
}

func runAuthz(cfg configs.Config, header string) (*httptest.ResponseRecorder, *usecase.Identity) {
	gin.SetMode(gin.TestMode)
	var got *usecase.Identity
	r := gin.New()
	authz := NewAuthz(cfg)
	r.GET("/protected", authz.Require(), func(c *gin.Context) {
		if ident, ok := IdentityFrom(c); ok {
			got = &ident
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, got
}

func TestAuthzValidToken(t *testing.T) {
	cfg := authzConfig()
	token := sign(t, cfg.Security.JWTSecret, baseClaims(cfg))

	w, ident := runAuthz(cfg, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ident)
	assert.Equal(t, "u1", ident.UserID)
	assert.Equal(t, "maria@example.com", ident.Email)
}

func TestAuthzRejections(t *testing.T) {
	cfg := authzConfig()

	tests := []struct {
		name   string
		header func() string
	}{
		{"missing header", func() string { return "" }},
		{"not bearer", func() string { return "Basic abc" }},
		{"garbage token", func() string { return "Bearer garbage" }},
		{"wrong secret", func() string {
			return "Bearer " + sign(t, "other-secret", baseClaims(cfg))
		}},
		{"wrong issuer", func() string {
			claims := baseClaims(cfg)
			claims["iss"] = "evil-idp"
			return "Bearer " + sign(t, cfg.Security.JWTSecret, claims)
		}},
		{"wrong audience", func() string {
			claims := baseClaims(cfg)
			claims["aud"] = "other-api"
			return "Bearer " + sign(t, cfg.Security.JWTSecret, claims)
		}},
		{"expired", func() string {
			claims := baseClaims(cfg)
			claims["exp"] = time.Now().Add(-2 * time.Hour).Unix()
			return "Bearer " + sign(t, cfg.Security.JWTSecret, claims)
		}},
		{"no subject", func() string {
			claims := baseClaims(cfg)
			delete(claims, "sub")
			return "Bearer " + sign(t, cfg.Security.JWTSecret, claims)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ident := runAuthz(cfg, tt.header())

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			assert.Nil(t, ident)
		})
	}
}

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pmdeguzman/storefront-api/configs"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

const identityKey = "identity"

// Authz validates bearer tokens minted by the identity provider and exposes
// the verified caller to handlers. Token issuance lives elsewhere; this
// service only checks.
type Authz struct {
	cfg configs.Config
}

func NewAuthz(cfg configs.Config) *Authz {
	return &Authz{cfg: cfg}
}

// Require rejects requests without a verified, non-anonymous identity.
func (a *Authz) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauthorized(c)
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(a.cfg.Security.JWTSecret), nil
		}, jwt.WithLeeway(30*time.Second)) // small clock skew

		if err != nil || !token.Valid {
			unauthorized(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c)
			return
		}
		if claims["iss"] != a.cfg.Security.Issuer || claims["aud"] != a.cfg.Security.Audience {
			unauthorized(c)
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			unauthorized(c)
			return
		}
		email, _ := claims["email"].(string)

		c.Set(identityKey, usecase.Identity{UserID: sub, Email: email})
		c.Next()
	}
}

// IdentityFrom returns the verified caller stored by Require.
func IdentityFrom(c *gin.Context) (usecase.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return usecase.Identity{}, false
	}
	ident, ok := v.(usecase.Identity)
	return ident, ok && ident.UserID != ""
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

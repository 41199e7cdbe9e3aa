package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CallerIDKey   = "caller_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

var (
	ErrMissingSecret = errors.New("identity secret must not be empty")
)

// identityClaims is the assertion the gateway signs for each authenticated
// request. The caller id travels in the registered subject claim.
type identityClaims struct {
	jwt.RegisteredClaims
}

// IdentityMiddleware resolves the authenticated caller from the identity
// gateway's signed assertion. The gateway has already authenticated the end
// user; this middleware only verifies the gateway's HS256 signature and
// trusts the caller id it carries.
type IdentityMiddleware struct {
	secret []byte
	leeway time.Duration
}

// NewIdentityMiddleware creates a new identity middleware.
func NewIdentityMiddleware(secret string) (*IdentityMiddleware, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &IdentityMiddleware{
		secret: []byte(secret),
		leeway: 30 * time.Second,
	}, nil
}

// RequireCaller returns a Gin middleware that rejects requests without a
// valid identity assertion and stores the caller id in the request context.
func (m *IdentityMiddleware) RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		callerID, err := m.resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid identity assertion",
			})
			return
		}

		c.Set(CallerIDKey, callerID)
		c.Next()
	}
}

func (m *IdentityMiddleware) resolve(token string) (string, error) {
	var claims identityClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithLeeway(m.leeway))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return claims.Subject, nil
}

// Sign mints an identity assertion for the given caller id. The gateway
// uses this in production; tests use it to impersonate callers.
func (m *IdentityMiddleware) Sign(callerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   callerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// GetCallerID extracts the authenticated caller id from the Gin context.
func GetCallerID(c *gin.Context) string {
	if id, exists := c.Get(CallerIDKey); exists {
		return id.(string)
	}
	return ""
}

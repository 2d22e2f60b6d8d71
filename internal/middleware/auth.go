package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"nexus-project-api/internal/response"
)

// Context keys set by Auth
const (
	UserIDKey = "user_id"
	TokenKey  = "jwtToken"
)

// TokenValidator resolves a bearer token to the authenticated user
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// ErrInvalidToken is returned for any token that fails validation
var ErrInvalidToken = errors.New("invalid or expired token")

// JWTValidator validates HMAC-signed tokens locally
type JWTValidator struct {
	Secret []byte
}

// NewJWTValidator creates a local validator for the shared secret
func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{Secret: []byte(secret)}
}

// ValidateToken parses the token and extracts the user ID from
// the user_id, sub or uid claim, in that order.
func (v *JWTValidator) ValidateToken(_ context.Context, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.Secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	for _, key := range []string{"user_id", "sub", "uid"} {
		if s, ok := claims[key].(string); ok {
			id, err := uuid.Parse(s)
			if err != nil {
				return uuid.Nil, ErrInvalidToken
			}
			return id, nil
		}
	}
	return uuid.Nil, ErrInvalidToken
}

func unauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}

// bearerToken reads "Authorization: Bearer <token>". WebSocket upgrades
// may pass the token in the token query parameter instead, since
// browsers cannot set headers on them.
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			if t := c.Query("token"); t != "" {
				return t, ""
			}
		}
		return "", "Authorization header is required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "Invalid authorization header format"
	}
	return parts[1], ""
}

// Auth returns a middleware that authenticates the request with validator
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, problem := bearerToken(c)
		if problem != "" {
			unauthorized(c, problem)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userID, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		// Store user ID and JWT token in context for downstream use
		c.Set(UserIDKey, userID)
		c.Set(TokenKey, tokenString)

		c.Next()
	}
}

// UserID returns the authenticated user set by Auth
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

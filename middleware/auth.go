package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"teamup/services/redis"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Context keys the handlers read after AuthRequired ran.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextTokenID  = "token_id"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueToken creates a signed bearer token for a user. The returned
// token id (jti) keys the revocable session in Redis.
func IssueToken(userID, username string) (token string, tokenID string, err error) {
	tokenID = uuid.NewString()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"jti":      tokenID,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(redis.SessionTTL).Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	return token, tokenID, err
}

// DecodeToken verifies a signed bearer token and extracts its subject
// and token id.
func DecodeToken(raw string) (userID, tokenID string, err error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !parsed.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	userID, _ = claims["sub"].(string)
	tokenID, _ = claims["jti"].(string)
	if userID == "" || tokenID == "" {
		return "", "", errors.New("invalid token claims")
	}
	return userID, tokenID, nil
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header || raw == "" {
		return "", errors.New("Authorization header must use the Bearer scheme")
	}
	return raw, nil
}

// AuthRequired verifies the bearer token and checks the session was not
// revoked, then exposes the caller's identity on the gin context.
func AuthRequired(sessions redis.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := BearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, tokenID, err := DecodeToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		session, err := sessions.GetSession(tokenID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if session == nil || session.UserID != userID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ContextUserID, session.UserID)
		c.Set(ContextUsername, session.Username)
		c.Set(ContextTokenID, tokenID)
		c.Next()
	}
}

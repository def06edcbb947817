// utils/auth.go
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Context keys populated by AuthMiddleware
const (
	CtxUserID     = "userId"
	CtxKind       = "kind"
	CtxRole       = "role"
	CtxName       = "name"
	CtxEmail      = "email"
	CtxNationalID = "nationalId"
)

// Session cookie carrying the JWT (mirror of the Authorization header)
const SessionCookie = "token"

// Generate JWT secret key (run once initially)
func GenerateJWTSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate JWT secret")
	}
	return base64.StdEncoding.EncodeToString(key)
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsHashed reports whether a stored credential is a bcrypt hash rather than
// a legacy plaintext value.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

// SessionClaims is everything the token carries about the signed-in principal.
type SessionClaims struct {
	Subject    string
	Kind       string // customer, employee, identity
	Role       string // customer, employee, administrator
	Name       string
	Email      string
	NationalID string
}

// TokenExpiry returns the configured session lifetime.
func TokenExpiry() time.Duration {
	expiryHours := 24 // default
	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil {
			expiryHours = h
		}
	}
	return time.Duration(expiryHours) * time.Hour
}

// Generate JWT token
func GenerateToken(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        claims.Subject,
		"kind":       claims.Kind,
		"role":       claims.Role,
		"name":       claims.Name,
		"email":      claims.Email,
		"nationalId": claims.NationalID,
		"exp":        time.Now().Add(TokenExpiry()).Unix(),
		"iat":        time.Now().Unix(),
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	return token.SignedString([]byte(secret))
}

// SetSessionCookie mirrors the token into the session cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, int(TokenExpiry().Seconds()), "/", "", true, true)
}

// ClearSessionCookie drops the session cookie (forced sign-out).
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", true, true)
}

// Auth middleware
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}
		if tokenString == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(CtxUserID, claims["sub"])
		c.Set(CtxKind, claims["kind"])
		c.Set(CtxRole, claims["role"])
		c.Set(CtxName, claims["name"])
		c.Set(CtxEmail, claims["email"])
		c.Set(CtxNationalID, claims["nationalId"])

		c.Next()
	}
}

// RequireRole rejects requests whose session role is not in the allowed set.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(CtxRole)
		roleStr, _ := role.(string)
		for _, allowed := range roles {
			if strings.EqualFold(roleStr, allowed) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

package util

import (
	"errors"
	"fmt"
	"time"

	"smart_quiz_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const contextClaimsKey = "claims"

type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Role   Role   `json:"role"`
	Login  string `json:"login,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

func GenerateUserJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	return signClaims(&Claims{UserID: user.ID, Role: RoleUser}, secret, expiration)
}

func GenerateAdminJWT(login, secret string, expiration time.Duration) (string, error) {
	return signClaims(&Claims{Role: RoleAdmin, Login: login}, secret, expiration)
}

func signClaims(claims *Claims, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT 区分过期与其他无效情况
func ParseJWT(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(contextClaimsKey, claims)
}

func GetClaimsFromContext(c *gin.Context) *Claims {
	v, exists := c.Get(contextClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// CurrentUserID 普通用户 ID，管理员或游客返回空串
func CurrentUserID(c *gin.Context) string {
	claims := GetClaimsFromContext(c)
	if claims == nil || claims.Role != RoleUser {
		return ""
	}
	return claims.UserID
}

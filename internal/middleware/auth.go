package middleware

import (
	"context"
	"fmt"
	"strings"

	"smart_quiz_backend/internal/util"
	"smart_quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserChecker 确认 token 中的用户仍然存在
type UserChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func abortWithError(c *gin.Context, err error) {
	util.RespondError(c, err)
	c.Abort()
}

// AuthMiddleware 普通用户接口：校验 token 并确认用户存在
func AuthMiddleware(secret string, users UserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := util.ParseJWT(bearerToken(c), secret)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if claims.Role != util.RoleUser || claims.UserID == "" {
			abortWithError(c, util.ErrTokenInvalid)
			return
		}

		exists, err := users.Exists(c.Request.Context(), claims.UserID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !exists {
			abortWithError(c, fmt.Errorf("%w: user no longer exists", util.ErrTokenInvalid))
			return
		}

		util.SetClaims(c, claims)
		c.Next()
	}
}

// AdminMiddleware 管理员接口：合法但不是管理员的 token 返回 403
func AdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := util.ParseJWT(bearerToken(c), secret)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !claims.IsAdmin() {
			logger.Log.Warn("Non-admin token on admin route",
				zap.String("path", c.FullPath()),
				zap.String("user_id", claims.UserID),
			)
			util.Forbidden(c)
			c.Abort()
			return
		}

		util.SetClaims(c, claims)
		c.Next()
	}
}

// TryAuthMiddleware 可选鉴权：token 缺失或无效时按游客处理
func TryAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := util.ParseJWT(token, secret); err == nil {
				util.SetClaims(c, claims)
			}
		}
		c.Next()
	}
}

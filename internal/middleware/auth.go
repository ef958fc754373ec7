package middleware

import (
	"errors"

	"foodgram/internal/repository"
	"foodgram/internal/utils"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthMiddleware JWT认证中间件，未登录返回401
func AuthMiddleware(jwtManager *utils.JWTManager, tokenRepo *repository.TokenRepository) gin.HandlerFunc {
	return authenticate(jwtManager, tokenRepo, true)
}

// OptionalAuthMiddleware 可选认证，没有Token时按匿名处理，Token无效仍返回401
func OptionalAuthMiddleware(jwtManager *utils.JWTManager, tokenRepo *repository.TokenRepository) gin.HandlerFunc {
	return authenticate(jwtManager, tokenRepo, false)
}

func authenticate(jwtManager *utils.JWTManager, tokenRepo *repository.TokenRepository, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := utils.ParseAuthorization(c.GetHeader("Authorization"))
		switch {
		case errors.Is(err, utils.ErrMissingToken) && !required:
			c.Next()
			return
		case errors.Is(err, utils.ErrMissingToken):
			utils.Unauthorized(c, "未认证")
			c.Abort()
			return
		case err != nil:
			utils.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			utils.Unauthorized(c, utils.ErrInvalidToken.Error())
			c.Abort()
			return
		}

		revoked, err := tokenRepo.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			utils.HandleError(c, err)
			c.Abort()
			return
		}
		if revoked {
			utils.Unauthorized(c, "Token已注销")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("is_admin", claims.IsAdmin)
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetClaims 从上下文获取Token声明
func GetClaims(c *gin.Context) (*utils.JWTClaims, bool) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	return claims.(*utils.JWTClaims), true
}

// IsAdmin 从上下文判断是否为管理员
func IsAdmin(c *gin.Context) bool {
	return c.GetBool("is_admin")
}

// file: middlewares/auth.go
package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SALIKRAFIQ01/th16/utils"
)

// TeamAuthMiddleware 验证队伍 Token
func TeamAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			return
		}
		if claims.Type != utils.TokenTypeTeam {
			utils.Error(c, 4003, "Token 类型有误")
			c.Abort()
			return
		}
		c.Set("team_id", claims.SubjectID)
		c.Set("team_name", claims.Name)
		c.Next()
	}
}

// AdminAuthMiddleware 验证管理员 Token
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			return
		}
		if claims.Type != utils.TokenTypeAdmin {
			utils.Error(c, 4003, "Token 类型有误")
			c.Abort()
			return
		}
		c.Set("admin_id", claims.SubjectID)
		c.Set("admin_role", claims.Role)
		c.Next()
	}
}

func parseBearer(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		utils.Error(c, 4001, "请求头中 Authorization 为空")
		c.Abort()
		return nil, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		utils.Error(c, 4002, "Authorization 格式有误")
		c.Abort()
		return nil, false
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil {
		utils.Error(c, 4003, "无效的 Token")
		c.Abort()
		return nil, false
	}
	return claims, true
}

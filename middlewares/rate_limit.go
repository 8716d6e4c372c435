// file: middlewares/rate_limit.go
package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SALIKRAFIQ01/th16/database"
	"github.com/SALIKRAFIQ01/th16/utils"
)

// RateLimitMiddleware 基于 Redis INCR/EXPIRE 的固定窗口限流，按客户端 IP 计数。
// Redis 故障时放行，限流只是防滥用手段，不能拖垮正常请求。
func RateLimitMiddleware(name string, window time.Duration, max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		count, err := database.RDB.Incr(database.Ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			database.RDB.Expire(database.Ctx, key, window)
		}
		if count > max {
			c.JSON(http.StatusTooManyRequests, utils.Response{Code: 4290, Msg: "请求过于频繁，请稍后再试"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// 三档限流：登录、常规接口、暗号提交
func AuthLimiter() gin.HandlerFunc {
	return RateLimitMiddleware("auth", 15*time.Minute, 5)
}

func APILimiter() gin.HandlerFunc {
	return RateLimitMiddleware("api", time.Minute, 30)
}

func CodeSubmissionLimiter() gin.HandlerFunc {
	return RateLimitMiddleware("code", 5*time.Minute, 20)
}

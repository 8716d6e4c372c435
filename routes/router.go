// file: routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/SALIKRAFIQ01/th16/controllers"
	"github.com/SALIKRAFIQ01/th16/middlewares"
	"github.com/SALIKRAFIQ01/th16/services"
	"github.com/SALIKRAFIQ01/th16/ws"
)

// SetupRouter 组装全部路由。引擎与推送中心显式传入，不走包级单例
func SetupRouter(engine *services.Engine, hub *ws.Hub, uploadDir string) *gin.Engine {
	r := gin.Default()

	// 上传的照片静态托管
	r.Static("/uploads", uploadDir)

	apiV1 := r.Group("/api/v1")
	{
		// --- 登录 ---
		authRoutes := apiV1.Group("/auth")
		authRoutes.Use(middlewares.AuthLimiter())
		{
			authRoutes.POST("/team/login", controllers.TeamLogin)
			authRoutes.POST("/admin/login", controllers.AdminLogin)
		}

		// --- 队伍闯关 ---
		teamRoutes := apiV1.Group("/team")
		teamRoutes.Use(middlewares.TeamAuthMiddleware(), middlewares.APILimiter())
		{
			teamRoutes.GET("/clue", controllers.GetCurrentClue(engine))
			teamRoutes.POST("/code", middlewares.CodeSubmissionLimiter(), controllers.SubmitCode(engine))
			teamRoutes.POST("/photo", controllers.SubmitPhoto(engine, uploadDir))
			teamRoutes.GET("/progress", controllers.GetTeamProgress(engine))
		}

		// --- 管理端 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.AdminAuthMiddleware(), middlewares.APILimiter())
		{
			adminRoutes.GET("/teams", controllers.GetAllTeams)
			adminRoutes.POST("/teams", controllers.CreateTeam)
			adminRoutes.GET("/teams/:id", controllers.GetTeamDetails)
			adminRoutes.PATCH("/teams/:id/status", controllers.UpdateTeamStatus)
			adminRoutes.POST("/teams/:id/override-elimination", controllers.OverrideElimination(engine))
			adminRoutes.POST("/rounds/:round/settle", controllers.TriggerCheckpoint(engine))
			adminRoutes.GET("/stats", controllers.GetGameStats)
			adminRoutes.GET("/ws", hub.HandleWS)
		}

		// --- 线索内容管理 ---
		clueRoutes := apiV1.Group("/clues")
		clueRoutes.Use(middlewares.AdminAuthMiddleware(), middlewares.APILimiter())
		{
			clueRoutes.GET("", controllers.GetAllClues)
			clueRoutes.GET("/:id", controllers.GetClueDetail)
			clueRoutes.POST("", controllers.CreateClue)
			clueRoutes.PATCH("/:id", controllers.UpdateClue)
			clueRoutes.DELETE("/:id", controllers.DeleteClue)
			clueRoutes.POST("/:id/assign", controllers.AssignClue)
		}
	}

	return r
}

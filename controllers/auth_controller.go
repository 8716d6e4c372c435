// file: controllers/auth_controller.go
package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SALIKRAFIQ01/th16/database"
	"github.com/SALIKRAFIQ01/th16/models"
	"github.com/SALIKRAFIQ01/th16/utils"
)

// TeamLogin 队伍凭暗号登录。暗号只存哈希，
// 只能逐队比对（场上队伍就几十支，配合登录限流足够）
func TeamLogin(c *gin.Context) {
	var req struct {
		TeamCode string `json:"team_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.TeamCode) == "" {
		utils.Error(c, 1001, "请提供队伍暗号")
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.TeamCode))

	var teams []models.Team
	if err := database.DB.Find(&teams).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	var team *models.Team
	for i := range teams {
		if teams[i].VerifyCode(code) {
			team = &teams[i]
			break
		}
	}
	if team == nil {
		utils.Error(c, 4001, "无效的队伍暗号")
		return
	}

	// 已淘汰的队伍不能再登录参赛
	if team.Status == models.TeamStatusEliminated {
		utils.Error(c, 4003, "队伍已被淘汰")
		return
	}

	token, err := utils.GenerateTeamToken(team)
	if err != nil {
		utils.Error(c, 5000, "Token 签发失败")
		return
	}

	utils.Success(c, "登录成功", gin.H{
		"token": token,
		"team": gin.H{
			"id":            team.ID,
			"team_name":     team.TeamName,
			"current_round": team.CurrentRound,
			"current_clue":  team.CurrentClue,
			"status":        team.Status,
		},
	})
}

// AdminLogin 管理员账号密码登录
func AdminLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		utils.Error(c, 1001, "请提供用户名和密码")
		return
	}

	var admin models.Admin
	if err := database.DB.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		utils.Error(c, 4001, "用户名或密码错误")
		return
	}
	if !admin.VerifyPassword(req.Password) {
		utils.Error(c, 4001, "用户名或密码错误")
		return
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.Error(c, 5000, "Token 签发失败")
		return
	}

	utils.Success(c, "登录成功", gin.H{
		"token": token,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"role":     admin.Role,
		},
	})
}

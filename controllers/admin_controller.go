// file: controllers/admin_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SALIKRAFIQ01/th16/database"
	"github.com/SALIKRAFIQ01/th16/models"
	"github.com/SALIKRAFIQ01/th16/services"
	"github.com/SALIKRAFIQ01/th16/utils"
)

const adminTeamsCacheKey = "admin:teams"

// AdminTeamView 管理端队伍列表条目
type AdminTeamView struct {
	ID           uint32            `json:"id"`
	TeamName     string            `json:"team_name"`
	CurrentRound int               `json:"current_round"`
	CurrentClue  int               `json:"current_clue"`
	Status       models.TeamStatus `json:"status"`
	StartTime    time.Time         `json:"start_time"`
	ElapsedTime  int64             `json:"elapsed_time"`
	TotalTime    int64             `json:"total_time"`
	Rank         *uint             `json:"rank"`
	EliminatedAt *int              `json:"eliminated_at"`
}

// GetAllTeams 管理端队伍总览，短缓存保证准实时
func GetAllTeams(c *gin.Context) {
	if val, err := database.RDB.Get(database.Ctx, adminTeamsCacheKey).Result(); err == nil {
		var cached []AdminTeamView
		if json.Unmarshal([]byte(val), &cached) == nil {
			utils.Success(c, "success (from cache)", gin.H{"teams": cached})
			return
		}
	}

	var teams []models.Team
	if err := database.DB.Order("total_time asc, created_at asc").Find(&teams).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	now := time.Now()
	views := make([]AdminTeamView, 0, len(teams))
	for _, t := range teams {
		views = append(views, AdminTeamView{
			ID:           t.ID,
			TeamName:     t.TeamName,
			CurrentRound: t.CurrentRound,
			CurrentClue:  t.CurrentClue,
			Status:       t.Status,
			StartTime:    t.StartTime,
			ElapsedTime:  int64(now.Sub(t.StartTime).Seconds()),
			TotalTime:    t.TotalTime,
			Rank:         t.Rank,
			EliminatedAt: t.EliminatedAt,
		})
	}

	if data, err := json.Marshal(views); err == nil {
		database.RDB.Set(database.Ctx, adminTeamsCacheKey, data, 5*time.Second)
	}
	utils.Success(c, "success", gin.H{"teams": views})
}

// CreateTeam 创建队伍并生成登录暗号。明文暗号只在这一次响应里出现，
// 落库的只有哈希
func CreateTeam(c *gin.Context) {
	var req struct {
		TeamName string `json:"team_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.TeamName) == "" {
		utils.Error(c, 1001, "请提供队伍名称")
		return
	}

	code := utils.GenerateTeamCode(8)
	team := models.Team{
		TeamName:     strings.TrimSpace(req.TeamName),
		HashedCode:   code, // BeforeSave Hook 落库前哈希
		CurrentRound: models.FirstRound,
		CurrentClue:  1,
		Status:       models.TeamStatusActive,
		StartTime:    time.Now(),
	}
	if err := database.DB.Create(&team).Error; err != nil {
		utils.Error(c, 5000, "创建队伍失败: "+err.Error())
		return
	}
	invalidateTeamsCache()

	utils.Success(c, "队伍创建成功", gin.H{
		"id":        team.ID,
		"team_name": team.TeamName,
		"team_code": code,
	})
}

// GetTeamDetails 管理端单队详情（含各轮用时与完成历史）
func GetTeamDetails(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	var completed []models.CompletedClue
	database.DB.Where("team_id = ?", team.ID).Order("completed_at asc").Find(&completed)

	var photos []models.Submission
	database.DB.Where("team_id = ? AND type = ?", team.ID, models.SubmissionTypePhoto).
		Order("submitted_at asc").Find(&photos)

	utils.Success(c, "success", gin.H{
		"team":             team,
		"elapsed_time":     int64(time.Since(team.StartTime).Seconds()),
		"completed_clues":  completed,
		"submitted_photos": photos,
	})
}

// UpdateTeamStatus 管理端手动调整队伍状态/坐标
func UpdateTeamStatus(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status       models.TeamStatus `json:"status"`
		CurrentRound int               `json:"current_round"`
		CurrentClue  int               `json:"current_clue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	if req.Status != "" {
		switch req.Status {
		case models.TeamStatusActive, models.TeamStatusEliminated,
			models.TeamStatusFinalist, models.TeamStatusWinner:
			team.Status = req.Status
		default:
			utils.Error(c, 1001, "status 取值无效")
			return
		}
	}
	if req.CurrentRound != 0 {
		if !models.ValidRound(req.CurrentRound) {
			utils.Error(c, 1001, "轮次编号无效")
			return
		}
		team.CurrentRound = req.CurrentRound
	}
	if req.CurrentClue != 0 {
		team.CurrentClue = req.CurrentClue
	}

	if err := database.DB.Save(&team).Error; err != nil {
		utils.Error(c, 5000, "更新失败: "+err.Error())
		return
	}
	invalidateTeamsCache()

	utils.Success(c, "队伍已更新", gin.H{"team": team})
}

// OverrideElimination 撤销淘汰（唯一允许的逆向状态迁移）
func OverrideElimination(engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, _ := strconv.Atoi(c.Param("id"))

		team, err := engine.OverrideElimination(c.Request.Context(), uint32(teamID))
		switch {
		case errors.Is(err, services.ErrTeamNotFound):
			utils.Error(c, 4004, "队伍不存在")
			return
		case errors.Is(err, services.ErrNotEliminated):
			utils.Error(c, 1002, "队伍并未处于淘汰状态")
			return
		case err != nil:
			utils.Error(c, 5000, "操作失败: "+err.Error())
			return
		}
		invalidateTeamsCache()

		utils.Success(c, "已撤销淘汰", gin.H{"team": team})
	}
}

// TriggerCheckpoint 触发指定轮次的晋级结算（仅第 4/6/7 轮）
func TriggerCheckpoint(engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		round, _ := strconv.Atoi(c.Param("round"))

		outcomes, err := engine.RunCheckpoint(c.Request.Context(), round)
		switch {
		case errors.Is(err, services.ErrInvalidRound):
			utils.Error(c, 1001, "该轮次没有结算检查点")
			return
		case errors.Is(err, services.ErrCheckpointApplied):
			utils.Error(c, 2002, "该轮次已结算过")
			return
		case err != nil:
			utils.Error(c, 5000, "结算失败: "+err.Error())
			return
		}
		invalidateTeamsCache()

		utils.Success(c, "结算完成", gin.H{
			"round": round,
			"teams": outcomes,
		})
	}
}

// GetGameStats 全场统计
func GetGameStats(c *gin.Context) {
	var total, active, eliminated, finalists int64
	database.DB.Model(&models.Team{}).Count(&total)
	database.DB.Model(&models.Team{}).Where("status = ?", models.TeamStatusActive).Count(&active)
	database.DB.Model(&models.Team{}).Where("status = ?", models.TeamStatusEliminated).Count(&eliminated)
	database.DB.Model(&models.Team{}).Where("status = ?", models.TeamStatusFinalist).Count(&finalists)

	var winner models.Team
	var winnerData gin.H
	if err := database.DB.Where("status = ?", models.TeamStatusWinner).First(&winner).Error; err == nil {
		winnerData = gin.H{
			"id":         winner.ID,
			"team_name":  winner.TeamName,
			"total_time": winner.TotalTime,
		}
	}

	teamsByRound := make(map[int]int64, models.LastRound)
	for round := models.FirstRound; round <= models.LastRound; round++ {
		var n int64
		database.DB.Model(&models.Team{}).Where("current_round = ?", round).Count(&n)
		teamsByRound[round] = n
	}

	utils.Success(c, "success", gin.H{
		"total_teams":      total,
		"active_teams":     active,
		"eliminated_teams": eliminated,
		"finalists":        finalists,
		"winner":           winnerData,
		"teams_by_round":   teamsByRound,
	})
}

func invalidateTeamsCache() {
	database.RDB.Del(database.Ctx, adminTeamsCacheKey)
}

// file: controllers/clue_controller.go
package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SALIKRAFIQ01/th16/database"
	"github.com/SALIKRAFIQ01/th16/models"
	"github.com/SALIKRAFIQ01/th16/utils"
)

// CreateClueReq 线索创建/更新请求体。答案暗号只在请求里出现，
// 哈希后即丢弃明文
type CreateClueReq struct {
	Round           int      `json:"round"`
	ClueNumber      int      `json:"clue_number"`
	Difficulty      string   `json:"difficulty"`
	ClueText        string   `json:"clue_text"`
	AnswerCode      string   `json:"answer_code"`
	Location        string   `json:"location"`
	Hints           []string `json:"hints"`
	IsShared        bool     `json:"is_shared"`
	AssignedTeamIDs []uint32 `json:"assigned_team_ids"`
}

// GetAllClues 管理端线索列表
func GetAllClues(c *gin.Context) {
	var clues []models.Clue
	if err := database.DB.Preload("AssignedTeams").
		Order("round asc, clue_number asc").Find(&clues).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", gin.H{"clues": clues})
}

// GetClueDetail 管理端线索详情
func GetClueDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var clue models.Clue
	if err := database.DB.Preload("AssignedTeams").First(&clue, id).Error; err != nil {
		utils.Error(c, 4004, "线索不存在")
		return
	}
	utils.Success(c, "success", gin.H{"clue": clue})
}

// CreateClue 创建线索
func CreateClue(c *gin.Context) {
	var req CreateClueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	if !models.ValidRound(req.Round) {
		utils.Error(c, 1001, "轮次编号无效（1-7）")
		return
	}
	if req.ClueNumber < 1 || req.ClueText == "" || strings.TrimSpace(req.AnswerCode) == "" {
		utils.Error(c, 1001, "缺少必填字段")
		return
	}
	difficulty := models.ClueDifficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = models.ClueDifficultyMedium
	}
	if difficulty != models.ClueDifficultyEasy && difficulty != models.ClueDifficultyMedium && difficulty != models.ClueDifficultyHard {
		utils.Error(c, 1001, "difficulty 取值无效（easy/medium/hard）")
		return
	}

	hashed, err := models.HashAnswerCode(req.AnswerCode)
	if err != nil {
		utils.Error(c, 5000, "暗号哈希失败")
		return
	}

	var assigned []models.Team
	if len(req.AssignedTeamIDs) > 0 {
		if err := database.DB.Find(&assigned, req.AssignedTeamIDs).Error; err != nil {
			utils.Error(c, 5000, "查询指派队伍失败")
			return
		}
		if len(assigned) != len(req.AssignedTeamIDs) {
			utils.Error(c, 4004, "指派的队伍不存在")
			return
		}
	}

	clue := models.Clue{
		Round:            req.Round,
		ClueNumber:       req.ClueNumber,
		Difficulty:       difficulty,
		ClueText:         req.ClueText,
		HashedAnswerCode: hashed,
		Location:         req.Location,
		Hints:            req.Hints,
		IsActive:         true,
		IsShared:         req.IsShared,
		AssignedTeams:    assigned,
	}
	if err := database.DB.Create(&clue).Error; err != nil {
		utils.Error(c, 5000, "创建线索失败: "+err.Error())
		return
	}
	utils.Success(c, "线索创建成功", gin.H{"id": clue.ID})
}

// UpdateClue 更新线索；提交了新答案时重新哈希
func UpdateClue(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var clue models.Clue
	if err := database.DB.First(&clue, id).Error; err != nil {
		utils.Error(c, 4004, "线索不存在")
		return
	}

	var req struct {
		Difficulty *string  `json:"difficulty"`
		ClueText   *string  `json:"clue_text"`
		AnswerCode *string  `json:"answer_code"`
		Location   *string  `json:"location"`
		Hints      []string `json:"hints"`
		IsActive   *bool    `json:"is_active"`
		IsShared   *bool    `json:"is_shared"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	if req.Difficulty != nil {
		clue.Difficulty = models.ClueDifficulty(*req.Difficulty)
	}
	if req.ClueText != nil {
		clue.ClueText = *req.ClueText
	}
	if req.AnswerCode != nil && strings.TrimSpace(*req.AnswerCode) != "" {
		hashed, err := models.HashAnswerCode(*req.AnswerCode)
		if err != nil {
			utils.Error(c, 5000, "暗号哈希失败")
			return
		}
		clue.HashedAnswerCode = hashed
	}
	if req.Location != nil {
		clue.Location = *req.Location
	}
	if req.Hints != nil {
		clue.Hints = req.Hints
	}
	if req.IsActive != nil {
		clue.IsActive = *req.IsActive
	}
	if req.IsShared != nil {
		clue.IsShared = *req.IsShared
	}

	if err := database.DB.Save(&clue).Error; err != nil {
		utils.Error(c, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "线索更新成功", gin.H{"clue": clue})
}

// DeleteClue 删除线索（仅限内容管理，比赛数据不作级联删除）
func DeleteClue(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Delete(&models.Clue{}, id)
	if result.Error != nil {
		utils.Error(c, 5000, "删除失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "线索不存在")
		return
	}
	utils.Success(c, "线索已删除", nil)
}

// AssignClue 重设线索的指派队伍名单
func AssignClue(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var clue models.Clue
	if err := database.DB.First(&clue, id).Error; err != nil {
		utils.Error(c, 4004, "线索不存在")
		return
	}

	var req struct {
		TeamIDs []uint32 `json:"team_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var teams []models.Team
	if len(req.TeamIDs) > 0 {
		if err := database.DB.Find(&teams, req.TeamIDs).Error; err != nil {
			utils.Error(c, 5000, "查询指派队伍失败")
			return
		}
	}

	if err := database.DB.Model(&clue).Association("AssignedTeams").Replace(&teams); err != nil {
		utils.Error(c, 5000, "指派失败: "+err.Error())
		return
	}
	utils.Success(c, "线索指派已更新", gin.H{"clue_id": clue.ID, "team_ids": req.TeamIDs})
}

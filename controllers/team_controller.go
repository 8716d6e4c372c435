// file: controllers/team_controller.go
package controllers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SALIKRAFIQ01/th16/services"
	"github.com/SALIKRAFIQ01/th16/utils"
)

func teamIDFrom(c *gin.Context) (uint32, bool) {
	idAny, exists := c.Get("team_id")
	if !exists {
		utils.Error(c, 4001, "未登录")
		return 0, false
	}
	return idAny.(uint32), true
}

// GetCurrentClue 取队伍当前坐标的线索
func GetCurrentClue(engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := teamIDFrom(c)
		if !ok {
			return
		}

		clue, team, err := engine.CurrentClue(c.Request.Context(), teamID)
		switch {
		case errors.Is(err, services.ErrTeamNotFound):
			utils.Error(c, 4004, "队伍不存在")
			return
		case errors.Is(err, services.ErrClueNotFound), errors.Is(err, services.ErrInvalidRound):
			utils.Error(c, 4004, "线索不存在")
			return
		case errors.Is(err, services.ErrAccessDenied):
			utils.Error(c, 4003, "无权查看该线索")
			return
		case err != nil:
			utils.Error(c, 5000, "查询失败")
			return
		}

		utils.Success(c, "success", gin.H{
			"clue": gin.H{
				"id":          clue.ID,
				"round":       clue.Round,
				"clue_number": clue.ClueNumber,
				"clue_text":   clue.ClueText,
				"location":    clue.Location,
				"difficulty":  clue.Difficulty,
				"hints":       clue.Hints,
			},
			"progress": gin.H{
				"current_round": team.CurrentRound,
				"current_clue":  team.CurrentClue,
				"status":        team.Status,
			},
		})
	}
}

// SubmitCode 提交暗号
func SubmitCode(engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := teamIDFrom(c)
		if !ok {
			return
		}

		var req struct {
			Code string `json:"code"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
			utils.Error(c, 1001, "请提供暗号")
			return
		}

		result, err := engine.SubmitCode(c.Request.Context(), teamID, req.Code)
		switch {
		case errors.Is(err, services.ErrTeamEliminated):
			utils.Error(c, 4003, "队伍已被淘汰")
			return
		case errors.Is(err, services.ErrAccessDenied):
			utils.Error(c, 4003, "无权作答该线索")
			return
		case errors.Is(err, services.ErrClueNotFound), errors.Is(err, services.ErrTeamNotFound):
			utils.Error(c, 4004, "线索不存在")
			return
		case err != nil:
			utils.Error(c, 5000, "提交失败，请重试")
			return
		}

		if !result.Correct {
			// 答错不是异常，已记入流水，队伍原地不动
			utils.Error(c, 2001, "暗号错误，请再试一次")
			return
		}

		msg := "暗号正确！下一条线索已解锁"
		if result.RequiresPhoto {
			msg = "暗号正确！请提交照片以完成第 4 轮"
		}
		if result.Finished {
			msg = "完赛！请等待结算"
		}
		utils.Success(c, msg, gin.H{
			"correct":        true,
			"requires_photo": result.RequiresPhoto,
			"finished":       result.Finished,
			"next":           result.Next,
			"status":         result.Status,
		})
	}
}

// SubmitPhoto 提交照片。第 4 轮末题的照片会触发定格并推进到第 5 轮
func SubmitPhoto(engine *services.Engine, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := teamIDFrom(c)
		if !ok {
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			utils.Error(c, 1001, "请上传照片")
			return
		}
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			utils.Error(c, 1002, "只接受图片文件")
			return
		}

		name := utils.GeneratePhotoName(filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
			utils.Error(c, 5000, "照片保存失败")
			return
		}
		photoURL := "/uploads/" + name

		result, err := engine.SubmitPhoto(c.Request.Context(), teamID, photoURL)
		switch {
		case errors.Is(err, services.ErrTeamEliminated):
			utils.Error(c, 4003, "队伍已被淘汰")
			return
		case errors.Is(err, services.ErrTeamNotFound):
			utils.Error(c, 4004, "队伍不存在")
			return
		case err != nil:
			utils.Error(c, 5000, "提交失败，请重试")
			return
		}

		msg := "照片提交成功"
		if result.Advanced {
			msg = "照片提交成功！第 4 轮完成，进入第 5 轮"
		}
		utils.Success(c, msg, gin.H{
			"advanced":  result.Advanced,
			"next":      result.Next,
			"photo_url": photoURL,
			"status":    result.Status,
		})
	}
}

// GetTeamProgress 查询本队进度
func GetTeamProgress(engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := teamIDFrom(c)
		if !ok {
			return
		}

		progress, err := engine.Progress(c.Request.Context(), teamID)
		switch {
		case errors.Is(err, services.ErrTeamNotFound):
			utils.Error(c, 4004, "队伍不存在")
			return
		case err != nil:
			utils.Error(c, 5000, "查询失败")
			return
		}

		utils.Success(c, "success", progress)
	}
}

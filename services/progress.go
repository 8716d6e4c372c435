// file: services/progress.go
package services

import (
	"context"

	"github.com/SALIKRAFIQ01/th16/models"
)

// TeamProgress 队伍进度概要（边界接口 getProgress）
type TeamProgress struct {
	TeamName     string                `json:"team_name"`
	CurrentRound int                   `json:"current_round"`
	CurrentClue  int                   `json:"current_clue"`
	Status       models.TeamStatus     `json:"status"`
	TotalTime    int64                 `json:"total_time"`
	ElapsedTime  int64                 `json:"elapsed_time"`
	Rank         *uint                 `json:"rank"`
	Completed    int64                 `json:"completed_clues"`
	RoundTimes   models.RoundDurations `json:"round_times"`
}

// Progress 汇总队伍进度：总用时、整场已耗时、名次、完成线索数
func (e *Engine) Progress(ctx context.Context, teamID uint32) (*TeamProgress, error) {
	team, err := e.store.TeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	completed, err := e.store.CompletedClueCount(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &TeamProgress{
		TeamName:     team.TeamName,
		CurrentRound: team.CurrentRound,
		CurrentClue:  team.CurrentClue,
		Status:       team.Status,
		TotalTime:    team.TotalTime,
		ElapsedTime:  int64(e.clock.Now().Sub(team.StartTime).Seconds()),
		Rank:         team.Rank,
		Completed:    completed,
		RoundTimes:   team.RoundTimes,
	}, nil
}

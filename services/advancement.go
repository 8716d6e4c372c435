// file: services/advancement.go
package services

import (
	"context"
	"sort"

	"github.com/SALIKRAFIQ01/th16/models"
)

// 结算名额
const (
	Round4AdvanceCount  = 5 // 第 4 轮结算后保留的队伍数
	Round6FinalistCount = 2 // 第 6 轮结算后的决赛名额
)

// 结算检查点所在的轮次
const (
	CheckpointRound4 = 4
	CheckpointRound6 = 6
	CheckpointRound7 = 7
)

// CheckpointOutcome 结算后单支队伍的去向
type CheckpointOutcome struct {
	TeamID   uint32            `json:"team_id"`
	TeamName string            `json:"team_name"`
	Status   models.TeamStatus `json:"status"`
	Rank     *uint             `json:"rank,omitempty"`
}

// RunCheckpoint 对指定轮次执行批量结算，由管理员显式触发。
// 每轮只会生效一次：落盘标记已存在时返回 ErrCheckpointApplied，
// 重复触发不会对已定局的队伍二次排名。
func (e *Engine) RunCheckpoint(ctx context.Context, round int) ([]CheckpointOutcome, error) {
	if round != CheckpointRound4 && round != CheckpointRound6 && round != CheckpointRound7 {
		return nil, ErrInvalidRound
	}

	fresh, err := e.store.BeginCheckpoint(ctx, round)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return nil, ErrCheckpointApplied
	}

	var outcomes []CheckpointOutcome
	switch round {
	case CheckpointRound4:
		outcomes, err = e.settleRound4(ctx)
	case CheckpointRound6:
		outcomes, err = e.settleRound6(ctx)
	case CheckpointRound7:
		outcomes, err = e.settleRound7(ctx)
	}
	if err != nil {
		return nil, err
	}

	event := EventRoundCompletion
	if round == CheckpointRound7 {
		event = EventGameComplete
	}
	if e.notifier != nil {
		e.notifier.Emit(event, map[string]interface{}{
			"round": round,
			"teams": outcomes,
		})
	}
	return outcomes, nil
}

// settleRound4 按总用时升序，前 5 名保留并记名次，其余淘汰。
// 并列靠报名先后定序（存储层已按 total_time, created_at, id 稳定排序）。
// 不足 5 支时全部保留，只记名次。
func (e *Engine) settleRound4(ctx context.Context) ([]CheckpointOutcome, error) {
	teams, err := e.store.ActiveTeamsFromRound(ctx, CheckpointRound4)
	if err != nil {
		return nil, err
	}

	outcomes := make([]CheckpointOutcome, 0, len(teams))
	for i, team := range teams {
		rank := uint(i + 1)
		team.Rank = &rank
		if i >= Round4AdvanceCount {
			team.Status = models.TeamStatusEliminated
			r := CheckpointRound4
			team.EliminatedAt = &r
		}
		if err := e.store.SaveTeam(ctx, team); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcomeOf(team))
	}
	return outcomes, nil
}

// settleRound6 只看已定格第 6 轮用时的队伍（没交卷的不受影响），
// 最快 2 支晋级决赛，其余淘汰。完成第 6 轮的队伍此刻已站在第 7 轮，
// 所以按轮次下限取人，再用定格记录过滤。
func (e *Engine) settleRound6(ctx context.Context) ([]CheckpointOutcome, error) {
	teams, err := e.store.ActiveTeamsFromRound(ctx, CheckpointRound6)
	if err != nil {
		return nil, err
	}
	finished := finishedByRoundTime(teams, CheckpointRound6)

	outcomes := make([]CheckpointOutcome, 0, len(finished))
	for i, team := range finished {
		if i < Round6FinalistCount {
			team.Status = models.TeamStatusFinalist
		} else {
			team.Status = models.TeamStatusEliminated
			r := CheckpointRound6
			team.EliminatedAt = &r
		}
		if err := e.store.SaveTeam(ctx, team); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcomeOf(team))
	}
	return outcomes, nil
}

// settleRound7 决赛：已完赛的决赛队伍中最快者夺冠，
// 其余（至多一支）淘汰；尚未完赛的不受影响，继续比。
func (e *Engine) settleRound7(ctx context.Context) ([]CheckpointOutcome, error) {
	teams, err := e.store.FinalistsInRound(ctx, CheckpointRound7)
	if err != nil {
		return nil, err
	}
	finished := finishedByRoundTime(teams, CheckpointRound7)

	outcomes := make([]CheckpointOutcome, 0, len(finished))
	for i, team := range finished {
		if i == 0 {
			team.Status = models.TeamStatusWinner
		} else {
			team.Status = models.TeamStatusEliminated
			r := CheckpointRound7
			team.EliminatedAt = &r
		}
		if err := e.store.SaveTeam(ctx, team); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcomeOf(team))
	}
	return outcomes, nil
}

// finishedByRoundTime 过滤出已定格指定轮次用时的队伍，
// 按该轮用时升序稳定排序（并列保持报名先后）。
func finishedByRoundTime(teams []*models.Team, round int) []*models.Team {
	finished := make([]*models.Team, 0, len(teams))
	for _, team := range teams {
		if _, ok := team.RoundTimes.Get(round); ok {
			finished = append(finished, team)
		}
	}
	sort.SliceStable(finished, func(i, j int) bool {
		ti, _ := finished[i].RoundTimes.Get(round)
		tj, _ := finished[j].RoundTimes.Get(round)
		return ti < tj
	})
	return finished
}

func outcomeOf(team *models.Team) CheckpointOutcome {
	return CheckpointOutcome{
		TeamID:   team.ID,
		TeamName: team.TeamName,
		Status:   team.Status,
		Rank:     team.Rank,
	}
}

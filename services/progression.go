// file: services/progression.go
package services

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/SALIKRAFIQ01/th16/models"
)

// Engine 闯关推进引擎。同一队伍的读-改-写经由 GameStore.WithTeam
// 串行化执行，并发提交不会把同一轮定格两次。
type Engine struct {
	store    GameStore
	timer    *RoundTimer
	clock    clockwork.Clock
	notifier Notifier
}

// NewEngine 构造引擎。notifier 可为 nil（仅跳过推送）；
// clock 为 nil 时使用真实时钟。
func NewEngine(store GameStore, notifier Notifier, clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		store:    store,
		timer:    NewRoundTimer(clock),
		clock:    clock,
		notifier: notifier,
	}
}

// Position 队伍坐标：(轮次, 线索号)
type Position struct {
	Round int `json:"round"`
	Clue  int `json:"clue"`
}

// CodeResult 暗号提交的结果
type CodeResult struct {
	Correct       bool              // 暗号是否正确
	RequiresPhoto bool              // 第 4 轮末题答对后需先交照片
	Next          *Position         // 前进后的新坐标（原地不动时为 nil）
	Finished      bool              // 第 7 轮完赛，等待结算定胜负
	Status        models.TeamStatus // 操作后的队伍状态
}

// PhotoResult 照片提交的结果
type PhotoResult struct {
	Advanced bool      // 是否由此推进（仅第 4 轮末题会推进）
	Next     *Position // 推进后的新坐标
	Status   models.TeamStatus
}

// SubmitCode 处理一次暗号提交。无论对错都追加一条提交流水；
// 答错不改变任何队伍状态。
func (e *Engine) SubmitCode(ctx context.Context, teamID uint32, code string) (*CodeResult, error) {
	var result *CodeResult
	var snapshot models.Team

	err := e.store.WithTeam(ctx, teamID, func(tx Tx, team *models.Team) error {
		// 淘汰队伍应在边界层拦截，这里兜底
		if team.Status == models.TeamStatusEliminated {
			return ErrTeamEliminated
		}

		clue, err := ResolveClue(ctx, tx, team, team.CurrentRound, team.CurrentClue)
		if err != nil {
			return err
		}

		now := e.clock.Now()
		sub := &models.Submission{
			TeamID:        team.ID,
			ClueID:        clue.ID,
			Round:         team.CurrentRound,
			Type:          models.SubmissionTypeCode,
			SubmittedCode: code,
			IsCorrect:     VerifyAnswer(clue, code),
			TimeTaken:     e.timer.Elapsed(team, team.CurrentRound),
			SubmittedAt:   now,
		}
		if err := tx.CreateSubmission(sub); err != nil {
			return err
		}

		if !sub.IsCorrect {
			result = &CodeResult{Correct: false, Status: team.Status}
			snapshot = *team
			return nil
		}

		// 答对：记入完成历史
		if err := tx.CreateCompletedClue(&models.CompletedClue{
			TeamID:      team.ID,
			ClueID:      clue.ID,
			Round:       team.CurrentRound,
			ClueNumber:  team.CurrentClue,
			CompletedAt: now,
		}); err != nil {
			return err
		}

		// 第 4 轮末题：先交照片才算完成本轮，坐标原地不动
		if team.CurrentRound == models.PhotoRound && team.CurrentClue == models.PhotoCluePos {
			result = &CodeResult{Correct: true, RequiresPhoto: true, Status: team.Status}
			snapshot = *team
			return nil
		}

		next, err := e.findNext(ctx, tx, team)
		if err != nil {
			return err
		}

		switch {
		case next == nil:
			if team.CurrentRound != models.LastRound {
				// 赛程内容缺失，不应吞掉
				return ErrClueNotFound
			}
			// 决赛完赛：定格第 7 轮用时，静候结算定胜负
			e.timer.Finalize(team, models.LastRound)
			result = &CodeResult{Correct: true, Finished: true, Status: team.Status}
		case next.Round > team.CurrentRound:
			// 跨轮：只在此刻定格刚完成的那一轮
			e.timer.Finalize(team, team.CurrentRound)
			team.CurrentRound = next.Round
			team.CurrentClue = next.ClueNumber
			team.RoundStartTimes.Set(next.Round, now)
			result = &CodeResult{
				Correct: true,
				Next:    &Position{Round: team.CurrentRound, Clue: team.CurrentClue},
				Status:  team.Status,
			}
		default:
			// 同轮下一题，计时连续进行
			team.CurrentClue = next.ClueNumber
			result = &CodeResult{
				Correct: true,
				Next:    &Position{Round: team.CurrentRound, Clue: team.CurrentClue},
				Status:  team.Status,
			}
		}

		if err := tx.SaveTeam(team); err != nil {
			return err
		}
		snapshot = *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Correct {
		e.emitTeamUpdate(&snapshot)
	}
	return result, nil
}

// SubmitPhoto 处理一次照片提交。照片一律计入提交流水；
// 只有第 4 轮末题的照片会触发与跨轮相同的定格并推进到第 5 轮第 1 题。
func (e *Engine) SubmitPhoto(ctx context.Context, teamID uint32, photoURL string) (*PhotoResult, error) {
	var result *PhotoResult
	var snapshot models.Team

	err := e.store.WithTeam(ctx, teamID, func(tx Tx, team *models.Team) error {
		if team.Status == models.TeamStatusEliminated {
			return ErrTeamEliminated
		}

		now := e.clock.Now()
		sub := &models.Submission{
			TeamID:      team.ID,
			Round:       team.CurrentRound,
			Type:        models.SubmissionTypePhoto,
			PhotoURL:    photoURL,
			TimeTaken:   e.timer.Elapsed(team, team.CurrentRound),
			SubmittedAt: now,
		}
		// 关联当前线索，解析不到时不阻断照片归档
		if clue, _ := findClueAt(ctx, tx, team.ID, team.CurrentRound, team.CurrentClue); clue != nil {
			sub.ClueID = clue.ID
		}
		if err := tx.CreateSubmission(sub); err != nil {
			return err
		}

		result = &PhotoResult{Status: team.Status}
		if team.CurrentRound == models.PhotoRound && team.CurrentClue == models.PhotoCluePos {
			e.timer.Finalize(team, models.PhotoRound)
			team.CurrentRound = models.PhotoNextRound
			team.CurrentClue = 1
			team.RoundStartTimes.Set(models.PhotoNextRound, now)
			result.Advanced = true
			result.Next = &Position{Round: team.CurrentRound, Clue: team.CurrentClue}
		}

		if err := tx.SaveTeam(team); err != nil {
			return err
		}
		snapshot = *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emitTeamUpdate(&snapshot)
	return result, nil
}

// CurrentClue 取队伍当前坐标的线索（边界接口 getCurrentClue）
func (e *Engine) CurrentClue(ctx context.Context, teamID uint32) (*models.Clue, *models.Team, error) {
	team, err := e.store.TeamByID(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	if team == nil {
		return nil, nil, ErrTeamNotFound
	}
	clue, err := ResolveClue(ctx, e.store, team, team.CurrentRound, team.CurrentClue)
	if err != nil {
		return nil, team, err
	}
	return clue, team, nil
}

// findNext 查找队伍的下一个坐标：优先同轮下一题，
// 没有则看下一轮第 1 题；都没有返回 (nil, nil)。
func (e *Engine) findNext(ctx context.Context, cf ClueFinder, team *models.Team) (*models.Clue, error) {
	next, err := findClueAt(ctx, cf, team.ID, team.CurrentRound, team.CurrentClue+1)
	if err != nil || next != nil {
		return next, err
	}
	if team.CurrentRound < models.LastRound {
		return findClueAt(ctx, cf, team.ID, team.CurrentRound+1, 1)
	}
	return nil, nil
}

// OverrideElimination 管理员撤销淘汰：唯一允许的逆向状态迁移
// （eliminated → active），同时清除淘汰轮次与名次。
func (e *Engine) OverrideElimination(ctx context.Context, teamID uint32) (*models.Team, error) {
	var snapshot models.Team
	err := e.store.WithTeam(ctx, teamID, func(tx Tx, team *models.Team) error {
		if team.Status != models.TeamStatusEliminated {
			return ErrNotEliminated
		}
		team.Status = models.TeamStatusActive
		team.EliminatedAt = nil
		team.Rank = nil
		if err := tx.SaveTeam(team); err != nil {
			return err
		}
		snapshot = *team
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.emitTeamUpdate(&snapshot)
	return &snapshot, nil
}

func (e *Engine) emitTeamUpdate(team *models.Team) {
	if e.notifier == nil {
		return
	}
	e.notifier.Emit(EventTeamUpdate, map[string]interface{}{
		"team_id":       team.ID,
		"team_name":     team.TeamName,
		"current_round": team.CurrentRound,
		"current_clue":  team.CurrentClue,
		"status":        team.Status,
		"total_time":    team.TotalTime,
	})
}

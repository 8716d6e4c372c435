// file: services/resolver.go
package services

import (
	"context"

	"github.com/SALIKRAFIQ01/th16/models"
)

// findClueAt 两遍查询：先按指派/公开/共享匹配，再兜底只按坐标匹配。
// 共享线索与队伍专属线索可能混在同一轮，故需要第二遍。
// 查不到返回 (nil, nil)。
func findClueAt(ctx context.Context, cf ClueFinder, teamID uint32, round, number int) (*models.Clue, error) {
	clue, err := cf.ClueForTeam(ctx, teamID, round, number)
	if err != nil {
		return nil, err
	}
	if clue == nil {
		clue, err = cf.ClueAt(ctx, round, number)
		if err != nil {
			return nil, err
		}
	}
	return clue, nil
}

// ResolveClue 解析队伍在 (round, number) 坐标上应看到的线索。
// 线索存在但未对该队伍开放时返回 ErrAccessDenied，与 ErrClueNotFound 区分开。
func ResolveClue(ctx context.Context, cf ClueFinder, team *models.Team, round, number int) (*models.Clue, error) {
	if !models.ValidRound(round) {
		return nil, ErrInvalidRound
	}

	clue, err := findClueAt(ctx, cf, team.ID, round, number)
	if err != nil {
		return nil, err
	}
	if clue == nil {
		return nil, ErrClueNotFound
	}

	// 有指派名单、且不含该队伍、又未标记共享 → 拒绝访问
	if len(clue.AssignedTeams) > 0 && !clue.AssignedTo(team.ID) && !clue.IsShared {
		return nil, ErrAccessDenied
	}
	return clue, nil
}

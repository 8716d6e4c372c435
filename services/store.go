// file: services/store.go
package services

import (
	"context"

	"github.com/SALIKRAFIQ01/th16/models"
)

// ClueFinder 线索查询端口。查不到时返回 (nil, nil)，
// 只有存储层故障才返回非 nil error。
type ClueFinder interface {
	// ClueForTeam 第一遍查询：坐标命中且（指派给该队伍 / 未指派任何队伍 / 标记共享），仅限启用的线索
	ClueForTeam(ctx context.Context, teamID uint32, round, number int) (*models.Clue, error)
	// ClueAt 第二遍兜底查询：仅按坐标匹配启用的线索，不管指派关系
	ClueAt(ctx context.Context, round, number int) (*models.Clue, error)
}

// Tx 在单支队伍的独占事务内可用的写操作集合
type Tx interface {
	ClueFinder
	CreateSubmission(sub *models.Submission) error
	CreateCompletedClue(cc *models.CompletedClue) error
	SaveTeam(team *models.Team) error
}

// GameStore 核心引擎依赖的存储端口
type GameStore interface {
	ClueFinder

	// TeamByID 查不到时返回 (nil, nil)
	TeamByID(ctx context.Context, id uint32) (*models.Team, error)

	// WithTeam 锁定指定队伍后执行读-改-写，同一队伍的并发提交在此串行化；
	// 队伍不存在时返回 ErrTeamNotFound，fn 返回错误时整体回滚
	WithTeam(ctx context.Context, teamID uint32, fn func(tx Tx, team *models.Team) error) error

	// ActiveTeamsFromRound 状态 active 且当前轮次 >= round 的队伍，
	// 按总用时升序、报名先后（created_at, id）稳定排序。
	// 完成某轮的队伍当前轮次已是下一轮，结算取人必须用下限而非等值
	ActiveTeamsFromRound(ctx context.Context, round int) ([]*models.Team, error)
	// FinalistsInRound 状态 finalist 且当前轮次 == round 的队伍，报名先后排序
	FinalistsInRound(ctx context.Context, round int) ([]*models.Team, error)

	// SaveTeam 单条原子落盘，结算时逐队伍调用
	SaveTeam(ctx context.Context, team *models.Team) error

	// BeginCheckpoint 写入该轮次的结算标记；返回 false 表示此前已结算过
	BeginCheckpoint(ctx context.Context, round int) (bool, error)

	CompletedClueCount(ctx context.Context, teamID uint32) (int64, error)
}

// file: database/store.go
package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SALIKRAFIQ01/th16/models"
	"github.com/SALIKRAFIQ01/th16/services"
)

// GormStore services.GameStore 的 MySQL 实现
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// 第一遍线索查询：坐标命中且（指派含该队 / 无指派 / 共享），仅限启用。
// 与原有的指派判断逻辑等价：assigned ∨ unassigned ∨ shared
func clueForTeam(db *gorm.DB, ctx context.Context, teamID uint32, round, number int) (*models.Clue, error) {
	var clue models.Clue
	err := db.WithContext(ctx).
		Preload("AssignedTeams").
		Where("round = ? AND clue_number = ? AND is_active = ?", round, number, true).
		Where(db.Where("is_shared = ?", true).
			Or("NOT EXISTS (SELECT 1 FROM hunt_clue_team ct WHERE ct.clue_id = hunt_clue.id)").
			Or("EXISTS (SELECT 1 FROM hunt_clue_team ct2 WHERE ct2.clue_id = hunt_clue.id AND ct2.team_id = ?)", teamID)).
		First(&clue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &clue, nil
}

// 第二遍兜底查询：只按坐标匹配启用的线索
func clueAt(db *gorm.DB, ctx context.Context, round, number int) (*models.Clue, error) {
	var clue models.Clue
	err := db.WithContext(ctx).
		Preload("AssignedTeams").
		Where("round = ? AND clue_number = ? AND is_active = ?", round, number, true).
		First(&clue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &clue, nil
}

func (s *GormStore) ClueForTeam(ctx context.Context, teamID uint32, round, number int) (*models.Clue, error) {
	return clueForTeam(s.db, ctx, teamID, round, number)
}

func (s *GormStore) ClueAt(ctx context.Context, round, number int) (*models.Clue, error) {
	return clueAt(s.db, ctx, round, number)
}

func (s *GormStore) TeamByID(ctx context.Context, id uint32) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// WithTeam 对队伍行加 FOR UPDATE 锁后执行读-改-写，
// 同一队伍的并发提交在事务边界上串行化
func (s *GormStore) WithTeam(ctx context.Context, teamID uint32, fn func(tx services.Tx, team *models.Team) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrTeamNotFound
			}
			return err
		}
		return fn(&gormTx{db: tx}, &team)
	})
}

func (s *GormStore) ActiveTeamsFromRound(ctx context.Context, round int) ([]*models.Team, error) {
	var teams []*models.Team
	err := s.db.WithContext(ctx).
		Where("status = ? AND current_round >= ?", models.TeamStatusActive, round).
		Order("total_time asc, created_at asc, id asc").
		Find(&teams).Error
	return teams, err
}

func (s *GormStore) FinalistsInRound(ctx context.Context, round int) ([]*models.Team, error) {
	var teams []*models.Team
	err := s.db.WithContext(ctx).
		Where("status = ? AND current_round = ?", models.TeamStatusFinalist, round).
		Order("created_at asc, id asc").
		Find(&teams).Error
	return teams, err
}

func (s *GormStore) SaveTeam(ctx context.Context, team *models.Team) error {
	return s.db.WithContext(ctx).Save(team).Error
}

// BeginCheckpoint 依赖 round 列的唯一约束实现一次性标记：
// 冲突时静默不写，RowsAffected 为 0 即表示该轮已结算过
func (s *GormStore) BeginCheckpoint(ctx context.Context, round int) (bool, error) {
	cp := models.Checkpoint{Round: round, AppliedAt: time.Now()}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&cp)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) CompletedClueCount(ctx context.Context, teamID uint32) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.CompletedClue{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

// gormTx services.Tx 的事务内实现
type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) ClueForTeam(ctx context.Context, teamID uint32, round, number int) (*models.Clue, error) {
	return clueForTeam(t.db, ctx, teamID, round, number)
}

func (t *gormTx) ClueAt(ctx context.Context, round, number int) (*models.Clue, error) {
	return clueAt(t.db, ctx, round, number)
}

func (t *gormTx) CreateSubmission(sub *models.Submission) error {
	return t.db.Create(sub).Error
}

func (t *gormTx) CreateCompletedClue(cc *models.CompletedClue) error {
	return t.db.Create(cc).Error
}

func (t *gormTx) SaveTeam(team *models.Team) error {
	return t.db.Save(team).Error
}

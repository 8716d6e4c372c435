// file: models/team.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 自定义队伍状态类型
type TeamStatus string

const (
	TeamStatusActive     TeamStatus = "active"
	TeamStatusEliminated TeamStatus = "eliminated"
	TeamStatusFinalist   TeamStatus = "finalist"
	TeamStatusWinner     TeamStatus = "winner"
)

// 比赛共 7 轮
const (
	FirstRound = 1
	LastRound  = 7

	// 第 4 轮最后一个线索必须提交照片后才算完成本轮
	PhotoRound     = 4
	PhotoCluePos   = 4
	PhotoNextRound = 5
)

// ValidRound 校验轮次编号是否在 1..7 范围内
func ValidRound(round int) bool {
	return round >= FirstRound && round <= LastRound
}

// RoundStarts / RoundDurations 以轮次编号为下标（0 号位弃用），
// 序列化为 JSON 列存储。统一用整数下标，避免字符串/数字键混用。
type RoundStarts [LastRound + 1]*time.Time
type RoundDurations [LastRound + 1]*int64

// Get 返回指定轮次的开始时间，轮次越界或未记录时返回 false
func (rs *RoundStarts) Get(round int) (time.Time, bool) {
	if !ValidRound(round) || rs[round] == nil {
		return time.Time{}, false
	}
	return *rs[round], true
}

// Set 记录指定轮次的开始时间，轮次越界时忽略
func (rs *RoundStarts) Set(round int, t time.Time) {
	if !ValidRound(round) {
		return
	}
	rs[round] = &t
}

// Get 返回指定轮次已定格的用时（秒）
func (rd *RoundDurations) Get(round int) (int64, bool) {
	if !ValidRound(round) || rd[round] == nil {
		return 0, false
	}
	return *rd[round], true
}

// Set 定格指定轮次的用时，轮次越界时忽略
func (rd *RoundDurations) Set(round int, seconds int64) {
	if !ValidRound(round) {
		return
	}
	rd[round] = &seconds
}

type Team struct {
	ID              uint32         `gorm:"primarykey" json:"id"`
	TeamName        string         `gorm:"size:100;unique;not null" json:"team_name"`
	HashedCode      string         `gorm:"size:255;not null" json:"-"`
	CurrentRound    int            `gorm:"not null;default:1" json:"current_round"`
	CurrentClue     int            `gorm:"not null;default:1" json:"current_clue"`
	Status          TeamStatus     `gorm:"type:enum('active','eliminated','finalist','winner');default:'active';not null" json:"status"`
	StartTime       time.Time      `gorm:"not null" json:"start_time"`
	RoundStartTimes RoundStarts    `gorm:"serializer:json" json:"round_start_times"`
	RoundTimes      RoundDurations `gorm:"serializer:json" json:"round_times"`
	TotalTime       int64          `gorm:"not null;default:0" json:"total_time"`
	Rank            *uint          `json:"rank"`
	EliminatedAt    *int           `json:"eliminated_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Team) TableName() string {
	return "hunt_team"
}

// BeforeSave GORM Hook，保存前自动哈希登录暗号（明文不落库）
func (t *Team) BeforeSave(tx *gorm.DB) (err error) {
	if t.ID == 0 || tx.Statement.Changed("HashedCode") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(t.HashedCode), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		t.HashedCode = string(hashed)
	}
	return
}

// VerifyCode 校验队伍登录暗号
func (t *Team) VerifyCode(code string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(t.HashedCode), []byte(code))
	return err == nil
}

// CompletedClue 队伍完成线索的历史记录，只追加不修改
type CompletedClue struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TeamID      uint32    `gorm:"index;not null" json:"team_id"`
	ClueID      uint32    `gorm:"not null" json:"clue_id"`
	Round       int       `gorm:"not null" json:"round"`
	ClueNumber  int       `gorm:"not null" json:"clue_number"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
}

func (CompletedClue) TableName() string {
	return "hunt_completed_clue"
}

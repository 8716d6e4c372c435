// file: models/checkpoint.go
package models

import (
	"time"
)

// Checkpoint 晋级结算的落盘标记，round 唯一，
// 同一轮次的结算只会生效一次（重复触发直接拒绝）
type Checkpoint struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	Round     int       `gorm:"unique;not null" json:"round"`
	AppliedAt time.Time `gorm:"not null" json:"applied_at"`
}

func (Checkpoint) TableName() string {
	return "hunt_checkpoint"
}

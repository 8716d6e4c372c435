// file: models/clue.go
package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type ClueDifficulty string

const (
	ClueDifficultyEasy   ClueDifficulty = "easy"
	ClueDifficultyMedium ClueDifficulty = "medium"
	ClueDifficultyHard   ClueDifficulty = "hard"
)

// StringList 线索提示列表，序列化为 JSON 列
type StringList []string

type Clue struct {
	ID               uint32         `gorm:"primarykey" json:"id"`
	Round            int            `gorm:"not null;index:idx_round_number" json:"round"`
	ClueNumber       int            `gorm:"not null;index:idx_round_number" json:"clue_number"`
	Difficulty       ClueDifficulty `gorm:"type:enum('easy','medium','hard');default:'medium';not null" json:"difficulty"`
	ClueText         string         `gorm:"type:text;not null" json:"clue_text"`
	HashedAnswerCode string         `gorm:"size:255;not null" json:"-"`
	Location         string         `gorm:"size:255" json:"location"`
	Hints            StringList     `gorm:"serializer:json" json:"hints"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	IsShared         bool           `gorm:"default:false" json:"is_shared"`
	AssignedTeams    []Team         `gorm:"many2many:hunt_clue_team" json:"assigned_teams"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Clue) TableName() string {
	return "hunt_clue"
}

// NormalizeAnswer 提交答案统一小写并去除首尾空白后再参与哈希比对
func NormalizeAnswer(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// HashAnswerCode 生成答案暗号的单向哈希，入库前调用，明文随即丢弃
func HashAnswerCode(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(NormalizeAnswer(code)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// AssignedTo 判断线索是否指派给了指定队伍
func (c *Clue) AssignedTo(teamID uint32) bool {
	for _, t := range c.AssignedTeams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

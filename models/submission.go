// file: models/submission.go
package models

import (
	"time"
)

type SubmissionType string

const (
	SubmissionTypeCode  SubmissionType = "code"
	SubmissionTypePhoto SubmissionType = "photo"
)

// Submission 提交流水账，只增不改不删
type Submission struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	TeamID        uint32         `gorm:"index;not null" json:"team_id"`
	ClueID        uint32         `gorm:"not null" json:"clue_id"`
	Round         int            `gorm:"not null" json:"round"`
	Type          SubmissionType `gorm:"type:enum('code','photo');not null" json:"type"`
	SubmittedCode string         `gorm:"size:255" json:"submitted_code,omitempty"`
	PhotoURL      string         `gorm:"size:512" json:"photo_url,omitempty"`
	IsCorrect     bool           `json:"is_correct"`
	TimeTaken     int64          `json:"time_taken"`
	SubmittedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"submitted_at"`
}

func (Submission) TableName() string {
	return "hunt_submission"
}

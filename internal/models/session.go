package models

import (
	"time"

	"gorm.io/gorm"
)

// Practice kinds
const (
	KindBreathing = "breathing"
	KindPanic     = "panic"
	KindStory     = "story"
)

// Practice represents one tracked breathing session
type Practice struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Kind            string     `gorm:"not null;default:breathing" json:"kind"` // breathing, panic, story
	ModeID          int        `json:"mode_id"`
	Voice           string     `json:"voice"` // catalog voice key
	StartedAt       time.Time  `gorm:"not null;index" json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
	DurationSeconds int        `json:"duration_seconds"` // calculated field
	Cycles          int        `json:"cycles"`
}

// Minutes returns the tracked duration rounded down to whole minutes
func (p Practice) Minutes() int {
	return p.DurationSeconds / 60
}

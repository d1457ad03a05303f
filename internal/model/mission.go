package model

import (
	"time"

	"gorm.io/gorm"
)

type MissionStatus string

const (
	StatusOpen       MissionStatus = "Open"
	StatusInProgress MissionStatus = "InProgress"
	StatusCompleted  MissionStatus = "Completed"
	StatusFailed     MissionStatus = "Failed"
)

func ParseMissionStatus(s string) (MissionStatus, bool) {
	switch st := MissionStatus(s); st {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusFailed:
		return st, true
	default:
		return "", false
	}
}

func (s MissionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the mission has reached Completed or Failed.
func (s MissionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Recruiting reports whether the crew roster may change in this status.
// Failed missions recruit again so they can be retried.
func (s MissionStatus) Recruiting() bool {
	return s == StatusOpen || s == StatusFailed
}

type Mission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	ChiefID     uint           `gorm:"index;not null" json:"chief_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description *string        `json:"description,omitempty"`
	Category    string         `gorm:"index" json:"category"`
	Status      MissionStatus  `gorm:"index;not null;default:Open" json:"status"`
}

func (m *Mission) IsChief(brawlerID uint) bool {
	return m != nil && m.ChiefID == brawlerID
}

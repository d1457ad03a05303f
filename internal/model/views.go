package model

import "time"

// MissionView is a mission together with its derived crew count. It is never stored.
type MissionView struct {
	ID               uint          `json:"id"`
	Name             string        `json:"name"`
	Description      *string       `json:"description,omitempty"`
	Category         string        `json:"category"`
	Status           MissionStatus `json:"status"`
	ChiefID          uint          `json:"chief_id"`
	ChiefDisplayName string        `json:"chief_display_name"`
	CrewCount        int64         `json:"crew_count"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type CrewMemberView struct {
	ID                  uint    `json:"id"`
	DisplayName         string  `json:"display_name"`
	AvatarURL           *string `json:"avatar_url,omitempty"`
	MissionSuccessCount int64   `json:"mission_success_count"`
	MissionJoinedCount  int64   `json:"mission_joined_count"`
}

type SystemStats struct {
	ActiveMembers     int64   `json:"active_members"`
	MissionsCompleted int64   `json:"missions_completed"`
	MissionsFailed    int64   `json:"missions_failed"`
	SuccessRate       float64 `json:"success_rate"`
}

// ComputeSuccessRate fills SuccessRate as a percentage of completed among finished missions.
func (s *SystemStats) ComputeSuccessRate() {
	total := s.MissionsCompleted + s.MissionsFailed
	if total == 0 {
		s.SuccessRate = 100
		return
	}

	s.SuccessRate = float64(s.MissionsCompleted) * 100 / float64(total)
}

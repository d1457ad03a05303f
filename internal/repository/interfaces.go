package repository

import (
	"context"

	"github.com/gangbro/missionboard/internal/model"
)

// MissionRepository is the mission store as seen from inside a transaction.
type MissionRepository interface {
	GetByID(id uint) (*model.Mission, error)
	Create(m *model.Mission) error
	UpdateStatus(id, chiefID uint, status model.MissionStatus) error
	Edit(id, chiefID uint, edit *model.MissionEdit) error
	SoftDelete(id, chiefID uint) error
	CountCrew(id uint) (int64, error)
}

// CrewRepository manages memberships. Insert fails with ALREADY_MEMBER on a duplicate
// pair and Delete fails with NOT_FOUND when there is nothing to remove.
type CrewRepository interface {
	Insert(missionID, brawlerID uint) error
	Delete(missionID, brawlerID uint) error
	Count(missionID uint) (int64, error)
	IsMember(missionID, brawlerID uint) (bool, error)
}

type ChatRepository interface {
	Add(ctx context.Context, msg *model.ChatMessage) error
	List(ctx context.Context, missionID uint) ([]*model.ChatMessageView, error)
	PurgeAll(ctx context.Context, missionID uint) error
}

// MissionTx is the unit of work handed to Transactor callbacks.
// Mission is the locked row for InMission and nil for Within.
type MissionTx struct {
	Mission  *model.Mission
	Missions MissionRepository
	Crew     CrewRepository
}

type Transactor interface {
	// InMission locks the mission row and runs fn in one transaction.
	// A missing or deleted mission yields NOT_FOUND without calling fn.
	InMission(ctx context.Context, missionID uint, fn func(tx *MissionTx) error) error
	Within(ctx context.Context, fn func(tx *MissionTx) error) error
}

type ViewRepository interface {
	Mission(ctx context.Context, id uint) (*model.MissionView, error)
	Missions(ctx context.Context, filter *model.MissionFilter) ([]*model.MissionView, error)
	MissionsOf(ctx context.Context, brawlerID uint) ([]*model.MissionView, error)
	CrewMembers(ctx context.Context, missionID uint) ([]*model.CrewMemberView, error)
	CrewCount(ctx context.Context, missionID uint) (int64, error)
	Stats(ctx context.Context) (*model.SystemStats, error)
}

type BrawlerRepository interface {
	Start() error
	Get(id uint) *model.Brawler
	GetByUsername(username string) *model.Brawler
}

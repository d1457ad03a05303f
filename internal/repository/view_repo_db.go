package repository

import (
	"context"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/database"
	"github.com/gangbro/missionboard/internal/model"
)

var _ ViewRepository = &ViewDbRepository{}

type ViewDbRepository struct {
	dbm *database.DatabaseManager
}

func NewViewDbRepository(dbm *database.DatabaseManager) *ViewDbRepository {
	return &ViewDbRepository{dbm: dbm}
}

func (r *ViewDbRepository) Mission(ctx context.Context, id uint) (*model.MissionView, error) {
	v, err := r.dbm.WithContext(ctx).MissionQuery().Id(id).View()
	if err != nil {
		return nil, apperr.Internal("load mission view", err)
	}

	if v == nil {
		return nil, missionNotFound(id)
	}

	return v, nil
}

func (r *ViewDbRepository) Missions(ctx context.Context, filter *model.MissionFilter) ([]*model.MissionView, error) {
	res, err := r.dbm.WithContext(ctx).MissionQuery().Filter(filter).Views()

	return res, apperr.Internal("list missions", err)
}

func (r *ViewDbRepository) MissionsOf(ctx context.Context, brawlerID uint) ([]*model.MissionView, error) {
	res, err := r.dbm.WithContext(ctx).MissionQuery().
		Participant(brawlerID).
		Order("missions.created_at DESC, missions.id DESC").
		Limit(0).
		Views()

	return res, apperr.Internal("list brawler missions", err)
}

func (r *ViewDbRepository) CrewMembers(ctx context.Context, missionID uint) ([]*model.CrewMemberView, error) {
	res, err := r.dbm.WithContext(ctx).CrewQuery().Mission(missionID).Members()

	return res, apperr.Internal("list crew", err)
}

func (r *ViewDbRepository) CrewCount(ctx context.Context, missionID uint) (int64, error) {
	n, err := r.dbm.WithContext(ctx).CrewQuery().Mission(missionID).Count()

	return n, apperr.Internal("count crew", err)
}

func (r *ViewDbRepository) Stats(ctx context.Context) (*model.SystemStats, error) {
	res, err := r.dbm.WithContext(ctx).SystemStats()

	return res, apperr.Internal("system stats", err)
}

// Package viewing answers read-only questions about the mission board.
package viewing

import (
	"context"

	"github.com/gangbro/missionboard/internal/model"
	"github.com/gangbro/missionboard/internal/repository"
)

type Service struct {
	repo repository.ViewRepository
}

func NewService(repo repository.ViewRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetOne(ctx context.Context, id uint) (*model.MissionView, error) {
	return s.repo.Mission(ctx, id)
}

// Mission is GetOne under the name the chat service expects.
func (s *Service) Mission(ctx context.Context, id uint) (*model.MissionView, error) {
	return s.GetOne(ctx, id)
}

// GetAll returns one page of the board: active missions first, newest first.
func (s *Service) GetAll(ctx context.Context, filter model.MissionFilter) ([]*model.MissionView, error) {
	filter.Normalize()

	return s.repo.Missions(ctx, &filter)
}

// GetCrew lists crew members of an existing mission.
func (s *Service) GetCrew(ctx context.Context, id uint) ([]*model.CrewMemberView, error) {
	if _, err := s.repo.Mission(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.CrewMembers(ctx, id)
}

func (s *Service) CrewCount(ctx context.Context, id uint) (int64, error) {
	if _, err := s.repo.Mission(ctx, id); err != nil {
		return 0, err
	}

	return s.repo.CrewCount(ctx, id)
}

// MissionsOf lists missions the brawler leads or crews, newest first.
func (s *Service) MissionsOf(ctx context.Context, brawlerID uint) ([]*model.MissionView, error) {
	return s.repo.MissionsOf(ctx, brawlerID)
}

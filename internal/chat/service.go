package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gangbro/missionboard/internal/bus"
	"github.com/gangbro/missionboard/internal/model"
	"github.com/gangbro/missionboard/internal/repository"
	"github.com/gangbro/missionboard/internal/validation"
)

type MissionGetter interface {
	Mission(ctx context.Context, id uint) (*model.MissionView, error)
}

type Service struct {
	logger   *slog.Logger
	repo     repository.ChatRepository
	missions MissionGetter
	brawlers repository.BrawlerRepository
	hub      *Hub
}

func NewService(repo repository.ChatRepository, missions MissionGetter, brawlers repository.BrawlerRepository, hub *Hub) *Service {
	return &Service{
		logger:   slog.With("logger", "chat"),
		repo:     repo,
		missions: missions,
		brawlers: brawlers,
		hub:      hub,
	}
}

func (s *Service) Hub() *Hub {
	return s.hub
}

// Post stores the message and pushes it to the mission chat channel.
func (s *Service) Post(ctx context.Context, missionID, brawlerID uint, text string) (*model.ChatMessageView, error) {
	in := &model.ChatInput{Message: strings.TrimSpace(text)}

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.missions.Mission(ctx, missionID); err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{MissionID: missionID, BrawlerID: brawlerID, Message: in.Message}

	if err := s.repo.Add(ctx, msg); err != nil {
		return nil, err
	}

	view := msg.ToView(s.brawlers.Get(brawlerID))
	s.hub.Publish(missionID, bus.ChatMessage(view))

	return view, nil
}

func (s *Service) History(ctx context.Context, missionID uint) ([]*model.ChatMessageView, error) {
	if _, err := s.missions.Mission(ctx, missionID); err != nil {
		return nil, err
	}

	return s.repo.List(ctx, missionID)
}

func (s *Service) PurgeAll(ctx context.Context, missionID uint) error {
	if err := s.repo.PurgeAll(ctx, missionID); err != nil {
		return err
	}

	s.logger.Debug("chat purged", slog.Uint64("mission_id", uint64(missionID)))

	return nil
}

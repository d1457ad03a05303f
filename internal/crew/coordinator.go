// Package crew enforces the membership rules of missions: who may join or
// leave, in which states, and under the crew capacity limit.
package crew

import (
	"context"
	"log/slog"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/bus"
	"github.com/gangbro/missionboard/internal/config"
	"github.com/gangbro/missionboard/internal/model"
	"github.com/gangbro/missionboard/internal/repository"
)

type Publisher interface {
	Publish(e bus.Event) int
}

type Coordinator struct {
	logger *slog.Logger
	tx     repository.Transactor
	events Publisher
	policy *config.CrewPolicy
}

func NewCoordinator(tx repository.Transactor, events Publisher, policy *config.CrewPolicy) *Coordinator {
	return &Coordinator{
		logger: slog.With("logger", "crew"),
		tx:     tx,
		events: events,
		policy: policy,
	}
}

// Join adds the brawler to the mission crew. bypassChiefCheck is set only when
// the chief is enrolled into a freshly created mission.
func (c *Coordinator) Join(ctx context.Context, missionID, brawlerID uint, bypassChiefCheck bool) error {
	var mission *model.Mission

	err := c.tx.InMission(ctx, missionID, func(tx *repository.MissionTx) error {
		m := tx.Mission

		if !bypassChiefCheck && m.IsChief(brawlerID) {
			return apperr.New(apperr.CodeForbidden, "The chief cannot join their own mission")
		}

		if !m.Status.Recruiting() {
			return apperr.New(apperr.CodeInvalidState, "Mission is not joinable")
		}

		member, err := tx.Crew.IsMember(m.ID, brawlerID)
		if err != nil {
			return err
		}

		if member {
			return apperr.New(apperr.CodeAlreadyMember, "Brawler is already in the crew")
		}

		n, err := tx.Crew.Count(m.ID)
		if err != nil {
			return err
		}

		if n >= c.policy.MaxCrewPerMission {
			return apperr.New(apperr.CodeCapacityExceeded, "Mission is full")
		}

		if err := tx.Crew.Insert(m.ID, brawlerID); err != nil {
			return err
		}

		mission = m

		return nil
	})

	observe("join", err)

	if err != nil {
		c.logger.Debug("join rejected", slog.Uint64("mission_id", uint64(missionID)),
			slog.Uint64("brawler_id", uint64(brawlerID)), slog.Any("error", err))

		return err
	}

	c.logger.Info("brawler joined", slog.Uint64("mission_id", uint64(missionID)), slog.Uint64("brawler_id", uint64(brawlerID)))
	c.events.Publish(bus.CrewJoined(mission))

	return nil
}

// Leave removes the brawler from the mission crew.
func (c *Coordinator) Leave(ctx context.Context, missionID, brawlerID uint) error {
	var mission *model.Mission

	err := c.tx.InMission(ctx, missionID, func(tx *repository.MissionTx) error {
		m := tx.Mission

		if !m.Status.Recruiting() {
			return apperr.New(apperr.CodeInvalidState, "Mission is not leavable")
		}

		if err := tx.Crew.Delete(m.ID, brawlerID); err != nil {
			return err
		}

		mission = m

		return nil
	})

	observe("leave", err)

	if err != nil {
		c.logger.Debug("leave rejected", slog.Uint64("mission_id", uint64(missionID)),
			slog.Uint64("brawler_id", uint64(brawlerID)), slog.Any("error", err))

		return err
	}

	c.logger.Info("brawler left", slog.Uint64("mission_id", uint64(missionID)), slog.Uint64("brawler_id", uint64(brawlerID)))
	c.events.Publish(bus.CrewLeft(mission))

	return nil
}

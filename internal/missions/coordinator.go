package missions

import (
	"context"
	"log/slog"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/bus"
	"github.com/gangbro/missionboard/internal/config"
	"github.com/gangbro/missionboard/internal/model"
	"github.com/gangbro/missionboard/internal/report"
	"github.com/gangbro/missionboard/internal/repository"
)

type Publisher interface {
	Publish(e bus.Event) int
}

type ChatPurger interface {
	PurgeAll(ctx context.Context, missionID uint) error
}

type Joiner interface {
	Join(ctx context.Context, missionID, brawlerID uint, bypassChiefCheck bool) error
}

type Coordinator struct {
	logger *slog.Logger
	tx     repository.Transactor
	events Publisher
	chat   ChatPurger
	crew   Joiner
	policy *config.CrewPolicy
}

func NewCoordinator(tx repository.Transactor, events Publisher, chat ChatPurger, crew Joiner, policy *config.CrewPolicy) *Coordinator {
	return &Coordinator{
		logger: slog.With("logger", "missions"),
		tx:     tx,
		events: events,
		chat:   chat,
		crew:   crew,
		policy: policy,
	}
}

func (c *Coordinator) Start(ctx context.Context, missionID, chiefID uint) (*model.Mission, error) {
	return c.Transition(ctx, missionID, chiefID, model.StatusInProgress)
}

func (c *Coordinator) Complete(ctx context.Context, missionID, chiefID uint) (*model.Mission, error) {
	return c.Transition(ctx, missionID, chiefID, model.StatusCompleted)
}

func (c *Coordinator) Fail(ctx context.Context, missionID, chiefID uint) (*model.Mission, error) {
	return c.Transition(ctx, missionID, chiefID, model.StatusFailed)
}

// Transition moves the mission to status to. Checks run in order: existence,
// chief, lifecycle edge, crew size. On success the chat of a finished mission
// is purged and mission_updated is published.
func (c *Coordinator) Transition(ctx context.Context, missionID, chiefID uint, to model.MissionStatus) (*model.Mission, error) {
	var mission *model.Mission

	err := c.tx.InMission(ctx, missionID, func(tx *repository.MissionTx) error {
		m := tx.Mission

		if !m.IsChief(chiefID) {
			return apperr.New(apperr.CodeForbidden, "Only the chief can change the mission status")
		}

		if !TransitionAllowed(m.Status, to) {
			return apperr.WithMetadata(apperr.CodeInvalidTransition,
				"Mission cannot move from "+m.Status.String()+" to "+to.String(),
				map[string]string{"from": m.Status.String(), "to": to.String()})
		}

		if to == model.StatusInProgress {
			n, err := tx.Missions.CountCrew(m.ID)
			if err != nil {
				return err
			}

			if n < c.policy.MinCrewToStart {
				return apperr.Newf(apperr.CodeInvalidState, "Mission needs at least %d crew members to start", c.policy.MinCrewToStart)
			}

			if n > c.policy.MaxCrewPerMission {
				return apperr.New(apperr.CodeCapacityExceeded, "Mission crew exceeds the limit")
			}
		}

		if err := tx.Missions.UpdateStatus(m.ID, chiefID, to); err != nil {
			return err
		}

		m.Status = to
		mission = m

		return nil
	})

	observe(to.String(), err)

	if err != nil {
		c.logger.Debug("transition rejected", slog.Uint64("mission_id", uint64(missionID)),
			slog.String("to", to.String()), slog.Any("error", err))

		return nil, err
	}

	c.logger.Info("mission status changed", slog.Uint64("mission_id", uint64(missionID)), slog.String("status", to.String()))

	if to.IsTerminal() {
		c.purgeChat(context.WithoutCancel(ctx), missionID)
	}

	c.events.Publish(bus.MissionUpdated(mission))

	return mission, nil
}

func (c *Coordinator) purgeChat(ctx context.Context, missionID uint) {
	if err := c.chat.PurgeAll(ctx, missionID); err != nil {
		purgeFailuresMetric.Inc()
		report.Failure(ctx, c.logger, "chat_purge", err, slog.Uint64("mission_id", uint64(missionID)))
	}
}

package missions

import (
	"context"
	"log/slog"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/bus"
	"github.com/gangbro/missionboard/internal/model"
	"github.com/gangbro/missionboard/internal/report"
	"github.com/gangbro/missionboard/internal/repository"
	"github.com/gangbro/missionboard/internal/validation"
)

// Create opens a new mission led by chiefID and enrolls the chief as crew.
// A failed enrollment does not undo the mission.
func (c *Coordinator) Create(ctx context.Context, chiefID uint, in *model.NewMission) (*model.Mission, error) {
	in.Normalize()

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	m := &model.Mission{
		ChiefID:     chiefID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Status:      model.StatusOpen,
	}

	err := c.tx.Within(ctx, func(tx *repository.MissionTx) error {
		return tx.Missions.Create(m)
	})

	if err != nil {
		return nil, err
	}

	c.logger.Info("mission created", slog.Uint64("mission_id", uint64(m.ID)), slog.Uint64("chief_id", uint64(chiefID)))

	if err := c.crew.Join(context.WithoutCancel(ctx), m.ID, chiefID, true); err != nil {
		report.Failure(ctx, c.logger, "chief_auto_join", err, slog.Uint64("mission_id", uint64(m.ID)))
	}

	c.events.Publish(bus.MissionUpdated(m))

	return m, nil
}

// Edit changes name, description or category. Blank names and categories are ignored.
func (c *Coordinator) Edit(ctx context.Context, missionID, chiefID uint, in *model.MissionEdit) (*model.Mission, error) {
	in.Normalize()

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var mission *model.Mission

	err := c.tx.InMission(ctx, missionID, func(tx *repository.MissionTx) error {
		m := tx.Mission

		if !m.IsChief(chiefID) {
			return apperr.New(apperr.CodeForbidden, "Only the chief can edit the mission")
		}

		if c.policy.LockEditWhenCrewed {
			n, err := tx.Missions.CountCrew(m.ID)
			if err != nil {
				return err
			}

			if n > 1 {
				return apperr.New(apperr.CodeInvalidState, "Mission cannot be edited once crew has joined")
			}
		}

		if in.Empty() {
			mission = m
			return nil
		}

		if err := tx.Missions.Edit(m.ID, chiefID, in); err != nil {
			return err
		}

		var err error
		mission, err = tx.Missions.GetByID(m.ID)

		return err
	})

	if err != nil {
		return nil, err
	}

	c.events.Publish(bus.MissionUpdated(mission))

	return mission, nil
}

// Remove soft-deletes the mission and purges its chat.
func (c *Coordinator) Remove(ctx context.Context, missionID, chiefID uint) error {
	var mission *model.Mission

	err := c.tx.InMission(ctx, missionID, func(tx *repository.MissionTx) error {
		m := tx.Mission

		if !m.IsChief(chiefID) {
			return apperr.New(apperr.CodeForbidden, "Only the chief can remove the mission")
		}

		if err := tx.Missions.SoftDelete(m.ID, chiefID); err != nil {
			return err
		}

		mission = m

		return nil
	})

	if err != nil {
		return err
	}

	c.logger.Info("mission removed", slog.Uint64("mission_id", uint64(missionID)))

	c.purgeChat(context.WithoutCancel(ctx), missionID)
	c.events.Publish(bus.MissionRemoved(mission))

	return nil
}

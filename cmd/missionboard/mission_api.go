package main

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/model"
)

type missionQuery struct {
	Status         string `query:"status"`
	Name           string `query:"name"`
	Category       string `query:"category"`
	ExcludeChiefID uint   `query:"exclude_chief_id"`
	Page           int    `query:"page"`
	Limit          int    `query:"limit"`
}

func (q *missionQuery) filter() (model.MissionFilter, error) {
	f := model.MissionFilter{
		Name:           q.Name,
		Category:       q.Category,
		ExcludeChiefID: q.ExcludeChiefID,
		Page:           q.Page,
		Limit:          q.Limit,
	}

	if q.Status != "" {
		s, ok := model.ParseMissionStatus(q.Status)
		if !ok {
			return f, apperr.Newf(apperr.CodeInvalidArgument, "unknown status %q", q.Status)
		}

		f.Status = &s
	}

	return f, nil
}

func getMissionsHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := new(missionQuery)

		if err := c.QueryParser(q); err != nil {
			return apperr.Wrap(apperr.CodeInvalidArgument, "invalid query", err)
		}

		filter, err := q.filter()
		if err != nil {
			return err
		}

		missions, err := app.views.GetAll(c.UserContext(), filter)
		if err != nil {
			return err
		}

		return c.JSON(missions)
	}
}

func getMissionHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		m, err := app.views.GetOne(c.UserContext(), id)
		if err != nil {
			return err
		}

		return c.JSON(m)
	}
}

func getMyMissionsHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		missions, err := app.views.MissionsOf(c.UserContext(), BrawlerID(c))
		if err != nil {
			return err
		}

		return c.JSON(missions)
	}
}

func addMissionHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := new(model.NewMission)

		if err := c.BodyParser(in); err != nil {
			return apperr.Wrap(apperr.CodeInvalidArgument, "invalid body", err)
		}

		m, err := app.missions.Create(c.UserContext(), BrawlerID(c), in)
		if err != nil {
			return err
		}

		view, err := app.views.GetOne(c.UserContext(), m.ID)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(view)
	}
}

func editMissionHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		in := new(model.MissionEdit)

		if err := c.BodyParser(in); err != nil {
			return apperr.Wrap(apperr.CodeInvalidArgument, "invalid body", err)
		}

		m, err := app.missions.Edit(c.UserContext(), id, BrawlerID(c), in)
		if err != nil {
			return err
		}

		return c.JSON(m)
	}
}

func removeMissionHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		if err := app.missions.Remove(c.UserContext(), id, BrawlerID(c)); err != nil {
			return err
		}

		return c.JSON(fiber.Map{"mission_id": id, "status": "removed"})
	}
}

type transitionFunc func(ctx context.Context, missionID, chiefID uint) (*model.Mission, error)

func transitionHandler(fn transitionFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		m, err := fn(c.UserContext(), id, BrawlerID(c))
		if err != nil {
			return err
		}

		return c.JSON(m)
	}
}

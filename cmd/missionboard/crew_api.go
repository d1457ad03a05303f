package main

import (
	"github.com/gofiber/fiber/v2"
)

func getCrewHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		crew, err := app.views.GetCrew(c.UserContext(), id)
		if err != nil {
			return err
		}

		return c.JSON(crew)
	}
}

func joinHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		if err := app.crew.Join(c.UserContext(), id, BrawlerID(c), false); err != nil {
			return err
		}

		return c.JSON(fiber.Map{"mission_id": id, "status": "joined"})
	}
}

func leaveHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		if err := app.crew.Leave(c.UserContext(), id, BrawlerID(c)); err != nil {
			return err
		}

		return c.JSON(fiber.Map{"mission_id": id, "status": "left"})
	}
}

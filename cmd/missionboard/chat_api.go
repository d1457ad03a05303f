package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/model"
)

func getChatHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		messages, err := app.chat.History(c.UserContext(), id)
		if err != nil {
			return err
		}

		return c.JSON(messages)
	}
}

func postChatHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		in := new(model.ChatInput)

		if err := c.BodyParser(in); err != nil {
			return apperr.Wrap(apperr.CodeInvalidArgument, "invalid body", err)
		}

		msg, err := app.chat.Post(c.UserContext(), id, BrawlerID(c), in.Message)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(msg)
	}
}

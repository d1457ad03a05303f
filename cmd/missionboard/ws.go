package main

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gangbro/missionboard/internal/wshandler"
)

const missionKey = "mission_id"

// upgradeOnly rejects plain HTTP requests to the websocket endpoints.
func upgradeOnly(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return nil
}

func getNotificationsWsHandler(app *App) fiber.Handler {
	h := websocket.New(func(ws *websocket.Conn) {
		sub := app.events.Subscribe(uuid.NewString())

		app.logger.Debug("notification listener connected", "client", sub.Name())
		wshandler.NewHandler(app.logger, ws, sub).Listen()
		app.logger.Debug("notification listener disconnected", "client", sub.Name())
	})

	return func(c *fiber.Ctx) error {
		if err := upgradeOnly(c); err != nil {
			return err
		}

		return h(c)
	}
}

func getChatWsHandler(app *App) fiber.Handler {
	h := websocket.New(func(ws *websocket.Conn) {
		id, _ := ws.Locals(missionKey).(uint)
		sub := app.chat.Hub().Subscribe(id, uuid.NewString())

		app.logger.Debug("chat listener connected", "client", sub.Name(), "mission_id", id)
		wshandler.NewHandler(app.logger, ws, sub).Listen()
		app.logger.Debug("chat listener disconnected", "client", sub.Name(), "mission_id", id)
	})

	return func(c *fiber.Ctx) error {
		if err := upgradeOnly(c); err != nil {
			return err
		}

		id, err := paramID(c)
		if err != nil {
			return err
		}

		if _, err := app.views.GetOne(c.UserContext(), id); err != nil {
			return err
		}

		c.Locals(missionKey, id)

		return h(c)
	}
}

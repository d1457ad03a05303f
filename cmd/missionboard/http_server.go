package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/ratelimit"
	"github.com/gangbro/missionboard/pkg/log"
)

type HttpServer struct {
	log     *slog.Logger
	f       *fiber.App
	storage fiber.Storage
}

func NewHttp(app *App) (*HttpServer, error) {
	srv := &HttpServer{log: slog.Default().With("logger", "http")}

	if rc := app.config.Redis(); rc.Enabled() {
		st := ratelimit.NewRedisStorage(rc, "missionboard:limit:")
		srv.storage = st
		srv.log.Info("rate limits are stored in redis at " + rc.Addr)
	}

	srv.f = fiber.New(fiber.Config{
		EnablePrintRoutes:     false,
		DisableStartupMessage: true,
		ErrorHandler:          srv.errorHandler,
	})

	srv.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", UserGetter: brawlerName, DoMetrics: true}))

	srv.f.Get("/health-check", getHealthHandler())
	srv.f.Get("/metrics", getMetricsHandler())

	secret := []byte(app.config.JWTSecret())
	auth := getAuth(secret, app.brawlers)

	joinLimit := ratelimit.New(ratelimit.Config{
		Max:        app.config.JoinRateLimit(),
		Expiration: time.Minute,
		Key:        brawlerName,
		Storage:    srv.storage,
	})

	api := srv.f.Group("/api")

	api.Get("/missions", getMissionsHandler(app))
	api.Get("/missions/:id", getMissionHandler(app))
	api.Get("/missions/:id/crew", getCrewHandler(app))
	api.Post("/missions", auth, addMissionHandler(app))
	api.Patch("/missions/:id", auth, editMissionHandler(app))
	api.Delete("/missions/:id", auth, removeMissionHandler(app))

	api.Patch("/missions/:id/in-progress", auth, transitionHandler(app.missions.Start))
	api.Patch("/missions/:id/completed", auth, transitionHandler(app.missions.Complete))
	api.Patch("/missions/:id/failed", auth, transitionHandler(app.missions.Fail))

	api.Post("/crew/:id/join", auth, joinLimit, joinHandler(app))
	api.Delete("/crew/:id/leave", auth, leaveHandler(app))

	api.Get("/chats/ws/:id", auth, getChatWsHandler(app))
	api.Get("/chats/:id", auth, getChatHandler(app))
	api.Post("/chats/:id", auth, postChatHandler(app))

	api.Get("/notifications/ws", getNotificationsWsHandler(app))

	api.Get("/brawlers/my-missions", auth, getMyMissionsHandler(app))
	api.Get("/system/stats", getStatsHandler(app))

	return srv, nil
}

func (h *HttpServer) Listen(addr string) error {
	return h.f.Listen(addr)
}

func (h *HttpServer) Shutdown(timeout time.Duration) error {
	err := h.f.ShutdownWithTimeout(timeout)

	if h.storage != nil {
		if e := h.storage.Close(); e != nil {
			h.log.Warn("can't close limiter storage", slog.Any("error", e))
		}
	}

	return err
}

// errorHandler renders every failure as {"error": message, "code": CODE}.
func (h *HttpServer) errorHandler(c *fiber.Ctx, err error) error {
	var ae *apperr.Error

	if errors.As(err, &ae) {
		if ae.Code == apperr.CodeInternal {
			h.log.Error("request failed", slog.String("path", c.Path()), slog.Any("error", err))

			return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Internal server error", apperr.CodeInternal))
		}

		return c.Status(ae.HTTPStatus()).JSON(errorBody(ae.Message, ae.Code))
	}

	var fe *fiber.Error

	if errors.As(err, &fe) {
		code := apperr.CodeInternal

		switch fe.Code {
		case fiber.StatusNotFound:
			code = apperr.CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = apperr.CodeInvalidArgument
		case fiber.StatusUnauthorized:
			code = apperr.CodeUnauthenticated
		}

		return c.Status(fe.Code).JSON(errorBody(fe.Message, code))
	}

	h.log.Error("request failed", slog.String("path", c.Path()), slog.Any("error", err))

	return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Internal server error", apperr.CodeInternal))
}

func errorBody(msg string, code apperr.Code) fiber.Map {
	return fiber.Map{"error": msg, "code": code}
}

func getHealthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "All Right, I'm Good"})
	}
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}

func getStatsHandler(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := app.stats.Get()
		if err != nil {
			return err
		}

		return c.JSON(st)
	}
}

// paramID reads the :id route parameter as a positive integer.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, apperr.Newf(apperr.CodeInvalidArgument, "invalid id %q", c.Params("id"))
	}

	return uint(id), nil
}

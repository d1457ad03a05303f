package ratelimit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Config struct {
	Max        int
	Expiration time.Duration
	// Key identifies the caller. The client IP is used when it returns "".
	Key     func(c *fiber.Ctx) string
	Storage fiber.Storage
}

// New returns a limiter answering 429 with the API error body.
func New(conf Config) fiber.Handler {
	if conf.Expiration == 0 {
		conf.Expiration = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        conf.Max,
		Expiration: conf.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if conf.Key != nil {
				if k := conf.Key(c); k != "" {
					return k + ":" + c.Route().Path
				}
			}

			return c.IP() + ":" + c.Route().Path
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please wait before trying again",
				"code":  "RATE_LIMITED",
			})
		},
		Storage: conf.Storage,
	})
}


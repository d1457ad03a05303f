package main

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/repository"
)

const BrawlerKey = "brawler_id"

var errUnauthenticated = apperr.New(apperr.CodeUnauthenticated, "Authentication required")

type Claims struct {
	BrawlerID uint `json:"brawler_id"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 token for the brawler. Tokens are issued by the
// gateway in production; the server itself only verifies them.
func NewToken(secret []byte, brawlerID uint, ttl time.Duration) (string, error) {
	claims := &Claims{
		BrawlerID: brawlerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseToken(secret []byte, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := t.Claims.(*Claims); ok && t.Valid && claims.BrawlerID != 0 {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// getAuth accepts a bearer header or, for websocket clients, a token query parameter.
func getAuth(secret []byte, brawlers repository.BrawlerRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")

		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			return errUnauthenticated
		}

		claims, err := ParseToken(secret, token)
		if err != nil {
			return apperr.Wrap(apperr.CodeUnauthenticated, "Invalid token", err)
		}

		if brawlers.Get(claims.BrawlerID) == nil {
			return apperr.New(apperr.CodeUnauthenticated, "Unknown brawler")
		}

		c.Locals(BrawlerKey, claims.BrawlerID)

		return c.Next()
	}
}

func BrawlerID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(BrawlerKey).(uint); ok {
		return id
	}

	return 0
}

func brawlerName(c *fiber.Ctx) string {
	if id := BrawlerID(c); id != 0 {
		return strconv.FormatUint(uint64(id), 10)
	}

	return ""
}

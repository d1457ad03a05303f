package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsByCode(t *testing.T) {
	err := New(CodeCapacityExceeded, "Mission is full")

	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.NotErrorIs(t, err, ErrInvalidState)

	wrapped := fmt.Errorf("join: %w", err)
	require.ErrorIs(t, wrapped, ErrCapacityExceeded)
	assert.Equal(t, CodeCapacityExceeded, CodeOf(wrapped))
}

func TestInternal(t *testing.T) {
	require.NoError(t, Internal("x", nil))

	cause := errors.New("disk is on fire")
	err := Internal("load mission", cause)

	require.ErrorIs(t, err, ErrInternal)
	require.ErrorIs(t, err, cause)

	domain := New(CodeNotFound, "Mission not found")
	require.Same(t, domain, Internal("load mission", domain))
}

func TestHTTPStatus(t *testing.T) {
	for _, d := range []struct {
		code   Code
		status int
	}{
		{CodeNotFound, fiber.StatusNotFound},
		{CodeForbidden, fiber.StatusForbidden},
		{CodeInvalidState, fiber.StatusConflict},
		{CodeInvalidTransition, fiber.StatusConflict},
		{CodeCapacityExceeded, fiber.StatusConflict},
		{CodeAlreadyMember, fiber.StatusConflict},
		{CodeInvalidArgument, fiber.StatusBadRequest},
		{CodeUnauthenticated, fiber.StatusUnauthorized},
		{CodeConfiguration, fiber.StatusInternalServerError},
		{CodeInternal, fiber.StatusInternalServerError},
	} {
		t.Run(string(d.code), func(t *testing.T) {
			assert.Equal(t, d.status, New(d.code, "").HTTPStatus())
		})
	}

	assert.Equal(t, fiber.StatusInternalServerError, CodeOf(errors.New("plain")).HTTPStatus())
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/model"
)

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(&model.NewMission{Name: "Bank", Category: "heist"}))

	err := Struct(&model.NewMission{Name: "ab"})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.Equal(t, "name must be at least 3 characters, category is required", err.Error())

	short := "x"
	err = Struct(&model.MissionEdit{Name: &short})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	require.NoError(t, Struct(&model.MissionEdit{}))
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	for _, d := range []struct {
		s          MissionStatus
		terminal   bool
		recruiting bool
	}{
		{StatusOpen, false, true},
		{StatusInProgress, false, false},
		{StatusCompleted, true, false},
		{StatusFailed, true, true},
	} {
		t.Run(d.s.String(), func(t *testing.T) {
			assert.Equal(t, d.terminal, d.s.IsTerminal())
			assert.Equal(t, d.recruiting, d.s.Recruiting())

			s, ok := ParseMissionStatus(d.s.String())
			require.True(t, ok)
			assert.Equal(t, d.s, s)
		})
	}

	_, ok := ParseMissionStatus("open")
	assert.False(t, ok)
}

func TestFilterNormalize(t *testing.T) {
	f := &MissionFilter{Name: "  raid "}
	f.Normalize()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.Limit)
	assert.Equal(t, "raid", f.Name)
	assert.Equal(t, 0, f.Offset())

	f = &MissionFilter{Page: 3, Limit: 1000}
	f.Normalize()

	assert.Equal(t, MaxPageSize, f.Limit)
	assert.Equal(t, 2*MaxPageSize, f.Offset())
}

func TestEditNormalize(t *testing.T) {
	blank := "   "
	desc := " text "
	e := &MissionEdit{Name: &blank, Description: &desc}
	e.Normalize()

	assert.Nil(t, e.Name)
	require.NotNil(t, e.Description)
	assert.Equal(t, "text", *e.Description)
	assert.False(t, e.Empty())

	e = &MissionEdit{Name: &blank}
	e.Normalize()
	assert.True(t, e.Empty())
}

func TestSuccessRate(t *testing.T) {
	s := &SystemStats{}
	s.ComputeSuccessRate()
	assert.InDelta(t, 100.0, s.SuccessRate, 0.001)

	s = &SystemStats{MissionsCompleted: 3, MissionsFailed: 1}
	s.ComputeSuccessRate()
	assert.InDelta(t, 75.0, s.SuccessRate, 0.001)
}

package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangbro/missionboard/internal/model"
)

type source struct {
	calls int
	err   error
}

func (s *source) Stats(context.Context) (*model.SystemStats, error) {
	s.calls++

	if s.err != nil {
		return nil, s.err
	}

	return &model.SystemStats{ActiveMembers: int64(s.calls)}, nil
}

func TestCached(t *testing.T) {
	src := &source{}
	s := NewService(src, time.Minute)

	st, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.ActiveMembers)

	st, err = s.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.ActiveMembers)

	s.Invalidate()

	st, err = s.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.ActiveMembers)
}

func TestError(t *testing.T) {
	src := &source{err: errors.New("db down")}
	s := NewService(src, time.Minute)

	_, err := s.Get()
	require.Error(t, err)

	src.err = nil

	_, err = s.Get()
	require.NoError(t, err)
}

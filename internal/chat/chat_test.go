package chat

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/bus"
	"github.com/gangbro/missionboard/internal/database"
	"github.com/gangbro/missionboard/internal/model"
	"github.com/gangbro/missionboard/internal/repository"
)

func TestHubLifecycle(t *testing.T) {
	h := NewHub(4)

	assert.Equal(t, 0, h.Publish(1, bus.Event{Type: bus.EventChatMessage}))
	assert.Equal(t, 0, h.Channels())

	s1 := h.Subscribe(1, "a")
	s2 := h.Subscribe(1, "b")
	s3 := h.Subscribe(2, "c")

	assert.Equal(t, 2, h.Channels())
	assert.Equal(t, 2, h.Publish(1, bus.Event{Type: bus.EventChatMessage, MissionID: 1}))

	assert.Equal(t, uint(1), (<-s1.C()).MissionID)
	assert.Equal(t, uint(1), (<-s2.C()).MissionID)

	select {
	case <-s3.C():
		t.Fatal("mission 2 got mission 1 message")
	default:
	}

	s1.Close()
	assert.Equal(t, 2, h.Channels())

	s2.Close()
	assert.Equal(t, 1, h.Channels())

	s3.Close()
	assert.Equal(t, 0, h.Channels())

	s4 := h.Subscribe(1, "a")
	assert.Equal(t, 1, h.Publish(1, bus.Event{Type: bus.EventChatMessage}))
	s4.Close()
}

func TestHubConcurrent(t *testing.T) {
	h := NewHub(4)
	wg := new(sync.WaitGroup)

	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				s := h.Subscribe(uint(n%3), "")
				h.Publish(uint(n%3), bus.Event{Type: bus.EventChatMessage})
				s.Close()
			}
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 0, h.Channels())
}

type fixture struct {
	dbm     *database.DatabaseManager
	service *Service
	mission *model.Mission
}

func prepare(t *testing.T) *fixture {
	db, err := database.GetDatabase(":memory:", false)
	require.NoError(t, err)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())

	require.NoError(t, dbm.Create(&model.Brawler{Username: "chief", DisplayName: "Chief"}))

	m := &model.Mission{ChiefID: 1, Name: "raid", Category: "heist", Status: model.StatusOpen}
	require.NoError(t, dbm.Create(m))

	s := NewService(
		repository.NewChatDbRepository(dbm),
		repository.NewViewDbRepository(dbm),
		repository.NewBrawlerDbRepository("", dbm),
		NewHub(10),
	)

	return &fixture{dbm: dbm, service: s, mission: m}
}

func TestPostAndHistory(t *testing.T) {
	f := prepare(t)
	ctx := context.Background()

	sub := f.service.Hub().Subscribe(f.mission.ID, "")
	defer sub.Close()

	msg, err := f.service.Post(ctx, f.mission.ID, 1, "  go go go  ")
	require.NoError(t, err)
	assert.Equal(t, "go go go", msg.Message)
	assert.Equal(t, "Chief", msg.DisplayName)

	e := <-sub.C()
	assert.Equal(t, bus.EventChatMessage, e.Type)
	require.NotNil(t, e.Chat)
	assert.Equal(t, msg.ID, e.Chat.ID)

	history, err := f.service.History(ctx, f.mission.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "go go go", history[0].Message)

	require.NoError(t, f.service.PurgeAll(ctx, f.mission.ID))

	history, err = f.service.History(ctx, f.mission.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPostInvalid(t *testing.T) {
	f := prepare(t)
	ctx := context.Background()

	_, err := f.service.Post(ctx, f.mission.ID, 1, "   ")
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = f.service.Post(ctx, f.mission.ID, 1, strings.Repeat("x", 2001))
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = f.service.Post(ctx, 999, 1, "hello")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.service.History(ctx, 999)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

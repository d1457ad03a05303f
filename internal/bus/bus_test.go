package bus

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangbro/missionboard/internal/model"
)

func TestPublishNoSubscribers(t *testing.T) {
	b := New("test", 4)

	assert.Equal(t, 0, b.Publish(Event{Type: EventMissionUpdated}))
}

func TestPublishFanOut(t *testing.T) {
	b := New("test", 4)

	s1 := b.Subscribe("one")
	s2 := b.Subscribe("")

	m := &model.Mission{ID: 7, Name: "Docks"}
	require.Equal(t, 2, b.Publish(CrewJoined(m)))

	for _, s := range []*Subscription{s1, s2} {
		e := <-s.C()
		assert.Equal(t, EventCrewMovement, e.Type)
		assert.Equal(t, uint(7), e.MissionID)
		assert.Equal(t, `New brawler joined mission "Docks"`, e.Message)
	}
}

func TestDropOldest(t *testing.T) {
	b := New("test", 3)
	s := b.Subscribe("slow")

	for i := 1; i <= 5; i++ {
		b.Publish(Event{Type: EventMissionUpdated, ID: uint(i)})
	}

	var got []uint
	for i := 0; i < 3; i++ {
		got = append(got, (<-s.C()).ID)
	}

	assert.Equal(t, []uint{3, 4, 5}, got)
}

func TestCloseIdempotent(t *testing.T) {
	idle := 0
	b := New("test", 3, OnIdle(func() { idle++ }))

	s := b.Subscribe("a")
	require.Equal(t, 1, b.Subscribers())

	s.Close()
	s.Close()

	assert.Equal(t, 0, b.Subscribers())
	assert.Equal(t, 1, idle)

	_, ok := <-s.C()
	assert.False(t, ok)

	assert.Equal(t, 0, b.Publish(Event{Type: EventMissionUpdated}))
}

func TestResubscribeSameName(t *testing.T) {
	b := New("test", 3)

	s1 := b.Subscribe("a")
	s2 := b.Subscribe("a")

	_, ok := <-s1.C()
	assert.False(t, ok)
	assert.Equal(t, 1, b.Subscribers())

	s1.Close()
	assert.Equal(t, 1, b.Subscribers())

	b.Publish(Event{Type: EventMissionUpdated, ID: 1})
	assert.Equal(t, uint(1), (<-s2.C()).ID)
}

func TestConcurrentPublishAndClose(t *testing.T) {
	b := New("test", 8)

	ctx, cancel := context.WithCancel(context.Background())
	wg := new(sync.WaitGroup)

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for ctx.Err() == nil {
				b.Publish(Event{Type: EventMissionUpdated})
			}
		}()
	}

	for i := 0; i < 30; i++ {
		s := b.Subscribe(fmt.Sprintf("sub_%d", i))

		time.Sleep(time.Millisecond * time.Duration(rand.Intn(5)))
		s.Close()
	}

	cancel()
	wg.Wait()

	assert.Equal(t, 0, b.Subscribers())
}

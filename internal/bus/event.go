package bus

import (
	"fmt"

	"github.com/gangbro/missionboard/internal/model"
)

type EventType string

const (
	EventCrewMovement   EventType = "crew_movement"
	EventMissionUpdated EventType = "mission_updated"
	EventMissionRemoved EventType = "mission_removed"
	EventChatMessage    EventType = "chat_message"
)

// Event is a tagged union. Only the fields of its Type are set.
type Event struct {
	Type      EventType              `json:"type"`
	MissionID uint                   `json:"mission_id,omitempty"`
	Message   string                 `json:"message,omitempty"`
	ID        uint                   `json:"id,omitempty"`
	Name      string                 `json:"name,omitempty"`
	Status    model.MissionStatus    `json:"status,omitempty"`
	Chat      *model.ChatMessageView `json:"chat,omitempty"`
}

func CrewJoined(m *model.Mission) Event {
	return Event{
		Type:      EventCrewMovement,
		MissionID: m.ID,
		Message:   fmt.Sprintf("New brawler joined mission \"%s\"", m.Name),
	}
}

func CrewLeft(m *model.Mission) Event {
	return Event{
		Type:      EventCrewMovement,
		MissionID: m.ID,
		Message:   fmt.Sprintf("A brawler left mission \"%s\"", m.Name),
	}
}

func MissionUpdated(m *model.Mission) Event {
	return Event{Type: EventMissionUpdated, ID: m.ID, Name: m.Name, Status: m.Status}
}

func MissionRemoved(m *model.Mission) Event {
	return Event{Type: EventMissionRemoved, ID: m.ID, Name: m.Name}
}

func ChatMessage(msg *model.ChatMessageView) Event {
	return Event{Type: EventChatMessage, MissionID: msg.MissionID, Chat: msg}
}

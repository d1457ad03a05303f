package model

import "time"

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	MissionID uint      `gorm:"index;not null" json:"mission_id"`
	BrawlerID uint      `gorm:"not null" json:"brawler_id"`
	Message   string    `gorm:"not null" json:"message"`
}

type ChatMessageView struct {
	ID          uint      `json:"id"`
	MissionID   uint      `json:"mission_id"`
	BrawlerID   uint      `json:"brawler_id"`
	DisplayName string    `json:"display_name"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *ChatMessage) ToView(author *Brawler) *ChatMessageView {
	return &ChatMessageView{
		ID:          m.ID,
		MissionID:   m.MissionID,
		BrawlerID:   m.BrawlerID,
		DisplayName: author.GetDisplayName(),
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
	}
}

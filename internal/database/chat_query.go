package database

import (
	"gorm.io/gorm"

	"github.com/gangbro/missionboard/internal/model"
)

type ChatQuery struct {
	Query[model.ChatMessage]
	mission uint
}

func NewChatQuery(db *gorm.DB) *ChatQuery {
	q := &ChatQuery{}
	q.setDefaults(db, "chat_messages.created_at, chat_messages.id")
	q.limit = 500

	return q
}

func (q *ChatQuery) Mission(id uint) *ChatQuery {
	if q == nil {
		return nil
	}

	q.mission = id
	return q
}

func (q *ChatQuery) Limit(n int) *ChatQuery {
	if q == nil {
		return nil
	}

	q.limit = n
	return q
}

func (q *ChatQuery) where() *gorm.DB {
	tx := q.db.Model(&model.ChatMessage{})

	if q.mission != 0 {
		tx = tx.Where("chat_messages.mission_id = ?", q.mission)
	}

	return tx
}

func (q *ChatQuery) Count() (int64, error) {
	return q.count(q.where())
}

// Views returns messages oldest first with author names.
func (q *ChatQuery) Views() ([]*model.ChatMessageView, error) {
	res := make([]*model.ChatMessageView, 0)

	tx := q.where().
		Select("chat_messages.id, chat_messages.mission_id, chat_messages.brawler_id, " +
			"COALESCE(NULLIF(brawlers.display_name, ''), brawlers.username, '') AS display_name, " +
			"chat_messages.message, chat_messages.created_at").
		Joins("LEFT JOIN brawlers ON brawlers.id = chat_messages.brawler_id")

	if err := q.paged(tx).Scan(&res).Error; err != nil {
		return nil, err
	}

	return res, nil
}

func (q *ChatQuery) Delete() (int64, error) {
	if q.mission == 0 {
		return 0, nil
	}

	tx := q.where().Delete(&model.ChatMessage{})

	return tx.RowsAffected, tx.Error
}

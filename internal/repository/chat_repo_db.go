package repository

import (
	"context"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/database"
	"github.com/gangbro/missionboard/internal/model"
)

var _ ChatRepository = &ChatDbRepository{}

type ChatDbRepository struct {
	dbm *database.DatabaseManager
}

func NewChatDbRepository(dbm *database.DatabaseManager) *ChatDbRepository {
	return &ChatDbRepository{dbm: dbm}
}

func (r *ChatDbRepository) Add(ctx context.Context, msg *model.ChatMessage) error {
	return apperr.Internal("add chat message", r.dbm.WithContext(ctx).Create(msg))
}

func (r *ChatDbRepository) List(ctx context.Context, missionID uint) ([]*model.ChatMessageView, error) {
	res, err := r.dbm.WithContext(ctx).ChatQuery().Mission(missionID).Views()
	if err != nil {
		return nil, apperr.Internal("list chat messages", err)
	}

	return res, nil
}

func (r *ChatDbRepository) PurgeAll(ctx context.Context, missionID uint) error {
	_, err := r.dbm.WithContext(ctx).ChatQuery().Mission(missionID).Delete()

	return apperr.Internal("purge chat", err)
}

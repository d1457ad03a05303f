package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gangbro/missionboard/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

// WithContext returns a manager whose queries are bound to ctx.
func (mm *DatabaseManager) WithContext(ctx context.Context) *DatabaseManager {
	return &DatabaseManager{db: mm.db.WithContext(ctx), logger: mm.logger}
}

// Transaction runs fn inside a database transaction. Every query made through
// the manager passed to fn belongs to that transaction.
func (mm *DatabaseManager) Transaction(ctx context.Context, fn func(tx *DatabaseManager) error) error {
	return mm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DatabaseManager{db: tx, logger: mm.logger})
	})
}

func (mm *DatabaseManager) Dialect() string {
	return mm.db.Dialector.Name()
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) ForceSave(s any) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	err := mm.db.Clauses(clause.OnConflict{UpdateAll: true}).Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) MissionQuery() *MissionQuery {
	return NewMissionQuery(mm.db)
}

func (mm *DatabaseManager) CrewQuery() *CrewQuery {
	return NewCrewQuery(mm.db)
}

func (mm *DatabaseManager) ChatQuery() *ChatQuery {
	return NewChatQuery(mm.db)
}

func (mm *DatabaseManager) BrawlerQuery() *BrawlerQuery {
	return NewBrawlerQuery(mm.db)
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	if err := mm.db.AutoMigrate(
		&model.Brawler{},
		&model.Mission{},
		&model.CrewMembership{},
		&model.ChatMessage{},
	); err != nil {
		return err
	}

	return nil
}

// SystemStats counts brawlers and finished missions.
func (mm *DatabaseManager) SystemStats() (*model.SystemStats, error) {
	res := new(model.SystemStats)

	var err error

	if res.ActiveMembers, err = mm.BrawlerQuery().Count(); err != nil {
		return nil, err
	}

	if res.MissionsCompleted, err = mm.MissionQuery().Status(model.StatusCompleted).Count(); err != nil {
		return nil, err
	}

	if res.MissionsFailed, err = mm.MissionQuery().Status(model.StatusFailed).Count(); err != nil {
		return nil, err
	}

	res.ComputeSuccessRate()

	return res, nil
}

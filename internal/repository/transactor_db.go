package repository

import (
	"context"

	"github.com/gangbro/missionboard/internal/database"
)

var _ Transactor = &DbTransactor{}

type DbTransactor struct {
	dbm *database.DatabaseManager
}

func NewDbTransactor(dbm *database.DatabaseManager) *DbTransactor {
	return &DbTransactor{dbm: dbm}
}

func (t *DbTransactor) InMission(ctx context.Context, missionID uint, fn func(tx *MissionTx) error) error {
	return t.dbm.Transaction(ctx, func(dbm *database.DatabaseManager) error {
		missions := &missionDbRepository{dbm: dbm}

		m, err := missions.lock(missionID)
		if err != nil {
			return err
		}

		return fn(&MissionTx{Mission: m, Missions: missions, Crew: &crewDbRepository{dbm: dbm}})
	})
}

func (t *DbTransactor) Within(ctx context.Context, fn func(tx *MissionTx) error) error {
	return t.dbm.Transaction(ctx, func(dbm *database.DatabaseManager) error {
		return fn(&MissionTx{Missions: &missionDbRepository{dbm: dbm}, Crew: &crewDbRepository{dbm: dbm}})
	})
}

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gangbro/missionboard/internal/apperr"
	"github.com/gangbro/missionboard/internal/database"
	"github.com/gangbro/missionboard/internal/model"
)

var (
	_ MissionRepository = &missionDbRepository{}
	_ CrewRepository    = &crewDbRepository{}
)

func missionNotFound(id uint) error {
	return apperr.Newf(apperr.CodeNotFound, "Mission %d not found", id)
}

type missionDbRepository struct {
	dbm *database.DatabaseManager
}

func (r *missionDbRepository) GetByID(id uint) (*model.Mission, error) {
	m, err := r.dbm.MissionQuery().Id(id).One()
	if err != nil {
		return nil, apperr.Internal("load mission", err)
	}

	if m == nil {
		return nil, missionNotFound(id)
	}

	return m, nil
}

func (r *missionDbRepository) lock(id uint) (*model.Mission, error) {
	m, err := r.dbm.MissionQuery().Id(id).ForUpdate().One()
	if err != nil {
		return nil, apperr.Internal("lock mission", err)
	}

	if m == nil {
		return nil, missionNotFound(id)
	}

	return m, nil
}

func (r *missionDbRepository) Create(m *model.Mission) error {
	return apperr.Internal("create mission", r.dbm.Create(m))
}

func (r *missionDbRepository) UpdateStatus(id, chiefID uint, status model.MissionStatus) error {
	err := r.dbm.MissionQuery().Id(id).Chief(chiefID).Update(map[string]any{"status": status})

	return r.mapUpdate(id, "update mission status", err)
}

func (r *missionDbRepository) Edit(id, chiefID uint, edit *model.MissionEdit) error {
	updates := make(map[string]any)

	if edit.Name != nil {
		updates["name"] = *edit.Name
	}

	if edit.Category != nil {
		updates["category"] = *edit.Category
	}

	if edit.Description != nil {
		if *edit.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *edit.Description
		}
	}

	if len(updates) == 0 {
		return nil
	}

	err := r.dbm.MissionQuery().Id(id).Chief(chiefID).Update(updates)

	return r.mapUpdate(id, "edit mission", err)
}

func (r *missionDbRepository) SoftDelete(id, chiefID uint) error {
	return r.mapUpdate(id, "delete mission", r.dbm.MissionQuery().Id(id).Chief(chiefID).SoftDelete())
}

func (r *missionDbRepository) CountCrew(id uint) (int64, error) {
	n, err := r.dbm.CrewQuery().Mission(id).Count()
	if err != nil {
		return 0, apperr.Internal(fmt.Sprintf("count crew of mission %d", id), err)
	}

	return n, nil
}

func (r *missionDbRepository) mapUpdate(id uint, op string, err error) error {
	if errors.Is(err, database.ErrNoRecord) {
		return missionNotFound(id)
	}

	return apperr.Internal(op, err)
}

func errAlreadyMember() error {
	return apperr.New(apperr.CodeAlreadyMember, "Brawler is already in the crew")
}

type crewDbRepository struct {
	dbm *database.DatabaseManager
}

func (r *crewDbRepository) Insert(missionID, brawlerID uint) error {
	member, err := r.IsMember(missionID, brawlerID)
	if err != nil {
		return err
	}

	if member {
		return errAlreadyMember()
	}

	err = r.dbm.Create(&model.CrewMembership{MissionID: missionID, BrawlerID: brawlerID})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errAlreadyMember()
	}

	return apperr.Internal("insert crew membership", err)
}

func (r *crewDbRepository) Delete(missionID, brawlerID uint) error {
	n, err := r.dbm.CrewQuery().Mission(missionID).Brawler(brawlerID).Delete()
	if err != nil {
		return apperr.Internal("delete crew membership", err)
	}

	if n == 0 {
		return apperr.New(apperr.CodeNotFound, "Brawler is not in the crew")
	}

	return nil
}

func (r *crewDbRepository) Count(missionID uint) (int64, error) {
	n, err := r.dbm.CrewQuery().Mission(missionID).Count()
	if err != nil {
		return 0, apperr.Internal(fmt.Sprintf("count crew of mission %d", missionID), err)
	}

	return n, nil
}

func (r *crewDbRepository) IsMember(missionID, brawlerID uint) (bool, error) {
	ok, err := r.dbm.CrewQuery().Mission(missionID).Brawler(brawlerID).Exists()
	if err != nil {
		return false, apperr.Internal("check crew membership", err)
	}

	return ok, nil
}

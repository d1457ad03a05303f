package database

import (
	"gorm.io/gorm"

	"github.com/gangbro/missionboard/internal/model"
)

const crewMemberColumns = `b.id, COALESCE(NULLIF(b.display_name, ''), b.username) AS display_name, b.avatar_url,
(SELECT COUNT(*) FROM crew_memberships sc JOIN missions sm ON sm.id = sc.mission_id
	WHERE sc.brawler_id = b.id AND sm.status = ? AND sm.deleted_at IS NULL) AS mission_success_count,
(SELECT COUNT(*) FROM crew_memberships jc WHERE jc.brawler_id = b.id) AS mission_joined_count`

type CrewQuery struct {
	Query[model.CrewMembership]
	mission uint
	brawler uint
}

func NewCrewQuery(db *gorm.DB) *CrewQuery {
	q := &CrewQuery{}
	q.setDefaults(db, "crew_memberships.created_at")
	q.limit = 0

	return q
}

func (q *CrewQuery) Mission(id uint) *CrewQuery {
	if q == nil {
		return nil
	}

	q.mission = id
	return q
}

func (q *CrewQuery) Brawler(id uint) *CrewQuery {
	if q == nil {
		return nil
	}

	q.brawler = id
	return q
}

func (q *CrewQuery) where() *gorm.DB {
	tx := q.db.Model(&model.CrewMembership{})

	if q.mission != 0 {
		tx = tx.Where("crew_memberships.mission_id = ?", q.mission)
	}

	if q.brawler != 0 {
		tx = tx.Where("crew_memberships.brawler_id = ?", q.brawler)
	}

	return tx
}

func (q *CrewQuery) Get() ([]*model.CrewMembership, error) {
	return q.get(q.where())
}

func (q *CrewQuery) Count() (int64, error) {
	return q.count(q.where())
}

func (q *CrewQuery) Exists() (bool, error) {
	n, err := q.Count()

	return n > 0, err
}

// Delete removes matched memberships and reports how many were removed.
func (q *CrewQuery) Delete() (int64, error) {
	if q.mission == 0 && q.brawler == 0 {
		return 0, nil
	}

	tx := q.where().Delete(&model.CrewMembership{})

	return tx.RowsAffected, tx.Error
}

// Members lists the crew of the mission with their mission history counters.
func (q *CrewQuery) Members() ([]*model.CrewMemberView, error) {
	res := make([]*model.CrewMemberView, 0)

	err := q.db.Table("crew_memberships AS cm").
		Select(crewMemberColumns, model.StatusCompleted).
		Joins("JOIN brawlers b ON b.id = cm.brawler_id").
		Where("cm.mission_id = ?", q.mission).
		Order("cm.created_at, b.id").
		Scan(&res).Error

	if err != nil {
		return nil, err
	}

	return res, nil
}

package database

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gangbro/missionboard/internal/model"
)

const boardOrder = "CASE WHEN missions.status IN ('Completed', 'Failed') THEN 1 ELSE 0 END, missions.created_at DESC, missions.id DESC"

const missionViewColumns = `missions.id, missions.name, missions.description, missions.category, missions.status,
missions.chief_id, COALESCE(NULLIF(brawlers.display_name, ''), brawlers.username, '') AS chief_display_name,
(SELECT COUNT(*) FROM crew_memberships cm WHERE cm.mission_id = missions.id) AS crew_count,
missions.created_at, missions.updated_at`

// MissionQuery composes mission predicates. Unset predicates are not applied.
type MissionQuery struct {
	Query[model.Mission]
	id           uint
	chief        uint
	excludeChief uint
	participant  uint
	status       []model.MissionStatus
	name         string
	category     string
	forUpdate    bool
}

func NewMissionQuery(db *gorm.DB) *MissionQuery {
	q := &MissionQuery{}
	q.setDefaults(db, boardOrder)

	return q
}

func (q *MissionQuery) Order(s string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.order = s
	return q
}

func (q *MissionQuery) Limit(n int) *MissionQuery {
	if q == nil {
		return nil
	}

	q.limit = n
	return q
}

func (q *MissionQuery) Offset(n int) *MissionQuery {
	if q == nil {
		return nil
	}

	q.offset = n
	return q
}

func (q *MissionQuery) Id(id uint) *MissionQuery {
	if q == nil {
		return nil
	}

	q.id = id
	return q
}

func (q *MissionQuery) Chief(id uint) *MissionQuery {
	if q == nil {
		return nil
	}

	q.chief = id
	return q
}

func (q *MissionQuery) ExcludeChief(id uint) *MissionQuery {
	if q == nil {
		return nil
	}

	q.excludeChief = id
	return q
}

// Participant matches missions led or crewed by the brawler.
func (q *MissionQuery) Participant(id uint) *MissionQuery {
	if q == nil {
		return nil
	}

	q.participant = id
	return q
}

func (q *MissionQuery) Status(s ...model.MissionStatus) *MissionQuery {
	if q == nil {
		return nil
	}

	q.status = append(q.status, s...)
	return q
}

// NameLike matches names containing s, case-insensitive.
func (q *MissionQuery) NameLike(s string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.name = strings.ToLower(s)
	return q
}

func (q *MissionQuery) Category(s string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.category = s
	return q
}

// ForUpdate takes a row lock on databases that support it.
func (q *MissionQuery) ForUpdate() *MissionQuery {
	if q == nil {
		return nil
	}

	q.forUpdate = true
	return q
}

// Filter applies the board filter including paging.
func (q *MissionQuery) Filter(f *model.MissionFilter) *MissionQuery {
	if q == nil || f == nil {
		return q
	}

	if f.Status != nil {
		q.Status(*f.Status)
	}

	return q.NameLike(f.Name).
		Category(f.Category).
		ExcludeChief(f.ExcludeChiefID).
		Limit(f.Limit).
		Offset(f.Offset())
}

func (q *MissionQuery) where() *gorm.DB {
	tx := q.db.Model(&model.Mission{})

	if q.id != 0 {
		tx = tx.Where("missions.id = ?", q.id)
	}

	if q.chief != 0 {
		tx = tx.Where("missions.chief_id = ?", q.chief)
	}

	if q.excludeChief != 0 {
		tx = tx.Where("missions.chief_id <> ?", q.excludeChief)
	}

	if q.participant != 0 {
		tx = tx.Where("(missions.chief_id = ? OR EXISTS (SELECT 1 FROM crew_memberships pm WHERE pm.mission_id = missions.id AND pm.brawler_id = ?))",
			q.participant, q.participant)
	}

	switch len(q.status) {
	case 0:
	case 1:
		tx = tx.Where("missions.status = ?", q.status[0])
	default:
		tx = tx.Where("missions.status IN ?", q.status)
	}

	if q.name != "" {
		tx = tx.Where(`LOWER(missions.name) LIKE ? ESCAPE '\'`, "%"+escapeLike(q.name)+"%")
	}

	if q.category != "" {
		tx = tx.Where("missions.category = ?", q.category)
	}

	if q.forUpdate && q.db.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return tx
}

func (q *MissionQuery) Get() ([]*model.Mission, error) {
	return q.get(q.where())
}

func (q *MissionQuery) One() (*model.Mission, error) {
	return q.one(q.where())
}

func (q *MissionQuery) Count() (int64, error) {
	return q.count(q.where())
}

func (q *MissionQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where(), updates)
}

// Views returns missions with crew counts and chief names, in board order.
func (q *MissionQuery) Views() ([]*model.MissionView, error) {
	res := make([]*model.MissionView, 0)

	tx := q.paged(q.viewsTx())

	if err := tx.Scan(&res).Error; err != nil {
		return nil, err
	}

	return res, nil
}

func (q *MissionQuery) View() (*model.MissionView, error) {
	res := make([]*model.MissionView, 0, 1)

	if err := q.viewsTx().Limit(1).Scan(&res).Error; err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, nil
	}

	return res[0], nil
}

func (q *MissionQuery) viewsTx() *gorm.DB {
	return q.where().
		Select(missionViewColumns).
		Joins("LEFT JOIN brawlers ON brawlers.id = missions.chief_id").
		Where("missions.deleted_at IS NULL")
}

// SoftDelete marks matched missions deleted. It fails with ErrNoRecord if none matched.
func (q *MissionQuery) SoftDelete() error {
	tx := q.where().Delete(&model.Mission{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoRecord
	}

	return nil
}

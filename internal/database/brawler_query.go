package database

import (
	"gorm.io/gorm"

	"github.com/gangbro/missionboard/internal/model"
)

type BrawlerQuery struct {
	Query[model.Brawler]
	id       uint
	username string
}

func NewBrawlerQuery(db *gorm.DB) *BrawlerQuery {
	q := &BrawlerQuery{}
	q.setDefaults(db, "brawlers.id")

	return q
}

func (q *BrawlerQuery) Id(id uint) *BrawlerQuery {
	if q == nil {
		return nil
	}

	q.id = id
	return q
}

func (q *BrawlerQuery) Username(s string) *BrawlerQuery {
	if q == nil {
		return nil
	}

	q.username = s
	return q
}

func (q *BrawlerQuery) where() *gorm.DB {
	tx := q.db.Model(&model.Brawler{})

	if q.id != 0 {
		tx = tx.Where("brawlers.id = ?", q.id)
	}

	if q.username != "" {
		tx = tx.Where("brawlers.username = ?", q.username)
	}

	return tx
}

func (q *BrawlerQuery) Get() ([]*model.Brawler, error) {
	return q.get(q.where())
}

func (q *BrawlerQuery) One() (*model.Brawler, error) {
	return q.one(q.where())
}

func (q *BrawlerQuery) Count() (int64, error) {
	return q.count(q.where())
}

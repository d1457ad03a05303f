package database

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNoRecord is returned by updates that matched no rows.
var ErrNoRecord = errors.New("no record found")

type Query[T any] struct {
	db     *gorm.DB
	limit  int
	offset int
	order  string
}

func (q *Query[T]) setDefaults(db *gorm.DB, order string) {
	q.db = db
	q.offset = 0
	q.limit = 100
	q.order = order
}

func (q *Query[T]) paged(tx *gorm.DB) *gorm.DB {
	if q.order != "" {
		tx = tx.Order(q.order)
	}

	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}

	if q.offset > 0 {
		tx = tx.Offset(q.offset)
	}

	return tx
}

func (q *Query[T]) get(tx *gorm.DB) ([]*T, error) {
	var res []*T

	err := q.paged(tx).Find(&res).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	return res, err
}

// one returns nil without error when nothing matches.
func (q *Query[T]) one(tx *gorm.DB) (*T, error) {
	res := new(T)

	err := tx.Take(res).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return res, nil
}

func (q *Query[T]) count(tx *gorm.DB) (int64, error) {
	var n int64

	err := tx.Count(&n).Error

	return n, err
}

func (q *Query[T]) update(tx *gorm.DB, updates map[string]any) (int64, error) {
	tx = tx.Updates(updates)

	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

func (q *Query[T]) updateOrError(tx *gorm.DB, updates map[string]any) error {
	n, err := q.update(tx, updates)

	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNoRecord
	}

	return nil
}

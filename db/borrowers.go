package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type borrowerStore struct{ *Store }

func (s borrowerStore) Create(ctx context.Context, b *models.Borrower) (string, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := s.conn.WithContext(ctx).Create(b).Error; err != nil {
		return "", err
	}
	s.changed(colBorrowers)
	return b.ID, nil
}

func (s borrowerStore) GetByID(ctx context.Context, id string) (*models.Borrower, error) {
	var b models.Borrower
	if err := s.conn.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s borrowerStore) GetByIDForUpdate(ctx context.Context, id string) (*models.Borrower, error) {
	var b models.Borrower
	err := s.conn.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error
	if err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s borrowerStore) Update(ctx context.Context, id string, fields store.Fields) error {
	if err := s.updateRow(ctx, &models.Borrower{}, id, fields); err != nil {
		return err
	}
	s.changed(colBorrowers)
	return nil
}

func (s borrowerStore) Delete(ctx context.Context, id string) error {
	return s.Update(ctx, id, store.Fields{"status": models.BorrowerInactive})
}

func (s borrowerStore) HardDelete(ctx context.Context, id string) error {
	if err := s.deleteRow(ctx, &models.Borrower{}, id); err != nil {
		return err
	}
	s.changed(colBorrowers)
	return nil
}

func (s borrowerStore) GetAll(ctx context.Context, f store.BorrowerFilter) ([]models.Borrower, error) {
	q := s.conn.WithContext(ctx).Model(&models.Borrower{}).Order("last_name ASC, first_name ASC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var bs []models.Borrower
	if err := q.Find(&bs).Error; err != nil {
		return nil, err
	}
	return bs, nil
}

func (s borrowerStore) SubscribeAll(f store.BorrowerFilter, fn func([]models.Borrower)) (store.Unsubscribe, error) {
	refresh := func() {
		if bs, err := s.GetAll(context.Background(), f); err == nil {
			fn(bs)
		}
	}
	unsub := s.hub.Subscribe(colBorrowers, refresh)
	refresh()
	return unsub, nil
}

func (s borrowerStore) SubscribeByID(id string, fn func(*models.Borrower)) (store.Unsubscribe, error) {
	refresh := func() {
		if b, err := s.GetByID(context.Background(), id); err == nil {
			fn(b)
		}
	}
	unsub := s.hub.Subscribe(colBorrowers, refresh)
	refresh()
	return unsub, nil
}

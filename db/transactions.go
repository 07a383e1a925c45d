package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type txStore struct{ *Store }

func (s txStore) Create(ctx context.Context, t *models.Transaction) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.conn.WithContext(ctx).Create(t).Error; err != nil {
		return "", openLoanConflict(err)
	}
	s.changed(colTransactions)
	return t.ID, nil
}

// openLoanConflict maps a unique-index collision on insert to the
// taxonomy. The only unique index on the table is one_open_per_item,
// so a duplicate key here means the item already has an open loan.
func openLoanConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrNotAvailable
	}
	return err
}

func (s txStore) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.conn.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s txStore) GetByIDForUpdate(ctx context.Context, id string) (*models.Transaction, error) {
	var t models.Transaction
	err := s.conn.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "id = ?", id).Error
	if err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s txStore) Update(ctx context.Context, id string, fields store.Fields) error {
	if err := s.updateRow(ctx, &models.Transaction{}, id, fields); err != nil {
		return err
	}
	s.changed(colTransactions)
	return nil
}

func (s txStore) Delete(ctx context.Context, id string) error {
	return s.Update(ctx, id, store.Fields{"status": models.TxCancelled})
}

func (s txStore) HardDelete(ctx context.Context, id string) error {
	if err := s.deleteRow(ctx, &models.Transaction{}, id); err != nil {
		return err
	}
	s.changed(colTransactions)
	return nil
}

func (s txStore) GetAll(ctx context.Context, f store.TransactionFilter) ([]models.Transaction, error) {
	q := s.conn.WithContext(ctx).Model(&models.Transaction{}).Order("checkout_date DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.BorrowerID != "" {
		q = q.Where("borrower_id = ?", f.BorrowerID)
	}
	if f.GearItemID != "" {
		q = q.Where("gear_item_id = ?", f.GearItemID)
	}
	if f.IsOverdue != nil {
		q = q.Where("is_overdue = ?", *f.IsOverdue)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var ts []models.Transaction
	if err := q.Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (s txStore) SubscribeAll(f store.TransactionFilter, fn func([]models.Transaction)) (store.Unsubscribe, error) {
	refresh := func() {
		if ts, err := s.GetAll(context.Background(), f); err == nil {
			fn(ts)
		}
	}
	unsub := s.hub.Subscribe(colTransactions, refresh)
	refresh()
	return unsub, nil
}

func (s txStore) SubscribeByID(id string, fn func(*models.Transaction)) (store.Unsubscribe, error) {
	refresh := func() {
		if t, err := s.GetByID(context.Background(), id); err == nil {
			fn(t)
		}
	}
	unsub := s.hub.Subscribe(colTransactions, refresh)
	refresh()
	return unsub, nil
}

// MarkOverdue flips past-due active transactions in one bulk write.
func (s txStore) MarkOverdue(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.conn.WithContext(ctx).Model(&models.Transaction{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":     models.TxOverdue,
			"is_overdue": true,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
	if err != nil {
		return err
	}
	s.changed(colTransactions)
	return nil
}

func (s txStore) ArchivePut(ctx context.Context, a *models.TransactionArchive) error {
	return s.conn.WithContext(ctx).Create(a).Error
}

func (s txStore) ArchiveGetAll(ctx context.Context, limit int) ([]models.TransactionArchive, error) {
	q := s.conn.WithContext(ctx).Model(&models.TransactionArchive{}).Order("archived_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var as []models.TransactionArchive
	if err := q.Find(&as).Error; err != nil {
		return nil, err
	}
	return as, nil
}

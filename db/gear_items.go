package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type gearItemStore struct{ *Store }

func (s gearItemStore) Create(ctx context.Context, g *models.GearItem) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if err := s.conn.WithContext(ctx).Create(g).Error; err != nil {
		return "", err
	}
	s.changed(colGearItems)
	return g.ID, nil
}

func (s gearItemStore) GetByID(ctx context.Context, id string) (*models.GearItem, error) {
	var g models.GearItem
	if err := s.conn.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// GetByIDForUpdate locks the row for the rest of the transaction.
func (s gearItemStore) GetByIDForUpdate(ctx context.Context, id string) (*models.GearItem, error) {
	var g models.GearItem
	err := s.conn.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&g, "id = ?", id).Error
	if err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (s gearItemStore) Update(ctx context.Context, id string, fields store.Fields) error {
	if err := s.updateRow(ctx, &models.GearItem{}, id, fields); err != nil {
		return err
	}
	s.changed(colGearItems)
	return nil
}

func (s gearItemStore) Delete(ctx context.Context, id string) error {
	return s.Update(ctx, id, store.Fields{"status": models.StatusRetired})
}

func (s gearItemStore) HardDelete(ctx context.Context, id string) error {
	if err := s.deleteRow(ctx, &models.GearItem{}, id); err != nil {
		return err
	}
	s.changed(colGearItems)
	return nil
}

func (s gearItemStore) GetAll(ctx context.Context, f store.GearItemFilter) ([]models.GearItem, error) {
	q := s.conn.WithContext(ctx).Model(&models.GearItem{}).Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.GearType != "" {
		q = q.Where("gear_type = ?", f.GearType)
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", f.Condition)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var gs []models.GearItem
	if err := q.Find(&gs).Error; err != nil {
		return nil, err
	}
	return gs, nil
}

func (s gearItemStore) SubscribeAll(f store.GearItemFilter, fn func([]models.GearItem)) (store.Unsubscribe, error) {
	refresh := func() {
		if gs, err := s.GetAll(context.Background(), f); err == nil {
			fn(gs)
		}
	}
	unsub := s.hub.Subscribe(colGearItems, refresh)
	refresh()
	return unsub, nil
}

func (s gearItemStore) SubscribeByID(id string, fn func(*models.GearItem)) (store.Unsubscribe, error) {
	refresh := func() {
		if g, err := s.GetByID(context.Background(), id); err == nil {
			fn(g)
		}
	}
	unsub := s.hub.Subscribe(colGearItems, refresh)
	refresh()
	return unsub, nil
}

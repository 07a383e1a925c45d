package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type gearTypeStore struct{ *Store }

func (s gearTypeStore) Create(ctx context.Context, t *models.GearType) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.conn.WithContext(ctx).Create(t).Error; err != nil {
		return "", err
	}
	s.changed(colGearTypes)
	return t.ID, nil
}

func (s gearTypeStore) GetByID(ctx context.Context, id string) (*models.GearType, error) {
	var t models.GearType
	if err := s.conn.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s gearTypeStore) Update(ctx context.Context, id string, fields store.Fields) error {
	if err := s.updateRow(ctx, &models.GearType{}, id, fields); err != nil {
		return err
	}
	s.changed(colGearTypes)
	return nil
}

func (s gearTypeStore) Delete(ctx context.Context, id string) error {
	return s.Update(ctx, id, store.Fields{"isActive": false})
}

func (s gearTypeStore) HardDelete(ctx context.Context, id string) error {
	if err := s.deleteRow(ctx, &models.GearType{}, id); err != nil {
		return err
	}
	s.changed(colGearTypes)
	return nil
}

func (s gearTypeStore) GetAll(ctx context.Context, f store.GearTypeFilter) ([]models.GearType, error) {
	q := s.conn.WithContext(ctx).Model(&models.GearType{}).Order("sort_order ASC, name ASC")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = TRUE")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var ts []models.GearType
	if err := q.Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (s gearTypeStore) SubscribeAll(f store.GearTypeFilter, fn func([]models.GearType)) (store.Unsubscribe, error) {
	refresh := func() {
		if ts, err := s.GetAll(context.Background(), f); err == nil {
			fn(ts)
		}
	}
	unsub := s.hub.Subscribe(colGearTypes, refresh)
	refresh()
	return unsub, nil
}

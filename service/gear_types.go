// Package service implements the four entity services and the
// checkout/return workflow on top of the persistence port. Validation
// happens here, before anything is persisted; backend errors pass
// through to the caller unchanged.
package service

import (
	"context"
	"strings"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type GearTypeService struct {
	store store.Store
}

func NewGearTypeService(st store.Store) *GearTypeService {
	return &GearTypeService{store: st}
}

func (s *GearTypeService) Create(ctx context.Context, t *models.GearType) (string, error) {
	if err := apperr.Validation(t.Validate()); err != nil {
		return "", err
	}
	t.ID = ""
	return s.store.GearTypes().Create(ctx, t)
}

// CreateWithID is the seed path: catalog entries keep well-known ids
// ("skates", "helmet") so gear items can reference them by name.
func (s *GearTypeService) CreateWithID(ctx context.Context, id string, t *models.GearType) error {
	if err := apperr.Validation(t.Validate()); err != nil {
		return err
	}
	t.ID = id
	_, err := s.store.GearTypes().Create(ctx, t)
	return err
}

func (s *GearTypeService) GetByID(ctx context.Context, id string) (*models.GearType, error) {
	return s.store.GearTypes().GetByID(ctx, id)
}

func (s *GearTypeService) Update(ctx context.Context, id string, fields store.Fields) error {
	return s.store.GearTypes().Update(ctx, id, fields)
}

func (s *GearTypeService) Delete(ctx context.Context, id string) error {
	return s.store.GearTypes().Delete(ctx, id)
}

func (s *GearTypeService) HardDelete(ctx context.Context, id string) error {
	return s.store.GearTypes().HardDelete(ctx, id)
}

func (s *GearTypeService) GetAll(ctx context.Context, f store.GearTypeFilter) ([]models.GearType, error) {
	return s.store.GearTypes().GetAll(ctx, f)
}

func (s *GearTypeService) GetActive(ctx context.Context) ([]models.GearType, error) {
	return s.GetAll(ctx, store.GearTypeFilter{ActiveOnly: true})
}

func (s *GearTypeService) GetByCategory(ctx context.Context, category string) ([]models.GearType, error) {
	return s.GetAll(ctx, store.GearTypeFilter{Category: category, ActiveOnly: true})
}

// GetGroupedByCategory keys the active catalog by category, each group
// already in sort order.
func (s *GearTypeService) GetGroupedByCategory(ctx context.Context) (map[string][]models.GearType, error) {
	ts, err := s.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	grouped := map[string][]models.GearType{}
	for _, t := range ts {
		grouped[t.Category] = append(grouped[t.Category], t)
	}
	return grouped, nil
}

func (s *GearTypeService) Search(ctx context.Context, term string) ([]models.GearType, error) {
	ts, err := s.GetAll(ctx, store.GearTypeFilter{})
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	var out []models.GearType
	for _, t := range ts {
		if strings.Contains(strings.ToLower(t.Name), term) ||
			strings.Contains(strings.ToLower(t.Description), term) ||
			strings.Contains(strings.ToLower(t.Category), term) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Reorder rewrites sortOrder to match the given id order.
func (s *GearTypeService) Reorder(ctx context.Context, orderedIDs []string) error {
	for i, id := range orderedIDs {
		if err := s.store.GearTypes().Update(ctx, id, store.Fields{"sortOrder": i + 1}); err != nil {
			return err
		}
	}
	return nil
}

func (s *GearTypeService) SubscribeAll(f store.GearTypeFilter, fn func([]models.GearType)) (store.Unsubscribe, error) {
	return s.store.GearTypes().SubscribeAll(f, fn)
}

type GearTypeStats struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	ByCategory map[string]int `json:"byCategory"`
}

func (s *GearTypeService) GetStatistics(ctx context.Context) (*GearTypeStats, error) {
	ts, err := s.GetAll(ctx, store.GearTypeFilter{})
	if err != nil {
		return nil, err
	}
	stats := &GearTypeStats{Total: len(ts), ByCategory: map[string]int{}}
	for _, t := range ts {
		if t.IsActive {
			stats.Active++
		}
		stats.ByCategory[t.Category]++
	}
	return stats, nil
}

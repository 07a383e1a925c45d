package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type GearItemService struct {
	store store.Store
}

func NewGearItemService(st store.Store) *GearItemService {
	return &GearItemService{store: st}
}

func (s *GearItemService) Create(ctx context.Context, g *models.GearItem, createdBy string) (string, error) {
	if err := apperr.Validation(g.Validate()); err != nil {
		return "", err
	}
	g.ID = ""
	g.CreatedBy = createdBy
	return s.store.GearItems().Create(ctx, g)
}

func (s *GearItemService) GetByID(ctx context.Context, id string) (*models.GearItem, error) {
	return s.store.GearItems().GetByID(ctx, id)
}

func (s *GearItemService) Update(ctx context.Context, id string, fields store.Fields) error {
	return s.store.GearItems().Update(ctx, id, fields)
}

func (s *GearItemService) Delete(ctx context.Context, id string) error {
	return s.store.GearItems().Delete(ctx, id)
}

func (s *GearItemService) HardDelete(ctx context.Context, id string) error {
	return s.store.GearItems().HardDelete(ctx, id)
}

func (s *GearItemService) GetAll(ctx context.Context, f store.GearItemFilter) ([]models.GearItem, error) {
	return s.store.GearItems().GetAll(ctx, f)
}

func (s *GearItemService) GetAvailable(ctx context.Context) ([]models.GearItem, error) {
	return s.GetAll(ctx, store.GearItemFilter{Status: models.StatusAvailable})
}

func (s *GearItemService) GetCheckedOut(ctx context.Context) ([]models.GearItem, error) {
	return s.GetAll(ctx, store.GearItemFilter{Status: models.StatusCheckedOut})
}

// Search is a case-insensitive substring match over the item's text
// fields, filtered client-side; record counts stay small enough.
func (s *GearItemService) Search(ctx context.Context, term string) ([]models.GearItem, error) {
	items, err := s.GetAll(ctx, store.GearItemFilter{})
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	var out []models.GearItem
	for _, it := range items {
		if matchGearItem(&it, term) {
			out = append(out, it)
		}
	}
	return out, nil
}

func matchGearItem(it *models.GearItem, term string) bool {
	if strings.Contains(strings.ToLower(it.Brand), term) ||
		strings.Contains(strings.ToLower(it.Model), term) ||
		strings.Contains(strings.ToLower(it.Description), term) ||
		strings.Contains(strings.ToLower(it.Barcode), term) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func (s *GearItemService) SubscribeAll(f store.GearItemFilter, fn func([]models.GearItem)) (store.Unsubscribe, error) {
	return s.store.GearItems().SubscribeAll(f, fn)
}

func (s *GearItemService) SubscribeByID(id string, fn func(*models.GearItem)) (store.Unsubscribe, error) {
	return s.store.GearItems().SubscribeByID(id, fn)
}

// GenerateBarcode builds a label for a new unit: prefix, base36
// timestamp, four random characters. Uniqueness is by convention, the
// barcode column carries no unique index.
func (s *GearItemService) GenerateBarcode(prefix string) string {
	if prefix == "" {
		prefix = "WDI"
	}
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return prefix + "-" + ts + "-" + suffix
}

// SendToMaintenance pulls a unit out of circulation without a
// transaction; checkout refuses it until it is marked available again.
func (s *GearItemService) SendToMaintenance(ctx context.Context, id string, note string) error {
	it, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it == nil {
		return apperr.ErrNotFound
	}
	if it.IsCheckedOut() {
		return apperr.ErrInvalidState
	}
	fields := store.Fields{"status": models.StatusMaintenance}
	if note != "" {
		fields["notes"] = note
	}
	return s.Update(ctx, id, fields)
}

type GearItemStats struct {
	Total       int            `json:"total"`
	Available   int            `json:"available"`
	CheckedOut  int            `json:"checkedOut"`
	Maintenance int            `json:"maintenance"`
	Retired     int            `json:"retired"`
	ByType      map[string]int `json:"byType"`
}

func (s *GearItemService) GetStatistics(ctx context.Context) (*GearItemStats, error) {
	items, err := s.GetAll(ctx, store.GearItemFilter{})
	if err != nil {
		return nil, err
	}
	stats := &GearItemStats{Total: len(items), ByType: map[string]int{}}
	for _, it := range items {
		switch it.Status {
		case models.StatusAvailable:
			stats.Available++
		case models.StatusCheckedOut:
			stats.CheckedOut++
		case models.StatusMaintenance:
			stats.Maintenance++
		case models.StatusRetired:
			stats.Retired++
		}
		stats.ByType[it.GearType]++
	}
	return stats, nil
}

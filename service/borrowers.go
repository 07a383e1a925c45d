package service

import (
	"context"
	"strings"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type BorrowerService struct {
	store store.Store
}

func NewBorrowerService(st store.Store) *BorrowerService {
	return &BorrowerService{store: st}
}

func (s *BorrowerService) Create(ctx context.Context, b *models.Borrower, createdBy string) (string, error) {
	if err := apperr.Validation(b.Validate()); err != nil {
		return "", err
	}
	b.ID = ""
	b.CreatedBy = createdBy
	return s.store.Borrowers().Create(ctx, b)
}

func (s *BorrowerService) GetByID(ctx context.Context, id string) (*models.Borrower, error) {
	return s.store.Borrowers().GetByID(ctx, id)
}

func (s *BorrowerService) Update(ctx context.Context, id string, fields store.Fields) error {
	return s.store.Borrowers().Update(ctx, id, fields)
}

func (s *BorrowerService) Delete(ctx context.Context, id string) error {
	return s.store.Borrowers().Delete(ctx, id)
}

func (s *BorrowerService) HardDelete(ctx context.Context, id string) error {
	return s.store.Borrowers().HardDelete(ctx, id)
}

func (s *BorrowerService) GetAll(ctx context.Context, f store.BorrowerFilter) ([]models.Borrower, error) {
	return s.store.Borrowers().GetAll(ctx, f)
}

func (s *BorrowerService) GetActive(ctx context.Context) ([]models.Borrower, error) {
	return s.GetAll(ctx, store.BorrowerFilter{Status: models.BorrowerActive})
}

func (s *BorrowerService) Search(ctx context.Context, term string) ([]models.Borrower, error) {
	bs, err := s.GetAll(ctx, store.BorrowerFilter{})
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	var out []models.Borrower
	for _, b := range bs {
		if strings.Contains(strings.ToLower(b.FirstName), term) ||
			strings.Contains(strings.ToLower(b.LastName), term) ||
			strings.Contains(strings.ToLower(b.Email), term) ||
			strings.Contains(strings.ToLower(b.Phone), term) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BorrowerService) SubscribeAll(f store.BorrowerFilter, fn func([]models.Borrower)) (store.Unsubscribe, error) {
	return s.store.Borrowers().SubscribeAll(f, fn)
}

func (s *BorrowerService) SubscribeByID(id string, fn func(*models.Borrower)) (store.Unsubscribe, error) {
	return s.store.Borrowers().SubscribeByID(id, fn)
}

// Counter mutators. The transaction workflow is the only caller for
// item counts; the counters can drift if a sequential fallback write
// fails partway, there is no reconciliation pass.

func (s *BorrowerService) IncrementItemCount(ctx context.Context, id string) error {
	return s.adjustCounters(ctx, id, func(b *models.Borrower) store.Fields {
		return store.Fields{
			"currentItemCount": b.CurrentItemCount + 1,
			"totalBorrows":     b.TotalBorrows + 1,
		}
	})
}

func (s *BorrowerService) DecrementItemCount(ctx context.Context, id string) error {
	return s.adjustCounters(ctx, id, func(b *models.Borrower) store.Fields {
		return store.Fields{"currentItemCount": floorZero(b.CurrentItemCount - 1)}
	})
}

func (s *BorrowerService) IncrementOverdueCount(ctx context.Context, id string) error {
	return s.adjustCounters(ctx, id, func(b *models.Borrower) store.Fields {
		return store.Fields{"overdueCount": b.OverdueCount + 1}
	})
}

func (s *BorrowerService) DecrementOverdueCount(ctx context.Context, id string) error {
	return s.adjustCounters(ctx, id, func(b *models.Borrower) store.Fields {
		return store.Fields{"overdueCount": floorZero(b.OverdueCount - 1)}
	})
}

func (s *BorrowerService) adjustCounters(ctx context.Context, id string, fields func(*models.Borrower) store.Fields) error {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return apperr.ErrNotFound
	}
	return s.store.Borrowers().Update(ctx, id, fields(b))
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

type BorrowerStats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Suspended   int `json:"suspended"`
	Inactive    int `json:"inactive"`
	WithItems   int `json:"withItems"`
	WithOverdue int `json:"withOverdue"`
}

func (s *BorrowerService) GetStatistics(ctx context.Context) (*BorrowerStats, error) {
	bs, err := s.GetAll(ctx, store.BorrowerFilter{})
	if err != nil {
		return nil, err
	}
	stats := &BorrowerStats{Total: len(bs)}
	for _, b := range bs {
		switch b.Status {
		case models.BorrowerActive:
			stats.Active++
		case models.BorrowerSuspended:
			stats.Suspended++
		case models.BorrowerInactive:
			stats.Inactive++
		}
		if b.CurrentItemCount > 0 {
			stats.WithItems++
		}
		if b.HasOverdueItems() {
			stats.WithOverdue++
		}
	}
	return stats, nil
}

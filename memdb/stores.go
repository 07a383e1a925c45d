package memdb

import (
	"context"
	"sort"
	"time"

	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

// Gear types

type gearTypeStore struct{ s *Store }

func (g gearTypeStore) Create(ctx context.Context, t *models.GearType) (string, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	if t.ID == "" {
		t.ID = newID()
	}
	stamp(&t.CreatedAt, &t.UpdatedAt)
	g.s.gearTypes[t.ID] = *t
	return t.ID, nil
}

func (g gearTypeStore) GetByID(ctx context.Context, id string) (*models.GearType, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	t, ok := g.s.gearTypes[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (g gearTypeStore) Update(ctx context.Context, id string, fields store.Fields) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	t, ok := g.s.gearTypes[id]
	if err := notFoundIfMissing(ok); err != nil {
		return err
	}
	if err := mergeFields(&t, fields); err != nil {
		return err
	}
	t.UpdatedAt = time.Now()
	g.s.gearTypes[id] = t
	return nil
}

func (g gearTypeStore) Delete(ctx context.Context, id string) error {
	return g.Update(ctx, id, store.Fields{"isActive": false})
}

func (g gearTypeStore) HardDelete(ctx context.Context, id string) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	if err := notFoundIfMissing(g.s.gearTypes[id].ID != ""); err != nil {
		return err
	}
	delete(g.s.gearTypes, id)
	return nil
}

func (g gearTypeStore) GetAll(ctx context.Context, f store.GearTypeFilter) ([]models.GearType, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	var out []models.GearType
	for _, t := range g.s.gearTypes {
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.ActiveOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return capped(out, f.Limit), nil
}

// SubscribeAll degrades to a single immediate callback in memory mode,
// as does SubscribeByID.
func (g gearTypeStore) SubscribeAll(f store.GearTypeFilter, fn func([]models.GearType)) (store.Unsubscribe, error) {
	ts, err := g.GetAll(context.Background(), f)
	if err != nil {
		return nil, err
	}
	fn(ts)
	return func() {}, nil
}

// Gear items

type gearItemStore struct{ s *Store }

func (g gearItemStore) Create(ctx context.Context, it *models.GearItem) (string, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	if it.ID == "" {
		it.ID = newID()
	}
	stamp(&it.CreatedAt, &it.UpdatedAt)
	g.s.gearItems[it.ID] = *it
	return it.ID, nil
}

func (g gearItemStore) GetByID(ctx context.Context, id string) (*models.GearItem, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	it, ok := g.s.gearItems[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// GetByIDForUpdate is a plain read; the fallback has no row locks.
func (g gearItemStore) GetByIDForUpdate(ctx context.Context, id string) (*models.GearItem, error) {
	return g.GetByID(ctx, id)
}

func (g gearItemStore) Update(ctx context.Context, id string, fields store.Fields) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	it, ok := g.s.gearItems[id]
	if err := notFoundIfMissing(ok); err != nil {
		return err
	}
	if err := mergeFields(&it, fields); err != nil {
		return err
	}
	it.UpdatedAt = time.Now()
	g.s.gearItems[id] = it
	return nil
}

func (g gearItemStore) Delete(ctx context.Context, id string) error {
	return g.Update(ctx, id, store.Fields{"status": models.StatusRetired})
}

func (g gearItemStore) HardDelete(ctx context.Context, id string) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	if err := notFoundIfMissing(g.s.gearItems[id].ID != ""); err != nil {
		return err
	}
	delete(g.s.gearItems, id)
	return nil
}

func (g gearItemStore) GetAll(ctx context.Context, f store.GearItemFilter) ([]models.GearItem, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	var out []models.GearItem
	for _, it := range g.s.gearItems {
		if f.Status != "" && it.Status != f.Status {
			continue
		}
		if f.GearType != "" && it.GearType != f.GearType {
			continue
		}
		if f.Condition != "" && it.Condition != f.Condition {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capped(out, f.Limit), nil
}

func (g gearItemStore) SubscribeAll(f store.GearItemFilter, fn func([]models.GearItem)) (store.Unsubscribe, error) {
	its, err := g.GetAll(context.Background(), f)
	if err != nil {
		return nil, err
	}
	fn(its)
	return func() {}, nil
}

func (g gearItemStore) SubscribeByID(id string, fn func(*models.GearItem)) (store.Unsubscribe, error) {
	it, err := g.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	fn(it)
	return func() {}, nil
}

// Borrowers

type borrowerStore struct{ s *Store }

func (b borrowerStore) Create(ctx context.Context, br *models.Borrower) (string, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if br.ID == "" {
		br.ID = newID()
	}
	stamp(&br.CreatedAt, &br.UpdatedAt)
	b.s.borrowers[br.ID] = *br
	return br.ID, nil
}

func (b borrowerStore) GetByID(ctx context.Context, id string) (*models.Borrower, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	br, ok := b.s.borrowers[id]
	if !ok {
		return nil, nil
	}
	return &br, nil
}

func (b borrowerStore) GetByIDForUpdate(ctx context.Context, id string) (*models.Borrower, error) {
	return b.GetByID(ctx, id)
}

func (b borrowerStore) Update(ctx context.Context, id string, fields store.Fields) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	br, ok := b.s.borrowers[id]
	if err := notFoundIfMissing(ok); err != nil {
		return err
	}
	if err := mergeFields(&br, fields); err != nil {
		return err
	}
	br.UpdatedAt = time.Now()
	b.s.borrowers[id] = br
	return nil
}

func (b borrowerStore) Delete(ctx context.Context, id string) error {
	return b.Update(ctx, id, store.Fields{"status": models.BorrowerInactive})
}

func (b borrowerStore) HardDelete(ctx context.Context, id string) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if err := notFoundIfMissing(b.s.borrowers[id].ID != ""); err != nil {
		return err
	}
	delete(b.s.borrowers, id)
	return nil
}

func (b borrowerStore) GetAll(ctx context.Context, f store.BorrowerFilter) ([]models.Borrower, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	var out []models.Borrower
	for _, br := range b.s.borrowers {
		if f.Status != "" && br.Status != f.Status {
			continue
		}
		out = append(out, br)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return capped(out, f.Limit), nil
}

func (b borrowerStore) SubscribeAll(f store.BorrowerFilter, fn func([]models.Borrower)) (store.Unsubscribe, error) {
	brs, err := b.GetAll(context.Background(), f)
	if err != nil {
		return nil, err
	}
	fn(brs)
	return func() {}, nil
}

func (b borrowerStore) SubscribeByID(id string, fn func(*models.Borrower)) (store.Unsubscribe, error) {
	br, err := b.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	fn(br)
	return func() {}, nil
}

// Transactions

type txStore struct{ s *Store }

func (t txStore) Create(ctx context.Context, tr *models.Transaction) (string, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if tr.ID == "" {
		tr.ID = newID()
	}
	stamp(&tr.CreatedAt, &tr.UpdatedAt)
	t.s.transactions[tr.ID] = *tr
	return tr.ID, nil
}

func (t txStore) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	tr, ok := t.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return &tr, nil
}

func (t txStore) GetByIDForUpdate(ctx context.Context, id string) (*models.Transaction, error) {
	return t.GetByID(ctx, id)
}

func (t txStore) Update(ctx context.Context, id string, fields store.Fields) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	tr, ok := t.s.transactions[id]
	if err := notFoundIfMissing(ok); err != nil {
		return err
	}
	if err := mergeFields(&tr, fields); err != nil {
		return err
	}
	tr.UpdatedAt = time.Now()
	t.s.transactions[id] = tr
	return nil
}

func (t txStore) Delete(ctx context.Context, id string) error {
	return t.Update(ctx, id, store.Fields{"status": models.TxCancelled})
}

func (t txStore) HardDelete(ctx context.Context, id string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := notFoundIfMissing(t.s.transactions[id].ID != ""); err != nil {
		return err
	}
	delete(t.s.transactions, id)
	return nil
}

func (t txStore) GetAll(ctx context.Context, f store.TransactionFilter) ([]models.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []models.Transaction
	for _, tr := range t.s.transactions {
		if f.Status != "" && tr.Status != f.Status {
			continue
		}
		if f.BorrowerID != "" && tr.BorrowerID != f.BorrowerID {
			continue
		}
		if f.GearItemID != "" && tr.GearItemID != f.GearItemID {
			continue
		}
		if f.IsOverdue != nil && tr.IsOverdue != *f.IsOverdue {
			continue
		}
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CheckoutDate, out[j].CheckoutDate
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	return capped(out, f.Limit), nil
}

func (t txStore) SubscribeAll(f store.TransactionFilter, fn func([]models.Transaction)) (store.Unsubscribe, error) {
	trs, err := t.GetAll(context.Background(), f)
	if err != nil {
		return nil, err
	}
	fn(trs)
	return func() {}, nil
}

func (t txStore) SubscribeByID(id string, fn func(*models.Transaction)) (store.Unsubscribe, error) {
	tr, err := t.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	fn(tr)
	return func() {}, nil
}

func (t txStore) MarkOverdue(ctx context.Context, ids []string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	now := time.Now()
	for _, id := range ids {
		tr, ok := t.s.transactions[id]
		if !ok {
			continue
		}
		tr.Status = models.TxOverdue
		tr.IsOverdue = true
		tr.UpdatedAt = now
		t.s.transactions[id] = tr
	}
	return nil
}

func (t txStore) ArchivePut(ctx context.Context, a *models.TransactionArchive) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.history[a.ID] = *a
	return nil
}

func (t txStore) ArchiveGetAll(ctx context.Context, limit int) ([]models.TransactionArchive, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []models.TransactionArchive
	for _, a := range t.s.history {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArchivedAt.After(out[j].ArchivedAt) })
	return capped(out, limit), nil
}

func capped[T any](in []T, limit int) []T {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}

// Package memdb is the in-process fallback store used when no
// DATABASE_URL is configured. One mutex guards all collections; the
// fallback targets single-user/demo use only.
package memdb

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type Store struct {
	mu sync.Mutex

	gearTypes    map[string]models.GearType
	gearItems    map[string]models.GearItem
	borrowers    map[string]models.Borrower
	transactions map[string]models.Transaction
	history      map[string]models.TransactionArchive
}

func New() *Store {
	return &Store{
		gearTypes:    map[string]models.GearType{},
		gearItems:    map[string]models.GearItem{},
		borrowers:    map[string]models.Borrower{},
		transactions: map[string]models.Transaction{},
		history:      map[string]models.TransactionArchive{},
	}
}

func (s *Store) GearTypes() store.GearTypeStore       { return gearTypeStore{s} }
func (s *Store) GearItems() store.GearItemStore       { return gearItemStore{s} }
func (s *Store) Borrowers() store.BorrowerStore       { return borrowerStore{s} }
func (s *Store) Transactions() store.TransactionStore { return txStore{s} }

// Atomic runs fn against the same store. Writes apply sequentially
// with no rollback on partial failure; the live backend closes this
// gap, the fallback documents it.
func (s *Store) Atomic(ctx context.Context, fn func(store.Store) error) error {
	return fn(s)
}

func newID() string { return uuid.NewString() }

// mergeFields overlays a partial update onto a record through its
// document (json) field names, so both backends share one update key
// vocabulary.
func mergeFields(rec any, fields store.Fields) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		doc[k] = b
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, rec)
}

func stamp(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func notFoundIfMissing(ok bool) error {
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

package db

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

// Collection names used for change notifications.
const (
	colGearTypes    = "gearTypes"
	colGearItems    = "gearItems"
	colBorrowers    = "borrowers"
	colTransactions = "transactions"
)

// Store is the GORM/Postgres implementation of the persistence port.
type Store struct {
	conn *gorm.DB
	hub  *Hub

	// non-nil inside Atomic; collections touched by the transaction,
	// announced only after commit
	touched map[string]bool
}

func NewStore(conn *gorm.DB, hub *Hub) *Store {
	return &Store{conn: conn, hub: hub}
}

func (s *Store) GearTypes() store.GearTypeStore       { return gearTypeStore{s} }
func (s *Store) GearItems() store.GearItemStore       { return gearItemStore{s} }
func (s *Store) Borrowers() store.BorrowerStore       { return borrowerStore{s} }
func (s *Store) Transactions() store.TransactionStore { return txStore{s} }

// Atomic runs fn inside one database transaction. Change notifications
// for touched collections are held back until the commit succeeds.
func (s *Store) Atomic(ctx context.Context, fn func(store.Store) error) error {
	touched := map[string]bool{}
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{conn: tx, hub: s.hub, touched: touched})
	})
	if err != nil {
		return err
	}
	cols := make([]string, 0, len(touched))
	for c := range touched {
		cols = append(cols, c)
	}
	s.hub.Changed(cols...)
	return nil
}

// changed records a write for notification, deferring inside Atomic.
func (s *Store) changed(collection string) {
	if s.touched != nil {
		s.touched[collection] = true
		return
	}
	s.hub.Changed(collection)
}

// updateRow merges a partial update into one row. Unknown ids are an
// error, not an upsert.
func (s *Store) updateRow(ctx context.Context, model any, id string, fields store.Fields) error {
	res := s.conn.WithContext(ctx).Model(model).Where("id = ?", id).Updates(columns(fields))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Store) deleteRow(ctx context.Context, model any, id string) error {
	res := s.conn.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func absent(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// columns translates document field names (json tags, camelCase) to
// the snake_case column names GORM derives for the same fields.
func columns(fields store.Fields) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[colName(k)] = v
	}
	return out
}

func colName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

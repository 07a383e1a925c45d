// Package store defines the persistence port the services are written
// against. Two implementations exist: db (GORM/Postgres, the live
// backend) and memdb (in-process fallback for demo/single-user runs).
package store

import (
	"context"

	"github.com/TheWaulicus/wolves-den-inventory/models"
)

// Fields is a partial update keyed by the record's document field
// names (the json tag names on the model).
type Fields = map[string]any

// Unsubscribe detaches a live subscription.
type Unsubscribe = func()

// Filters are exact-match only; no range or text queries. Each store
// sorts by its fixed default key and optionally caps the result set.

type GearTypeFilter struct {
	Category   string
	ActiveOnly bool
	Limit      int
}

type GearItemFilter struct {
	Status    string
	GearType  string
	Condition string
	Limit     int
}

type BorrowerFilter struct {
	Status string
	Limit  int
}

type TransactionFilter struct {
	Status     string
	BorrowerID string
	GearItemID string
	IsOverdue  *bool
	Limit      int
}

// GearTypeStore persists the equipment catalog. Sorted by sortOrder.
type GearTypeStore interface {
	// Create persists the record, assigning a generated id when none is
	// set, and returns the id.
	Create(ctx context.Context, t *models.GearType) (string, error)
	// GetByID returns (nil, nil) when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.GearType, error)
	// Update merges fields into the stored record and stamps the update
	// timestamp; apperr.ErrNotFound when the id is unknown.
	Update(ctx context.Context, id string, fields Fields) error
	// Delete is the soft delete (isActive=false).
	Delete(ctx context.Context, id string) error
	// HardDelete removes the record permanently, with no cascade to
	// gear items referencing the type.
	HardDelete(ctx context.Context, id string) error
	GetAll(ctx context.Context, f GearTypeFilter) ([]models.GearType, error)
	// SubscribeAll delivers the full current matching set on every
	// change. The fallback store degrades to a single immediate
	// callback; callers must not assume ongoing liveness.
	SubscribeAll(f GearTypeFilter, fn func([]models.GearType)) (Unsubscribe, error)
}

// GearItemStore persists physical units. Sorted by createdAt desc.
type GearItemStore interface {
	Create(ctx context.Context, g *models.GearItem) (string, error)
	GetByID(ctx context.Context, id string) (*models.GearItem, error)
	// GetByIDForUpdate is GetByID holding a row lock until the enclosing
	// Atomic commits. Outside Atomic, and on the fallback store, it is
	// a plain read.
	GetByIDForUpdate(ctx context.Context, id string) (*models.GearItem, error)
	Update(ctx context.Context, id string, fields Fields) error
	// Delete is the soft delete (status=retired).
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	GetAll(ctx context.Context, f GearItemFilter) ([]models.GearItem, error)
	SubscribeAll(f GearItemFilter, fn func([]models.GearItem)) (Unsubscribe, error)
	// SubscribeByID delivers the single record on every collection
	// change, nil once it is gone. Same fallback degradation as
	// SubscribeAll.
	SubscribeByID(id string, fn func(*models.GearItem)) (Unsubscribe, error)
}

// BorrowerStore persists borrowers. Sorted by lastName, firstName.
type BorrowerStore interface {
	Create(ctx context.Context, b *models.Borrower) (string, error)
	GetByID(ctx context.Context, id string) (*models.Borrower, error)
	GetByIDForUpdate(ctx context.Context, id string) (*models.Borrower, error)
	Update(ctx context.Context, id string, fields Fields) error
	// Delete is the soft delete (status=inactive).
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	GetAll(ctx context.Context, f BorrowerFilter) ([]models.Borrower, error)
	SubscribeAll(f BorrowerFilter, fn func([]models.Borrower)) (Unsubscribe, error)
	SubscribeByID(id string, fn func(*models.Borrower)) (Unsubscribe, error)
}

// TransactionStore persists lending events and their archive. Sorted
// by checkoutDate desc.
type TransactionStore interface {
	// Create returns apperr.ErrNotAvailable when the insert collides
	// with the one-open-loan-per-item constraint.
	Create(ctx context.Context, t *models.Transaction) (string, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	GetByIDForUpdate(ctx context.Context, id string) (*models.Transaction, error)
	Update(ctx context.Context, id string, fields Fields) error
	// Delete is the soft delete (status=cancelled).
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	GetAll(ctx context.Context, f TransactionFilter) ([]models.Transaction, error)
	SubscribeAll(f TransactionFilter, fn func([]models.Transaction)) (Unsubscribe, error)
	SubscribeByID(id string, fn func(*models.Transaction)) (Unsubscribe, error)

	// MarkOverdue is the bulk write used by the overdue scan.
	MarkOverdue(ctx context.Context, ids []string) error

	// History store. ArchivePut and the live-row delete are only atomic
	// when run inside Atomic on a backend that supports it.
	ArchivePut(ctx context.Context, a *models.TransactionArchive) error
	ArchiveGetAll(ctx context.Context, limit int) ([]models.TransactionArchive, error)
}

// Store aggregates the per-entity stores behind one construction-time
// backend choice.
type Store interface {
	GearTypes() GearTypeStore
	GearItems() GearItemStore
	Borrowers() BorrowerStore
	Transactions() TransactionStore

	// Atomic runs fn against a store view whose writes commit or roll
	// back as a unit when the backend supports it. The fallback store
	// applies writes sequentially with no rollback on partial failure.
	Atomic(ctx context.Context, fn func(Store) error) error
}

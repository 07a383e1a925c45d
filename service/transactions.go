package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

// TransactionService owns the only multi-entity coordinated operations
// in the system: checkout, check-in, the overdue scan and archival.
type TransactionService struct {
	store store.Store
}

func NewTransactionService(st store.Store) *TransactionService {
	return &TransactionService{store: st}
}

func (s *TransactionService) Create(ctx context.Context, t *models.Transaction) (string, error) {
	if err := apperr.Validation(t.Validate()); err != nil {
		return "", err
	}
	t.ID = ""
	return s.store.Transactions().Create(ctx, t)
}

func (s *TransactionService) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return s.store.Transactions().GetByID(ctx, id)
}

func (s *TransactionService) Update(ctx context.Context, id string, fields store.Fields) error {
	return s.store.Transactions().Update(ctx, id, fields)
}

// Cancel is the transaction's soft delete; the record is kept with a
// terminal status, never removed.
func (s *TransactionService) Cancel(ctx context.Context, id string) error {
	return s.store.Transactions().Delete(ctx, id)
}

func (s *TransactionService) GetAll(ctx context.Context, f store.TransactionFilter) ([]models.Transaction, error) {
	return s.store.Transactions().GetAll(ctx, f)
}

func (s *TransactionService) GetActive(ctx context.Context) ([]models.Transaction, error) {
	return s.GetAll(ctx, store.TransactionFilter{Status: models.TxActive})
}

func (s *TransactionService) GetOverdue(ctx context.Context) ([]models.Transaction, error) {
	overdue := true
	return s.GetAll(ctx, store.TransactionFilter{IsOverdue: &overdue})
}

func (s *TransactionService) GetByBorrower(ctx context.Context, borrowerID string) ([]models.Transaction, error) {
	return s.GetAll(ctx, store.TransactionFilter{BorrowerID: borrowerID})
}

func (s *TransactionService) GetByGearItem(ctx context.Context, gearItemID string) ([]models.Transaction, error) {
	return s.GetAll(ctx, store.TransactionFilter{GearItemID: gearItemID})
}

func (s *TransactionService) SubscribeAll(f store.TransactionFilter, fn func([]models.Transaction)) (store.Unsubscribe, error) {
	return s.store.Transactions().SubscribeAll(f, fn)
}

func (s *TransactionService) SubscribeByID(id string, fn func(*models.Transaction)) (store.Unsubscribe, error) {
	return s.store.Transactions().SubscribeByID(id, fn)
}

type CheckOutInput struct {
	GearItemID    string
	BorrowerID    string
	DueDate       time.Time
	CheckoutNotes string
	CheckedOutBy  string
}

// CheckOut lends a gear item to a borrower. The precondition checks
// and the three writes run inside one Atomic scope over locked reads,
// so on the live backend two racing checkouts serialize on the item
// row and the loser gets ErrNotAvailable, not a constraint violation.
func (s *TransactionService) CheckOut(ctx context.Context, in CheckOutInput) (string, error) {
	var txID string
	err := s.store.Atomic(ctx, func(as store.Store) error {
		item, err := as.GearItems().GetByIDForUpdate(ctx, in.GearItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.ErrNotFound
		}
		borrower, err := as.Borrowers().GetByIDForUpdate(ctx, in.BorrowerID)
		if err != nil {
			return err
		}
		if borrower == nil {
			return apperr.ErrNotFound
		}

		if !item.IsAvailable() {
			return apperr.ErrNotAvailable
		}
		if !borrower.CanBorrow() {
			return apperr.ErrBorrowingNotAllowed
		}

		now := time.Now()
		due := in.DueDate
		tx := &models.Transaction{
			GearItemID:         in.GearItemID,
			BorrowerID:         in.BorrowerID,
			GearType:           item.GearType,
			GearBrand:          item.Brand,
			GearSize:           item.Size,
			BorrowerName:       borrower.FullName(),
			BorrowerEmail:      borrower.Email,
			CheckoutDate:       &now,
			DueDate:            &due,
			ExpectedReturnDate: &due,
			Status:             models.TxActive,
			IsOverdue:          false,
			CheckoutCondition:  item.Condition,
			CheckoutNotes:      in.CheckoutNotes,
			CheckedOutBy:       in.CheckedOutBy,
		}
		if err := apperr.Validation(tx.Validate()); err != nil {
			return err
		}

		id, err := as.Transactions().Create(ctx, tx)
		if err != nil {
			return err
		}
		txID = id

		if err := as.GearItems().Update(ctx, in.GearItemID, store.Fields{
			"status":           models.StatusCheckedOut,
			"currentBorrower":  in.BorrowerID,
			"lastCheckoutDate": now,
		}); err != nil {
			return err
		}

		return as.Borrowers().Update(ctx, in.BorrowerID, store.Fields{
			"currentItemCount": borrower.CurrentItemCount + 1,
			"totalBorrows":     borrower.TotalBorrows + 1,
		})
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}

type CheckInInput struct {
	ReturnCondition   string
	ReturnNotes       string
	DamageReported    bool
	DamageDescription string
	ReturnedBy        string
}

// CheckIn closes an active or overdue transaction. Damaged gear goes
// to maintenance instead of back into circulation. The state check
// runs over a locked read inside Atomic so a concurrent double
// check-in cannot decrement the borrower counters twice.
func (s *TransactionService) CheckIn(ctx context.Context, transactionID string, in CheckInInput) error {
	if in.DamageReported && in.DamageDescription == "" {
		return apperr.Validation([]string{"Damage description is required when damage is reported"})
	}
	if in.ReturnCondition != "" && !slices.Contains(models.ValidConditions, in.ReturnCondition) {
		return apperr.Validation([]string{"Return condition must be one of: " + strings.Join(models.ValidConditions, ", ")})
	}

	return s.store.Atomic(ctx, func(as store.Store) error {
		tx, err := as.Transactions().GetByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return apperr.ErrNotFound
		}
		if !tx.IsActive() {
			return apperr.ErrInvalidState
		}

		returnCondition := in.ReturnCondition
		if returnCondition == "" {
			returnCondition = tx.CheckoutCondition
		}
		now := time.Now()

		if err := as.Transactions().Update(ctx, transactionID, store.Fields{
			"returnDate":        now,
			"status":            models.TxReturned,
			"isOverdue":         false,
			"returnCondition":   returnCondition,
			"returnNotes":       in.ReturnNotes,
			"damageReported":    in.DamageReported,
			"damageDescription": in.DamageDescription,
			"returnedBy":        in.ReturnedBy,
		}); err != nil {
			return err
		}

		itemStatus := models.StatusAvailable
		if in.DamageReported {
			itemStatus = models.StatusMaintenance
		}
		if err := as.GearItems().Update(ctx, tx.GearItemID, store.Fields{
			"status":          itemStatus,
			"currentBorrower": nil,
			"condition":       returnCondition,
		}); err != nil {
			return err
		}

		borrower, err := as.Borrowers().GetByIDForUpdate(ctx, tx.BorrowerID)
		if err != nil {
			return err
		}
		if borrower == nil {
			return apperr.ErrNotFound
		}
		fields := store.Fields{"currentItemCount": floorZero(borrower.CurrentItemCount - 1)}
		if tx.IsOverdue {
			fields["overdueCount"] = floorZero(borrower.OverdueCount - 1)
		}
		return as.Borrowers().Update(ctx, tx.BorrowerID, fields)
	})
}

// CheckOverdue scans active transactions and flips the past-due ones
// to overdue in one bulk write. Invoked on demand, never scheduled
// internally; re-running is a no-op on already-overdue records.
func (s *TransactionService) CheckOverdue(ctx context.Context) (int, error) {
	active, err := s.GetActive(ctx)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	var ids []string
	for _, tx := range active {
		if tx.DueDate != nil && now.After(*tx.DueDate) {
			ids = append(ids, tx.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.store.Transactions().MarkOverdue(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// MoveToHistory archives a returned transaction: copy into the history
// store with an archival timestamp, then delete the live record. Not
// atomic across the two stores in fallback mode.
func (s *TransactionService) MoveToHistory(ctx context.Context, transactionID string) error {
	return s.store.Atomic(ctx, func(as store.Store) error {
		tx, err := as.Transactions().GetByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return apperr.ErrNotFound
		}
		if !tx.IsReturned() {
			return apperr.ErrInvalidState
		}

		archive := &models.TransactionArchive{
			Transaction: *tx,
			ArchivedAt:  time.Now(),
			CompletedAt: tx.ReturnDate,
		}
		if err := as.Transactions().ArchivePut(ctx, archive); err != nil {
			return err
		}
		return as.Transactions().HardDelete(ctx, transactionID)
	})
}

func (s *TransactionService) GetHistory(ctx context.Context, limit int) ([]models.TransactionArchive, error) {
	return s.store.Transactions().ArchiveGetAll(ctx, limit)
}

type TransactionStats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Overdue    int `json:"overdue"`
	Returned   int `json:"returned"`
	WithDamage int `json:"withDamage"`
}

func (s *TransactionService) GetStatistics(ctx context.Context) (*TransactionStats, error) {
	txs, err := s.GetAll(ctx, store.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	stats := &TransactionStats{Total: len(txs)}
	for _, tx := range txs {
		switch {
		case tx.IsOverdue:
			stats.Overdue++
		case tx.Status == models.TxActive:
			stats.Active++
		case tx.Status == models.TxReturned:
			stats.Returned++
		}
		if tx.DamageReported {
			stats.WithDamage++
		}
	}
	return stats, nil
}

package models

import "time"

const TransactionTable = "wdi_transactions"
const TransactionHistoryTable = "wdi_transaction_history"

// Transaction lifecycle. Returned and cancelled are terminal.
const (
	TxActive    = "active"
	TxOverdue   = "overdue"
	TxReturned  = "returned"
	TxCancelled = "cancelled"
)

var ValidTxStatuses = []string{TxActive, TxOverdue, TxReturned, TxCancelled}

// Transaction is one lending event. Gear and borrower descriptive
// fields are snapshotted at checkout so lists render without joins;
// there is no referential-integrity enforcement against the live rows.
type Transaction struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	GearItemID string `gorm:"type:uuid;not null;index" json:"gearItemId"`
	BorrowerID string `gorm:"type:uuid;not null;index" json:"borrowerId"`

	GearType      string `gorm:"size:120" json:"gearType"`
	GearBrand     string `gorm:"size:120" json:"gearBrand"`
	GearSize      string `gorm:"size:40" json:"gearSize"`
	BorrowerName  string `gorm:"size:255" json:"borrowerName"`
	BorrowerEmail string `gorm:"size:255" json:"borrowerEmail"`

	CheckoutDate       *time.Time `gorm:"index" json:"checkoutDate"`
	DueDate            *time.Time `gorm:"index" json:"dueDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
	ReturnDate         *time.Time `json:"returnDate,omitempty"`

	Status    string `gorm:"size:20;not null;default:'active';index" json:"status"`
	IsOverdue bool   `gorm:"not null;default:false;index" json:"isOverdue"`

	CheckoutCondition string `gorm:"size:20;not null;default:'good'" json:"checkoutCondition"`
	ReturnCondition   string `gorm:"size:20" json:"returnCondition,omitempty"`
	DamageReported    bool   `gorm:"not null;default:false" json:"damageReported"`
	DamageDescription string `gorm:"size:500" json:"damageDescription"`

	CheckoutNotes string `gorm:"size:500" json:"checkoutNotes"`
	ReturnNotes   string `gorm:"size:500" json:"returnNotes"`

	CheckedOutBy string `gorm:"size:120" json:"checkedOutBy,omitempty"`
	ReturnedBy   string `gorm:"size:120" json:"returnedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Transaction) TableName() string { return TransactionTable }

func (t *Transaction) Validate() []string {
	var errs []string
	if t.GearItemID == "" {
		errs = append(errs, "Gear item ID is required")
	}
	if t.BorrowerID == "" {
		errs = append(errs, "Borrower ID is required")
	}
	if t.CheckoutDate == nil {
		errs = append(errs, "Checkout date is required")
	}
	if t.DueDate == nil {
		errs = append(errs, "Due date is required")
	}
	if t.CheckoutDate != nil && t.DueDate != nil && t.CheckoutDate.After(*t.DueDate) {
		errs = append(errs, "Due date must be after checkout date")
	}
	if !contains(ValidTxStatuses, t.Status) {
		errs = append(errs, "Status must be one of: "+joinList(ValidTxStatuses))
	}
	if !contains(ValidConditions, t.CheckoutCondition) {
		errs = append(errs, "Checkout condition must be one of: "+joinList(ValidConditions))
	}
	return errs
}

// IsActive covers both open states of the lifecycle.
func (t *Transaction) IsActive() bool   { return t.Status == TxActive || t.Status == TxOverdue }
func (t *Transaction) IsReturned() bool { return t.Status == TxReturned }

// DaysOverdue counts whole days past the due date; zero when not overdue.
func (t *Transaction) DaysOverdue() int {
	if !t.IsOverdue || t.DueDate == nil {
		return 0
	}
	d := time.Since(*t.DueDate)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// TransactionArchive is a closed-out transaction moved to the history
// store, stamped with the archival time.
type TransactionArchive struct {
	Transaction `gorm:"embedded"`

	ArchivedAt  time.Time  `gorm:"index" json:"archivedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (TransactionArchive) TableName() string { return TransactionHistoryTable }

package models

import (
	"regexp"
	"strings"
	"time"
)

const BorrowerTable = "wdi_borrowers"

// Borrower lifecycle.
const (
	BorrowerActive    = "active"
	BorrowerSuspended = "suspended"
	BorrowerInactive  = "inactive"
)

// Preferred contact channels.
const (
	ContactEmail = "email"
	ContactSMS   = "sms"
	ContactBoth  = "both"
)

var ValidBorrowerStatuses = []string{BorrowerActive, BorrowerSuspended, BorrowerInactive}
var ValidContactMethods = []string{ContactEmail, ContactSMS, ContactBoth}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Borrower is a person eligible to borrow gear (player, coach, staff).
// CurrentItemCount, TotalBorrows and OverdueCount are denormalized
// counters maintained by the transaction workflow only.
type Borrower struct {
	ID               string     `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName        string     `gorm:"size:120;not null" json:"firstName"`
	LastName         string     `gorm:"size:120;not null" json:"lastName"`
	Email            string     `gorm:"size:255;index" json:"email"`
	Phone            string     `gorm:"size:40" json:"phone"`
	Status           string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	MaxItems         int        `gorm:"not null;default:5" json:"maxItems"`
	CanBorrowUntil   *time.Time `json:"canBorrowUntil,omitempty"`
	CurrentItemCount int        `gorm:"not null;default:0" json:"currentItemCount"`
	TotalBorrows     int        `gorm:"not null;default:0" json:"totalBorrows"`
	OverdueCount     int        `gorm:"not null;default:0" json:"overdueCount"`
	PreferredContact string     `gorm:"size:10;not null;default:'email'" json:"preferredContact"`
	Notifications    bool       `gorm:"not null;default:true" json:"notifications"`
	Notes            string     `gorm:"size:500" json:"notes"`
	PhotoURL         string     `gorm:"size:500" json:"photoUrl,omitempty"`
	EmergencyContact string     `gorm:"size:255" json:"emergencyContact"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `gorm:"size:120" json:"createdBy,omitempty"`
}

func (Borrower) TableName() string { return BorrowerTable }

func (b *Borrower) Validate() []string {
	var errs []string
	if isBlank(b.FirstName) {
		errs = append(errs, "First name is required")
	}
	if isBlank(b.LastName) {
		errs = append(errs, "Last name is required")
	}
	if b.Email != "" && !emailRe.MatchString(b.Email) {
		errs = append(errs, "Email must be valid if provided")
	}
	if !contains(ValidBorrowerStatuses, b.Status) {
		errs = append(errs, "Status must be one of: "+joinList(ValidBorrowerStatuses))
	}
	if b.MaxItems < 1 {
		errs = append(errs, "Max items must be at least 1")
	}
	return errs
}

func (b *Borrower) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// CanBorrow is the admission check for new checkouts.
func (b *Borrower) CanBorrow() bool {
	if b.Status != BorrowerActive {
		return false
	}
	if b.CurrentItemCount >= b.MaxItems {
		return false
	}
	if b.CanBorrowUntil != nil && time.Now().After(*b.CanBorrowUntil) {
		return false
	}
	return true
}

func (b *Borrower) HasOverdueItems() bool { return b.OverdueCount > 0 }

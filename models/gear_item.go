package models

import "time"

const GearItemTable = "wdi_gear_items"

// Physical condition of a unit.
const (
	ConditionNew         = "new"
	ConditionGood        = "good"
	ConditionFair        = "fair"
	ConditionNeedsRepair = "needs-repair"
	ConditionRetired     = "retired"
)

// Lifecycle status of a unit.
const (
	StatusAvailable   = "available"
	StatusCheckedOut  = "checked-out"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

var ValidConditions = []string{ConditionNew, ConditionGood, ConditionFair, ConditionNeedsRepair, ConditionRetired}
var ValidItemStatuses = []string{StatusAvailable, StatusCheckedOut, StatusMaintenance, StatusRetired}

// GearItem is one physical unit of equipment.
type GearItem struct {
	ID           string            `gorm:"type:uuid;primaryKey" json:"id"`
	GearType     string            `gorm:"size:120;not null;index" json:"gearType"`
	Brand        string            `gorm:"size:120;not null" json:"brand"`
	Model        string            `gorm:"size:120" json:"model"`
	Size         string            `gorm:"size:40" json:"size"`
	Condition    string            `gorm:"size:20;not null;default:'good'" json:"condition"`
	Status       string            `gorm:"size:20;not null;default:'available';index" json:"status"`
	PurchaseDate *time.Time        `json:"purchaseDate,omitempty"`
	PurchaseCost *float64          `json:"purchaseCost,omitempty"`
	Description  string            `gorm:"size:500" json:"description"`
	Notes        string            `gorm:"size:500" json:"notes"`
	Barcode      string            `gorm:"size:120;index" json:"barcode,omitempty"` // unique by convention only
	Location     string            `gorm:"size:120" json:"location"`
	PhotoCount   int               `gorm:"not null;default:0" json:"photoCount"`
	Tags         []string          `gorm:"serializer:json" json:"tags"`
	CustomFields map[string]string `gorm:"serializer:json" json:"customFields"`

	CurrentBorrower  *string    `gorm:"type:uuid;index" json:"currentBorrower,omitempty"`
	LastCheckoutDate *time.Time `json:"lastCheckoutDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `gorm:"size:120" json:"createdBy,omitempty"`
}

func (GearItem) TableName() string { return GearItemTable }

func (g *GearItem) Validate() []string {
	var errs []string
	if isBlank(g.GearType) {
		errs = append(errs, "Gear type is required")
	}
	if isBlank(g.Brand) {
		errs = append(errs, "Brand is required")
	}
	if !contains(ValidConditions, g.Condition) {
		errs = append(errs, "Condition must be one of: "+joinList(ValidConditions))
	}
	if !contains(ValidItemStatuses, g.Status) {
		errs = append(errs, "Status must be one of: "+joinList(ValidItemStatuses))
	}
	if g.PurchaseCost != nil && *g.PurchaseCost < 0 {
		errs = append(errs, "Purchase cost must be a positive number")
	}
	return errs
}

func (g *GearItem) IsAvailable() bool  { return g.Status == StatusAvailable }
func (g *GearItem) IsCheckedOut() bool { return g.Status == StatusCheckedOut }

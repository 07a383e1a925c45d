package models

import "time"

const GearTypeTable = "wdi_gear_types"

// Gear type categories and size schemes.
const (
	CategoryFootwear    = "footwear"
	CategoryProtective  = "protective"
	CategorySticks      = "sticks"
	CategoryAccessories = "accessories"
	CategoryClothing    = "clothing"

	SizeTypeNumeric = "numeric"
	SizeTypeAlpha   = "alpha"
	SizeTypeCustom  = "custom"
	SizeTypeNone    = "none"
)

var ValidCategories = []string{CategoryFootwear, CategoryProtective, CategorySticks, CategoryAccessories, CategoryClothing}
var ValidSizeTypes = []string{SizeTypeNumeric, SizeTypeAlpha, SizeTypeCustom, SizeTypeNone}

// GearType is a catalog entry describing an equipment category.
type GearType struct {
	ID           string   `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string   `gorm:"size:200;not null" json:"name"`
	Category     string   `gorm:"size:40;not null;default:'accessories';index" json:"category"`
	Description  string   `gorm:"size:500" json:"description"`
	RequiresSize bool     `gorm:"not null;default:true" json:"requiresSize"`
	SizeType     string   `gorm:"size:20;not null;default:'numeric'" json:"sizeType"`
	SizeOptions  []string `gorm:"serializer:json" json:"sizeOptions"`
	Icon         string   `gorm:"size:16" json:"icon"`
	SortOrder    int      `gorm:"not null;default:0;index" json:"sortOrder"`
	IsActive     bool     `gorm:"not null;default:true;index" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (GearType) TableName() string { return GearTypeTable }

// Validate reports every violated rule, not just the first.
func (t *GearType) Validate() []string {
	var errs []string
	if isBlank(t.Name) {
		errs = append(errs, "Name is required")
	}
	if !contains(ValidCategories, t.Category) {
		errs = append(errs, "Category must be one of: "+joinList(ValidCategories))
	}
	if !contains(ValidSizeTypes, t.SizeType) {
		errs = append(errs, "Size type must be one of: "+joinList(ValidSizeTypes))
	}
	if t.RequiresSize && len(t.SizeOptions) == 0 {
		errs = append(errs, "Size options are required when sizes are required")
	}
	return errs
}

// DefaultSizeOptions suggests a size list for a size scheme.
func DefaultSizeOptions(sizeType string) []string {
	switch sizeType {
	case SizeTypeAlpha:
		return []string{"XS", "S", "M", "L", "XL", "XXL"}
	case SizeTypeNumeric:
		return []string{"6", "7", "8", "9", "10", "11", "12"}
	default:
		return nil
	}
}

// Package data holds the default gear catalog and a small demo data
// set for fallback-mode runs.
package data

import (
	"context"

	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

// DefaultGearTypes is the pre-configured hockey catalog. Entries keep
// well-known ids so sample gear can reference them by name.
func DefaultGearTypes() []models.GearType {
	return []models.GearType{
		{
			ID: "skates", Name: "Skates", Category: models.CategoryFootwear, Icon: "⛸️",
			Description: "Ice hockey skates", RequiresSize: true, SizeType: models.SizeTypeNumeric,
			SizeOptions: []string{"6.0", "6.5", "7.0", "7.5", "8.0", "8.5", "9.0", "9.5", "10.0", "10.5", "11.0", "11.5", "12.0"},
			SortOrder:   1, IsActive: true,
		},
		{
			ID: "helmet", Name: "Helmet", Category: models.CategoryProtective, Icon: "🪖",
			Description: "Hockey helmet with cage or visor", RequiresSize: true, SizeType: models.SizeTypeAlpha,
			SizeOptions: []string{"XS", "S", "M", "L", "XL"},
			SortOrder:   2, IsActive: true,
		},
		{
			ID: "shoulder-pads", Name: "Shoulder Pads", Category: models.CategoryProtective, Icon: "🦺",
			Description: "Upper body protective gear", RequiresSize: true, SizeType: models.SizeTypeAlpha,
			SizeOptions: []string{"XS", "S", "M", "L", "XL", "XXL"},
			SortOrder:   3, IsActive: true,
		},
		{
			ID: "elbow-pads", Name: "Elbow Pads", Category: models.CategoryProtective, Icon: "🛡️",
			Description: "Elbow protection", RequiresSize: true, SizeType: models.SizeTypeAlpha,
			SizeOptions: []string{"S", "M", "L", "XL"},
			SortOrder:   4, IsActive: true,
		},
		{
			ID: "gloves", Name: "Hockey Gloves", Category: models.CategoryProtective, Icon: "🧤",
			Description: "Protective gloves", RequiresSize: true, SizeType: models.SizeTypeNumeric,
			SizeOptions: []string{`12"`, `13"`, `14"`, `15"`},
			SortOrder:   5, IsActive: true,
		},
		{
			ID: "shin-guards", Name: "Shin Guards", Category: models.CategoryProtective, Icon: "🦿",
			Description: "Lower leg protection", RequiresSize: true, SizeType: models.SizeTypeNumeric,
			SizeOptions: []string{`12"`, `13"`, `14"`, `15"`, `16"`, `17"`},
			SortOrder:   6, IsActive: true,
		},
		{
			ID: "stick", Name: "Hockey Stick", Category: models.CategorySticks, Icon: "🏒",
			Description: "Composite or wood stick", RequiresSize: true, SizeType: models.SizeTypeCustom,
			SizeOptions: []string{"Youth", "Junior", "Intermediate", "Senior"},
			SortOrder:   7, IsActive: true,
		},
		{
			ID: "practice-jersey", Name: "Practice Jersey", Category: models.CategoryClothing, Icon: "👕",
			Description: "Team practice jersey", RequiresSize: true, SizeType: models.SizeTypeAlpha,
			SizeOptions: []string{"S", "M", "L", "XL", "XXL"},
			SortOrder:   8, IsActive: true,
		},
		{
			ID: "gear-bag", Name: "Gear Bag", Category: models.CategoryAccessories, Icon: "🎒",
			Description: "Equipment carry bag", RequiresSize: false, SizeType: models.SizeTypeNone,
			SortOrder:   9, IsActive: true,
		},
	}
}

// SampleBorrowers is a small demo roster.
func SampleBorrowers() []models.Borrower {
	common := func(first, last, email, phone string) models.Borrower {
		return models.Borrower{
			FirstName: first, LastName: last, Email: email, Phone: phone,
			Status: models.BorrowerActive, MaxItems: 5,
			PreferredContact: models.ContactEmail, Notifications: true,
		}
	}
	return []models.Borrower{
		common("Alex", "Thompson", "alex.thompson@icezoo.com", "555-0101"),
		common("Jordan", "Martinez", "jordan.martinez@icezoo.com", "555-0102"),
		common("Casey", "Williams", "casey.williams@icezoo.com", "555-0103"),
		common("Morgan", "Chen", "morgan.chen@icezoo.com", "555-0104"),
		common("Riley", "O'Brien", "riley.obrien@icezoo.com", "555-0105"),
		common("Sam", "Kowalski", "sam.kowalski@icezoo.com", "555-0106"),
	}
}

// SampleGearItems is a small demo inventory referencing the default
// catalog ids.
func SampleGearItems() []models.GearItem {
	item := func(gearType, brand, model, size, condition string) models.GearItem {
		return models.GearItem{
			GearType: gearType, Brand: brand, Model: model, Size: size,
			Condition: condition, Status: models.StatusAvailable,
			Location: "Equipment Room A",
		}
	}
	return []models.GearItem{
		item("skates", "Bauer", "Vapor X3", "9.0", models.ConditionGood),
		item("skates", "CCM", "Tacks AS-580", "10.5", models.ConditionNew),
		item("helmet", "Bauer", "Re-Akt 85", "M", models.ConditionGood),
		item("helmet", "CCM", "Tacks 720", "L", models.ConditionFair),
		item("shoulder-pads", "Sherwood", "Rekker M80", "L", models.ConditionGood),
		item("gloves", "Warrior", "Covert QR6", `14"`, models.ConditionGood),
		item("shin-guards", "Bauer", "Supreme M5", `15"`, models.ConditionNew),
		item("stick", "CCM", "Jetspeed FT6", "Senior", models.ConditionGood),
		item("practice-jersey", "Team Issue", "Home White", "XL", models.ConditionFair),
		item("gear-bag", "Grit", "HTFX Tower", "", models.ConditionGood),
	}
}

// Seed fills an empty store with the demo data set. Stores that
// already hold catalog entries are left untouched.
func Seed(ctx context.Context, st store.Store) error {
	existing, err := st.GearTypes().GetAll(ctx, store.GearTypeFilter{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, t := range DefaultGearTypes() {
		t := t
		if _, err := st.GearTypes().Create(ctx, &t); err != nil {
			return err
		}
	}
	for _, b := range SampleBorrowers() {
		b := b
		if _, err := st.Borrowers().Create(ctx, &b); err != nil {
			return err
		}
	}
	for _, g := range SampleGearItems() {
		g := g
		if _, err := st.GearItems().Create(ctx, &g); err != nil {
			return err
		}
	}
	return nil
}

package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

func TestColName(t *testing.T) {
	cases := map[string]string{
		"status":           "status",
		"isActive":         "is_active",
		"currentBorrower":  "current_borrower",
		"lastCheckoutDate": "last_checkout_date",
		"currentItemCount": "current_item_count",
		"photoUrl":         "photo_url",
		"dueDate":          "due_date",
	}
	for in, want := range cases {
		assert.Equal(t, want, colName(in), in)
	}
}

func TestColumnsKeepsValues(t *testing.T) {
	got := columns(store.Fields{"isActive": false, "sortOrder": 3, "currentBorrower": nil})
	assert.Equal(t, map[string]any{
		"is_active":        false,
		"sort_order":       3,
		"current_borrower": nil,
	}, got)
}

func TestOpenLoanConflictMapping(t *testing.T) {
	assert.ErrorIs(t, openLoanConflict(gorm.ErrDuplicatedKey), apperr.ErrNotAvailable)
	assert.ErrorIs(t, openLoanConflict(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), apperr.ErrNotAvailable)

	other := errors.New("connection reset")
	assert.Equal(t, other, openLoanConflict(other), "non-conflict errors pass through")
	assert.NoError(t, openLoanConflict(nil))
}

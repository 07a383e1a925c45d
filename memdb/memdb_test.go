package memdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

func TestCreateRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.GearItems().Create(ctx, &models.GearItem{
		GearType: "skates", Brand: "Bauer", Model: "Vapor X3",
		Condition: models.ConditionGood, Status: models.StatusAvailable,
		Tags: []string{"loaner"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.GearItems().GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bauer", got.Brand)
	assert.Equal(t, []string{"loaner"}, got.Tags)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestGetByIDAbsentIsNilNil(t *testing.T) {
	s := New()
	got, err := s.GearItems().GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMergesFields(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, err := s.Borrowers().Create(ctx, &models.Borrower{
		FirstName: "Alex", LastName: "Thompson", Status: models.BorrowerActive, MaxItems: 5,
	})
	require.NoError(t, err)

	err = s.Borrowers().Update(ctx, id, store.Fields{"currentItemCount": 2, "notes": "two sticks out"})
	require.NoError(t, err)

	b, err := s.Borrowers().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, b.CurrentItemCount)
	assert.Equal(t, "two sticks out", b.Notes)
	assert.Equal(t, "Alex", b.FirstName, "untouched fields survive the merge")
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	s := New()
	err := s.Borrowers().Update(context.Background(), "missing", store.Fields{"notes": "x"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateCanClearPointerField(t *testing.T) {
	s := New()
	ctx := context.Background()
	borrower := "b-1"
	id, err := s.GearItems().Create(ctx, &models.GearItem{
		GearType: "helmet", Brand: "CCM", Condition: models.ConditionGood,
		Status: models.StatusCheckedOut, CurrentBorrower: &borrower,
	})
	require.NoError(t, err)

	err = s.GearItems().Update(ctx, id, store.Fields{"currentBorrower": nil, "status": models.StatusAvailable})
	require.NoError(t, err)

	g, err := s.GearItems().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, g.CurrentBorrower)
	assert.Equal(t, models.StatusAvailable, g.Status)
}

func TestSoftDeletePerEntity(t *testing.T) {
	s := New()
	ctx := context.Background()

	tid, err := s.GearTypes().Create(ctx, &models.GearType{Name: "Skates", Category: models.CategoryFootwear, SizeType: models.SizeTypeNumeric, IsActive: true})
	require.NoError(t, err)
	require.NoError(t, s.GearTypes().Delete(ctx, tid))
	gt, _ := s.GearTypes().GetByID(ctx, tid)
	assert.False(t, gt.IsActive, "gear type soft delete flips isActive")

	gid, err := s.GearItems().Create(ctx, &models.GearItem{GearType: "skates", Brand: "Bauer", Condition: models.ConditionGood, Status: models.StatusAvailable})
	require.NoError(t, err)
	require.NoError(t, s.GearItems().Delete(ctx, gid))
	g, _ := s.GearItems().GetByID(ctx, gid)
	assert.Equal(t, models.StatusRetired, g.Status)

	bid, err := s.Borrowers().Create(ctx, &models.Borrower{FirstName: "A", LastName: "B", Status: models.BorrowerActive, MaxItems: 1})
	require.NoError(t, err)
	require.NoError(t, s.Borrowers().Delete(ctx, bid))
	b, _ := s.Borrowers().GetByID(ctx, bid)
	assert.Equal(t, models.BorrowerInactive, b.Status)
}

func TestHardDeleteRemovesRow(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, err := s.GearItems().Create(ctx, &models.GearItem{GearType: "skates", Brand: "Bauer", Condition: models.ConditionGood, Status: models.StatusAvailable})
	require.NoError(t, err)
	require.NoError(t, s.GearItems().HardDelete(ctx, id))

	got, err := s.GearItems().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.True(t, errors.Is(s.GearItems().HardDelete(ctx, id), apperr.ErrNotFound))
}

func TestGetAllFilterSortLimit(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, gt := range []models.GearType{
		{Name: "Gear Bag", Category: models.CategoryAccessories, SizeType: models.SizeTypeNone, SortOrder: 9, IsActive: true},
		{Name: "Skates", Category: models.CategoryFootwear, SizeType: models.SizeTypeNumeric, SortOrder: 1, IsActive: true},
		{Name: "Helmet", Category: models.CategoryProtective, SizeType: models.SizeTypeAlpha, SortOrder: 2, IsActive: false},
	} {
		gt := gt
		_, err := s.GearTypes().Create(ctx, &gt)
		require.NoError(t, err)
	}

	all, err := s.GearTypes().GetAll(ctx, store.GearTypeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Skates", all[0].Name, "sorted by sortOrder")

	active, err := s.GearTypes().GetAll(ctx, store.GearTypeFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	capped, err := s.GearTypes().GetAll(ctx, store.GearTypeFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, "Skates", capped[0].Name)
}

func TestTransactionFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()
	earlier := now.Add(-time.Hour)
	overdue := true

	_, err := s.Transactions().Create(ctx, &models.Transaction{
		GearItemID: "g1", BorrowerID: "b1", Status: models.TxActive, CheckoutDate: &earlier,
	})
	require.NoError(t, err)
	_, err = s.Transactions().Create(ctx, &models.Transaction{
		GearItemID: "g2", BorrowerID: "b1", Status: models.TxOverdue, IsOverdue: true, CheckoutDate: &now,
	})
	require.NoError(t, err)

	byBorrower, err := s.Transactions().GetAll(ctx, store.TransactionFilter{BorrowerID: "b1"})
	require.NoError(t, err)
	require.Len(t, byBorrower, 2)
	assert.Equal(t, "g2", byBorrower[0].GearItemID, "newest checkout first")

	onlyOverdue, err := s.Transactions().GetAll(ctx, store.TransactionFilter{IsOverdue: &overdue})
	require.NoError(t, err)
	require.Len(t, onlyOverdue, 1)
	assert.Equal(t, "g2", onlyOverdue[0].GearItemID)
}

func TestMarkOverdueIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()
	id, err := s.Transactions().Create(ctx, &models.Transaction{
		GearItemID: "g1", BorrowerID: "b1", Status: models.TxActive, CheckoutDate: &now,
	})
	require.NoError(t, err)

	require.NoError(t, s.Transactions().MarkOverdue(ctx, []string{id}))
	tx, _ := s.Transactions().GetByID(ctx, id)
	assert.Equal(t, models.TxOverdue, tx.Status)
	assert.True(t, tx.IsOverdue)

	require.NoError(t, s.Transactions().MarkOverdue(ctx, []string{id, "ghost"}))
	tx, _ = s.Transactions().GetByID(ctx, id)
	assert.Equal(t, models.TxOverdue, tx.Status)
}

func TestSubscribeAllIsOneShotInMemoryMode(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.GearItems().Create(ctx, &models.GearItem{GearType: "skates", Brand: "Bauer", Condition: models.ConditionGood, Status: models.StatusAvailable})
	require.NoError(t, err)

	calls := 0
	var seen []models.GearItem
	unsub, err := s.GearItems().SubscribeAll(store.GearItemFilter{}, func(items []models.GearItem) {
		calls++
		seen = items
	})
	require.NoError(t, err)
	require.NotNil(t, unsub)
	assert.Equal(t, 1, calls, "immediate snapshot")
	assert.Len(t, seen, 1)

	_, err = s.GearItems().Create(ctx, &models.GearItem{GearType: "helmet", Brand: "CCM", Condition: models.ConditionGood, Status: models.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "no further deliveries without a live backend")
	unsub()
}

func TestGetByIDForUpdateMatchesPlainRead(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, err := s.GearItems().Create(ctx, &models.GearItem{GearType: "skates", Brand: "Bauer", Condition: models.ConditionGood, Status: models.StatusAvailable})
	require.NoError(t, err)

	got, err := s.GearItems().GetByIDForUpdate(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bauer", got.Brand)

	missing, err := s.Transactions().GetByIDForUpdate(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubscribeByIDIsOneShotInMemoryMode(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, err := s.GearItems().Create(ctx, &models.GearItem{GearType: "skates", Brand: "Bauer", Condition: models.ConditionGood, Status: models.StatusAvailable})
	require.NoError(t, err)

	var seen *models.GearItem
	unsub, err := s.GearItems().SubscribeByID(id, func(g *models.GearItem) { seen = g })
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "Bauer", seen.Brand)
	unsub()

	called := false
	unsub, err = s.GearItems().SubscribeByID("ghost", func(g *models.GearItem) {
		called = true
		seen = g
	})
	require.NoError(t, err)
	assert.True(t, called, "unknown id still fires once, with nil")
	assert.Nil(t, seen)
	unsub()
}

func TestArchiveStore(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()
	err := s.Transactions().ArchivePut(ctx, &models.TransactionArchive{
		Transaction: models.Transaction{ID: "t1", GearItemID: "g1", BorrowerID: "b1", Status: models.TxReturned},
		ArchivedAt:  now,
	})
	require.NoError(t, err)

	as, err := s.Transactions().ArchiveGetAll(ctx, 0)
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, "t1", as[0].ID)
}

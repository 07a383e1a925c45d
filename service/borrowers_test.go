package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/memdb"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

func newBorrowerSvc(t *testing.T) (*BorrowerService, string) {
	t.Helper()
	svc := NewBorrowerService(memdb.New())
	id, err := svc.Create(context.Background(), &models.Borrower{
		FirstName: "Jamie", LastName: "Ortiz", Email: "jamie@example.com",
		Status: models.BorrowerActive, MaxItems: 3,
	}, "admin")
	require.NoError(t, err)
	return svc, id
}

func TestBorrowerCounterMutators(t *testing.T) {
	svc, id := newBorrowerSvc(t)
	ctx := context.Background()

	require.NoError(t, svc.IncrementItemCount(ctx, id))
	require.NoError(t, svc.IncrementItemCount(ctx, id))
	b, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, b.CurrentItemCount)
	assert.Equal(t, 2, b.TotalBorrows)

	require.NoError(t, svc.DecrementItemCount(ctx, id))
	require.NoError(t, svc.DecrementItemCount(ctx, id))
	require.NoError(t, svc.DecrementItemCount(ctx, id))
	b, err = svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, b.CurrentItemCount, "item count never goes negative")
	assert.Equal(t, 2, b.TotalBorrows)
}

func TestBorrowerOverdueCounterFloorsAtZero(t *testing.T) {
	svc, id := newBorrowerSvc(t)
	ctx := context.Background()

	require.NoError(t, svc.DecrementOverdueCount(ctx, id))
	b, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, b.OverdueCount)

	require.NoError(t, svc.IncrementOverdueCount(ctx, id))
	b, err = svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.HasOverdueItems())
}

func TestBorrowerCounterMutatorsUnknownID(t *testing.T) {
	svc, _ := newBorrowerSvc(t)
	err := svc.IncrementItemCount(context.Background(), "ghost")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestBorrowerSearch(t *testing.T) {
	svc, _ := newBorrowerSvc(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, &models.Borrower{
		FirstName: "Sam", LastName: "Nakamura", Phone: "555-0142",
		Status: models.BorrowerActive, MaxItems: 5,
	}, "")
	require.NoError(t, err)

	hits, err := svc.Search(ctx, "nakamura")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Sam", hits[0].FirstName)

	hits, err = svc.Search(ctx, "0142")
	require.NoError(t, err)
	assert.Len(t, hits, 1, "phone numbers are searchable")
}

func TestBorrowerStatistics(t *testing.T) {
	svc, id := newBorrowerSvc(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, &models.Borrower{
		FirstName: "Pat", LastName: "Reyes", Status: models.BorrowerSuspended, MaxItems: 5,
	}, "")
	require.NoError(t, err)
	require.NoError(t, svc.Update(ctx, id, store.Fields{"currentItemCount": 1, "overdueCount": 1}))

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Suspended)
	assert.Equal(t, 1, stats.WithItems)
	assert.Equal(t, 1, stats.WithOverdue)
}

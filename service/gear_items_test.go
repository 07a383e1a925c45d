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

func TestGearItemCreateSetsAuditFields(t *testing.T) {
	svc := NewGearItemService(memdb.New())
	ctx := context.Background()

	id, err := svc.Create(ctx, &models.GearItem{
		GearType: "skates", Brand: "Bauer", Condition: models.ConditionNew, Status: models.StatusAvailable,
	}, "admin")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.CreatedBy)
}

func TestGearItemSearchMatchesTags(t *testing.T) {
	svc := NewGearItemService(memdb.New())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.GearItem{
		GearType: "stick", Brand: "Warrior", Condition: models.ConditionGood,
		Status: models.StatusAvailable, Tags: []string{"left-handed", "senior"},
	}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.GearItem{
		GearType: "stick", Brand: "CCM", Condition: models.ConditionGood, Status: models.StatusAvailable,
	}, "")
	require.NoError(t, err)

	hits, err := svc.Search(ctx, "left-hand")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Warrior", hits[0].Brand)
}

func TestSendToMaintenance(t *testing.T) {
	st := memdb.New()
	svc := NewGearItemService(st)
	ctx := context.Background()

	id, err := svc.Create(ctx, &models.GearItem{
		GearType: "helmet", Brand: "CCM", Condition: models.ConditionFair, Status: models.StatusAvailable,
	}, "")
	require.NoError(t, err)

	require.NoError(t, svc.SendToMaintenance(ctx, id, "strap fraying"))
	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMaintenance, got.Status)
	assert.Equal(t, "strap fraying", got.Notes)

	assert.True(t, errors.Is(svc.SendToMaintenance(ctx, "ghost", ""), apperr.ErrNotFound))

	require.NoError(t, st.GearItems().Update(ctx, id, store.Fields{"status": models.StatusCheckedOut}))
	assert.True(t, errors.Is(svc.SendToMaintenance(ctx, id, ""), apperr.ErrInvalidState))
}

func TestGenerateBarcode(t *testing.T) {
	svc := NewGearItemService(memdb.New())

	bc := svc.GenerateBarcode("")
	assert.Regexp(t, `^WDI-[0-9A-Z]+-[0-9A-Z]{4}$`, bc)

	bc = svc.GenerateBarcode("TEAM")
	assert.Regexp(t, `^TEAM-[0-9A-Z]+-[0-9A-Z]{4}$`, bc)
}

func TestGearItemStatistics(t *testing.T) {
	svc := NewGearItemService(memdb.New())
	ctx := context.Background()
	for _, it := range []models.GearItem{
		{GearType: "skates", Brand: "Bauer", Condition: models.ConditionGood, Status: models.StatusAvailable},
		{GearType: "skates", Brand: "CCM", Condition: models.ConditionGood, Status: models.StatusCheckedOut},
		{GearType: "helmet", Brand: "Bauer", Condition: models.ConditionFair, Status: models.StatusMaintenance},
	} {
		it := it
		_, err := svc.Create(ctx, &it, "")
		require.NoError(t, err)
	}

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Available)
	assert.Equal(t, 1, stats.CheckedOut)
	assert.Equal(t, 1, stats.Maintenance)
	assert.Equal(t, 2, stats.ByType["skates"])
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/memdb"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

func seedCatalog(t *testing.T) (*GearTypeService, map[string]string) {
	t.Helper()
	svc := NewGearTypeService(memdb.New())
	ctx := context.Background()
	ids := map[string]string{}
	for _, gt := range []models.GearType{
		{Name: "Skates", Category: models.CategoryFootwear, SizeType: models.SizeTypeNumeric, SizeOptions: []string{"8", "9"}, RequiresSize: true, SortOrder: 1, IsActive: true},
		{Name: "Helmet", Category: models.CategoryProtective, SizeType: models.SizeTypeAlpha, SizeOptions: []string{"S", "M", "L"}, RequiresSize: true, SortOrder: 2, IsActive: true},
		{Name: "Gear Bag", Category: models.CategoryAccessories, SizeType: models.SizeTypeNone, SortOrder: 3, IsActive: true},
	} {
		gt := gt
		id, err := svc.Create(ctx, &gt)
		require.NoError(t, err)
		ids[gt.Name] = id
	}
	return svc, ids
}

func TestGearTypeCreateValidates(t *testing.T) {
	svc := NewGearTypeService(memdb.New())
	_, err := svc.Create(context.Background(), &models.GearType{
		Name: "", Category: "bogus", SizeType: models.SizeTypeNumeric, RequiresSize: true,
	})
	verr, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Len(t, verr.Rules, 3, "name, category and size options all reported together")
}

func TestGearTypeCreateWithIDKeepsID(t *testing.T) {
	svc := NewGearTypeService(memdb.New())
	ctx := context.Background()
	err := svc.CreateWithID(ctx, "skates", &models.GearType{
		Name: "Skates", Category: models.CategoryFootwear, SizeType: models.SizeTypeNone, IsActive: true,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "skates")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Skates", got.Name)
}

func TestGearTypeGroupedByCategory(t *testing.T) {
	svc, ids := seedCatalog(t)
	ctx := context.Background()
	require.NoError(t, svc.Delete(ctx, ids["Gear Bag"]))

	grouped, err := svc.GetGroupedByCategory(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped[models.CategoryFootwear], 1)
	assert.Len(t, grouped[models.CategoryProtective], 1)
	assert.NotContains(t, grouped, models.CategoryAccessories, "inactive entries drop out of the grouping")
}

func TestGearTypeReorder(t *testing.T) {
	svc, ids := seedCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.Reorder(ctx, []string{ids["Gear Bag"], ids["Skates"], ids["Helmet"]}))

	all, err := svc.GetAll(ctx, store.GearTypeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Gear Bag", all[0].Name)
	assert.Equal(t, "Skates", all[1].Name)
	assert.Equal(t, "Helmet", all[2].Name)
}

func TestGearTypeSearch(t *testing.T) {
	svc, _ := seedCatalog(t)
	hits, err := svc.Search(context.Background(), "protect")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Helmet", hits[0].Name)
}

func TestGearTypeStatistics(t *testing.T) {
	svc, ids := seedCatalog(t)
	ctx := context.Background()
	require.NoError(t, svc.Delete(ctx, ids["Helmet"]))

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.ByCategory[models.CategoryProtective], "soft-deleted entries still counted by category")
}

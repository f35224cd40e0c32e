package inventory

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
	"github.com/de-tools/asset-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: store}
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestInventoryStore_Assets(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("round-trips an asset with optional fields set", func(t *testing.T) {
		warranty := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		asset := domain.Asset{
			ID:              "a1",
			Name:            "mbp-01",
			Tag:             "AT-0001",
			Category:        "Laptop",
			Status:          "deployed",
			Serial:          "C02XY",
			AssignedTo:      strPtr("u1"),
			Location:        strPtr("Berlin"),
			WarrantyExpires: timePtr(warranty),
		}
		require.NoError(t, f.store.AddAsset(ctx, asset))

		assets, err := f.store.GetAssets(ctx)
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "mbp-01", assets[0].Name)
		assert.Equal(t, "AT-0001", assets[0].Tag)
		require.NotNil(t, assets[0].AssignedTo)
		assert.Equal(t, "u1", *assets[0].AssignedTo)
		require.NotNil(t, assets[0].WarrantyExpires)
		assert.True(t, warranty.Equal(*assets[0].WarrantyExpires))
	})

	t.Run("nullable columns come back nil", func(t *testing.T) {
		require.NoError(t, f.store.AddAsset(ctx, domain.Asset{ID: "a2", Name: "bare", Status: "pending"}))

		assets, err := f.store.GetAssets(ctx)
		require.NoError(t, err)
		require.Len(t, assets, 2)
		// Ordered by name: "bare" before "mbp-01".
		assert.Nil(t, assets[0].AssignedTo)
		assert.Nil(t, assets[0].WarrantyExpires)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		err := f.store.AddAsset(ctx, domain.Asset{ID: "a1", Name: "dup", Status: "pending"})
		assert.Error(t, err)
	})
}

func TestInventoryStore_Licenses(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("seat counts survive the round trip, including overuse", func(t *testing.T) {
		license := domain.License{
			ID:             "l1",
			Name:           "Office365",
			Manufacturer:   "Microsoft",
			Seats:          100,
			AvailableSeats: -5,
		}
		require.NoError(t, f.store.AddLicense(ctx, license))

		licenses, err := f.store.GetLicenses(ctx)
		require.NoError(t, err)
		require.Len(t, licenses, 1)
		assert.Equal(t, 100, licenses[0].Seats)
		assert.Equal(t, -5, licenses[0].AvailableSeats)
		assert.Equal(t, 105, licenses[0].UsedSeats())
	})

	t.Run("empty table yields an empty slice", func(t *testing.T) {
		var count int
		require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM accessories").Scan(&count))
		assert.Equal(t, 0, count)

		accessories, err := f.store.GetAccessories(ctx)
		require.NoError(t, err)
		assert.NotNil(t, accessories)
		assert.Empty(t, accessories)
	})
}

func TestInventoryStore_ConsumablesAndComponents(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.AddConsumable(ctx, domain.Consumable{
		ID: "c1", Name: "Toner", Category: "Printer", Quantity: 2, MinQuantity: 5,
	}))
	require.NoError(t, f.store.AddComponent(ctx, domain.Component{
		ID: "p1", Name: "RAM 16GB", Category: "Memory", Quantity: 12, Serial: "SN-1",
	}))

	consumables, err := f.store.GetConsumables(ctx)
	require.NoError(t, err)
	require.Len(t, consumables, 1)
	assert.Equal(t, 5, consumables[0].MinQuantity)

	components, err := f.store.GetComponents(ctx)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, "SN-1", components[0].Serial)
}

func TestInventoryStore_UsersAndRequestables(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.AddUser(ctx, domain.User{
		ID: "u1", Name: "Dana", Email: "dana@example.com", Department: strPtr("IT"), AssetCount: 3,
	}))
	require.NoError(t, f.store.AddRequestableItem(ctx, domain.RequestableItem{
		ID: "r1", Name: "Standing Desk", Type: "asset", Category: "Furniture", Status: "requestable",
	}))

	users, err := f.store.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NotNil(t, users[0].Department)
	assert.Equal(t, "IT", *users[0].Department)
	assert.Equal(t, 3, users[0].AssetCount)

	items, err := f.store.GetRequestableItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "asset", items[0].Type)
}

func TestInventoryStore_Kits(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("reference id lists round-trip through JSON columns", func(t *testing.T) {
		kit := domain.PredefinedKit{
			ID:          "k1",
			Name:        "Starter Kit",
			Category:    "Onboarding",
			Description: "laptop plus basics",
			AssetIDs:    []string{"a1", "a2"},
			LicenseIDs:  []string{"l1"},
		}
		require.NoError(t, f.store.AddKit(ctx, kit))

		kits, err := f.store.GetKits(ctx)
		require.NoError(t, err)
		require.Len(t, kits, 1)
		assert.Equal(t, []string{"a1", "a2"}, kits[0].AssetIDs)
		assert.Equal(t, []string{"l1"}, kits[0].LicenseIDs)
		assert.Empty(t, kits[0].AccessoryIDs)
		assert.Empty(t, kits[0].ConsumableIDs)
	})

	t.Run("dangling references are stored as-is", func(t *testing.T) {
		// Resolution happens at report time, not on write.
		kit := domain.PredefinedKit{
			ID:       "k2",
			Name:     "Stale Kit",
			AssetIDs: []string{"ghost"},
		}
		require.NoError(t, f.store.AddKit(ctx, kit))

		kits, err := f.store.GetKits(ctx)
		require.NoError(t, err)
		require.Len(t, kits, 2)
		assert.Equal(t, []string{"ghost"}, kits[1].AssetIDs)
	})
}

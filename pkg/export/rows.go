package export

import (
	"strings"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
)

// Row generators are pure: one row per input entity, input order kept,
// missing optional fields rendered as a fixed placeholder.

func AssetRows(assets []domain.Asset) []Row {
	rows := make([]Row, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, NewRow(
			Field{"Name", a.Name},
			Field{"Asset Tag", a.Tag},
			Field{"Category", a.Category},
			Field{"Status", a.Status},
			Field{"Serial", a.Serial},
			Field{"Assigned To", orString(a.AssignedTo, "Unassigned")},
			Field{"Location", orString(a.Location, "N/A")},
			Field{"Purchase Date", orDate(a.PurchaseDate, "N/A")},
			Field{"Warranty Expires", orDate(a.WarrantyExpires, "N/A")},
		))
	}
	return rows
}

func LicenseRows(licenses []domain.License) []Row {
	rows := make([]Row, 0, len(licenses))
	for _, l := range licenses {
		rows = append(rows, NewRow(
			Field{"Name", l.Name},
			Field{"Manufacturer", l.Manufacturer},
			Field{"Category", l.Category},
			Field{"Total Seats", l.Seats},
			Field{"Available Seats", l.AvailableSeats},
			// Intentionally unclamped; inconsistent data passes through.
			Field{"Used Seats", l.UsedSeats()},
			Field{"Expiry Date", orDate(l.ExpiryDate, "N/A")},
			Field{"Purchase Date", orDate(l.PurchaseDate, "N/A")},
		))
	}
	return rows
}

func AccessoryRows(accessories []domain.Accessory) []Row {
	rows := make([]Row, 0, len(accessories))
	for _, a := range accessories {
		rows = append(rows, NewRow(
			Field{"Name", a.Name},
			Field{"Category", a.Category},
			Field{"Quantity", a.Quantity},
			Field{"Location", orString(a.Location, "N/A")},
		))
	}
	return rows
}

func ConsumableRows(consumables []domain.Consumable) []Row {
	rows := make([]Row, 0, len(consumables))
	for _, c := range consumables {
		status := "Good"
		if c.Quantity <= c.MinQuantity {
			status = "Low Stock"
		}
		rows = append(rows, NewRow(
			Field{"Name", c.Name},
			Field{"Category", c.Category},
			Field{"Quantity", c.Quantity},
			Field{"Min Quantity", c.MinQuantity},
			Field{"Status", status},
			Field{"Location", orString(c.Location, "N/A")},
		))
	}
	return rows
}

func ComponentRows(components []domain.Component) []Row {
	rows := make([]Row, 0, len(components))
	for _, c := range components {
		rows = append(rows, NewRow(
			Field{"Name", c.Name},
			Field{"Category", c.Category},
			Field{"Quantity", c.Quantity},
			Field{"Serial", c.Serial},
			Field{"Location", orString(c.Location, "N/A")},
		))
	}
	return rows
}

func UserRows(users []domain.User) []Row {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, NewRow(
			Field{"Name", u.Name},
			Field{"Email", u.Email},
			Field{"Department", orString(u.Department, "N/A")},
			Field{"Job Title", orString(u.JobTitle, "N/A")},
			Field{"Assets Count", u.AssetCount},
		))
	}
	return rows
}

func RequestableRows(items []domain.RequestableItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, NewRow(
			Field{"Name", item.Name},
			Field{"Type", item.Type},
			Field{"Category", item.Category},
			Field{"Status", item.Status},
		))
	}
	return rows
}

// KitReferences carries the collections kit ID lists resolve against.
type KitReferences struct {
	Assets      []domain.Asset
	Accessories []domain.Accessory
	Licenses    []domain.License
	Consumables []domain.Consumable
}

// KitRows resolves each kit's reference lists to names. Unresolved IDs are
// dropped from the joined name list, but count columns report the raw
// reference-list lengths, so a stale reference makes count and list
// diverge. That mismatch is part of the contract.
func KitRows(kits []domain.PredefinedKit, refs KitReferences) []Row {
	assetNames := make(map[string]string, len(refs.Assets))
	for _, a := range refs.Assets {
		assetNames[a.ID] = a.Name
	}
	accessoryNames := make(map[string]string, len(refs.Accessories))
	for _, a := range refs.Accessories {
		accessoryNames[a.ID] = a.Name
	}
	licenseNames := make(map[string]string, len(refs.Licenses))
	for _, l := range refs.Licenses {
		licenseNames[l.ID] = l.Name
	}
	consumableNames := make(map[string]string, len(refs.Consumables))
	for _, c := range refs.Consumables {
		consumableNames[c.ID] = c.Name
	}

	rows := make([]Row, 0, len(kits))
	for _, k := range kits {
		rows = append(rows, NewRow(
			Field{"Name", k.Name},
			Field{"Category", k.Category},
			Field{"Description", k.Description},
			Field{"Created Date", orDate(k.CreatedDate, "N/A")},
			Field{"Assets Count", len(k.AssetIDs)},
			Field{"Assets", resolveNames(k.AssetIDs, assetNames)},
			Field{"Accessories Count", len(k.AccessoryIDs)},
			Field{"Accessories", resolveNames(k.AccessoryIDs, accessoryNames)},
			Field{"Licenses Count", len(k.LicenseIDs)},
			Field{"Licenses", resolveNames(k.LicenseIDs, licenseNames)},
			Field{"Consumables Count", len(k.ConsumableIDs)},
			Field{"Consumables", resolveNames(k.ConsumableIDs, consumableNames)},
		))
	}
	return rows
}

func resolveNames(ids []string, names map[string]string) string {
	var resolved []string
	for _, id := range ids {
		if name, ok := names[id]; ok {
			resolved = append(resolved, name)
		}
	}
	return strings.Join(resolved, "; ")
}

package store

import (
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
)

// Records in this package mirror the storage wire convention of
// snake_case column names (seats_total, warranty_expires, ...). The Map*
// helpers translate them into domain fields.

type AssetRecord struct {
	ID              string
	Name            string
	AssetTag        string
	Category        string
	Status          string
	Serial          string
	AssignedTo      *string
	Location        *string
	PurchaseDate    *time.Time
	WarrantyExpires *time.Time
}

type LicenseRecord struct {
	ID             string
	Name           string
	Manufacturer   string
	Category       string
	SeatsTotal     int
	SeatsAvailable int
	ExpiryDate     *time.Time
	PurchaseDate   *time.Time
}

type AccessoryRecord struct {
	ID       string
	Name     string
	Category string
	Quantity int
	Location *string
}

type ConsumableRecord struct {
	ID          string
	Name        string
	Category    string
	Quantity    int
	MinQuantity int
	Location    *string
}

type ComponentRecord struct {
	ID       string
	Name     string
	Category string
	Quantity int
	Serial   string
	Location *string
}

type UserRecord struct {
	ID         string
	Name       string
	Email      string
	Department *string
	JobTitle   *string
	AssetCount int
}

type KitRecord struct {
	ID            string
	Name          string
	Category      string
	Description   string
	CreatedDate   *time.Time
	AssetIDs      []string
	AccessoryIDs  []string
	LicenseIDs    []string
	ConsumableIDs []string
}

type RequestableRecord struct {
	ID       string
	Name     string
	Type     string
	Category string
	Status   string
}

func MapAsset(r AssetRecord) domain.Asset {
	return domain.Asset{
		ID:              r.ID,
		Name:            r.Name,
		Tag:             r.AssetTag,
		Category:        r.Category,
		Status:          r.Status,
		Serial:          r.Serial,
		AssignedTo:      r.AssignedTo,
		Location:        r.Location,
		PurchaseDate:    r.PurchaseDate,
		WarrantyExpires: r.WarrantyExpires,
	}
}

func MapLicense(r LicenseRecord) domain.License {
	return domain.License{
		ID:             r.ID,
		Name:           r.Name,
		Manufacturer:   r.Manufacturer,
		Category:       r.Category,
		Seats:          r.SeatsTotal,
		AvailableSeats: r.SeatsAvailable,
		ExpiryDate:     r.ExpiryDate,
		PurchaseDate:   r.PurchaseDate,
	}
}

func MapAccessory(r AccessoryRecord) domain.Accessory {
	return domain.Accessory{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Quantity: r.Quantity,
		Location: r.Location,
	}
}

func MapConsumable(r ConsumableRecord) domain.Consumable {
	return domain.Consumable{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Quantity:    r.Quantity,
		MinQuantity: r.MinQuantity,
		Location:    r.Location,
	}
}

func MapComponent(r ComponentRecord) domain.Component {
	return domain.Component{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Quantity: r.Quantity,
		Serial:   r.Serial,
		Location: r.Location,
	}
}

func MapUser(r UserRecord) domain.User {
	return domain.User{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
		JobTitle:   r.JobTitle,
		AssetCount: r.AssetCount,
	}
}

func MapKit(r KitRecord) domain.PredefinedKit {
	return domain.PredefinedKit{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		Description:   r.Description,
		CreatedDate:   r.CreatedDate,
		AssetIDs:      r.AssetIDs,
		AccessoryIDs:  r.AccessoryIDs,
		LicenseIDs:    r.LicenseIDs,
		ConsumableIDs: r.ConsumableIDs,
	}
}

func MapRequestable(r RequestableRecord) domain.RequestableItem {
	return domain.RequestableItem{
		ID:       r.ID,
		Name:     r.Name,
		Type:     r.Type,
		Category: r.Category,
		Status:   r.Status,
	}
}

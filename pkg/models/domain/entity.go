package domain

import "time"

// Asset represents a tracked hardware asset.
type Asset struct {
	ID              string
	Name            string
	Tag             string
	Category        string
	Status          string // available, deployed, pending, archived
	Serial          string
	AssignedTo      *string
	Location        *string
	PurchaseDate    *time.Time
	WarrantyExpires *time.Time
}

// License represents a software license and its seat entitlement.
type License struct {
	ID             string
	Name           string
	Manufacturer   string
	Category       string
	Seats          int
	AvailableSeats int
	ExpiryDate     *time.Time
	PurchaseDate   *time.Time
}

// UsedSeats reports consumed seat count. Not clamped: stale data can
// make this negative, and callers are expected to surface that as-is.
func (l License) UsedSeats() int {
	return l.Seats - l.AvailableSeats
}

type Accessory struct {
	ID       string
	Name     string
	Category string
	Quantity int
	Location *string
}

type Consumable struct {
	ID          string
	Name        string
	Category    string
	Quantity    int
	MinQuantity int
	Location    *string
}

type Component struct {
	ID       string
	Name     string
	Category string
	Quantity int
	Serial   string
	Location *string
}

type User struct {
	ID         string
	Name       string
	Email      string
	Department *string
	JobTitle   *string
	AssetCount int
}

// PredefinedKit is a named bundle referencing other entities by ID for
// repeatable deployment. References are resolved lazily at report time.
type PredefinedKit struct {
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

type RequestableItem struct {
	ID       string
	Name     string
	Type     string // asset, accessory, consumable
	Category string
	Status   string
}

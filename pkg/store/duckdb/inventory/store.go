package inventory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
	"github.com/de-tools/asset-atlas/pkg/models/store"
	"github.com/de-tools/asset-atlas/pkg/store/duckdb"
)

// Store is the inventory side of the storage collaborator: typed read
// access per entity kind plus inserts used for seeding and tests.
type Store interface {
	GetAssets(ctx context.Context) ([]domain.Asset, error)
	GetLicenses(ctx context.Context) ([]domain.License, error)
	GetAccessories(ctx context.Context) ([]domain.Accessory, error)
	GetConsumables(ctx context.Context) ([]domain.Consumable, error)
	GetComponents(ctx context.Context) ([]domain.Component, error)
	GetUsers(ctx context.Context) ([]domain.User, error)
	GetKits(ctx context.Context) ([]domain.PredefinedKit, error)
	GetRequestableItems(ctx context.Context) ([]domain.RequestableItem, error)

	AddAsset(ctx context.Context, a domain.Asset) error
	AddLicense(ctx context.Context, l domain.License) error
	AddAccessory(ctx context.Context, a domain.Accessory) error
	AddConsumable(ctx context.Context, c domain.Consumable) error
	AddComponent(ctx context.Context, c domain.Component) error
	AddUser(ctx context.Context, u domain.User) error
	AddKit(ctx context.Context, k domain.PredefinedKit) error
	AddRequestableItem(ctx context.Context, item domain.RequestableItem) error
}

type inventoryStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &inventoryStore{db: db}, nil
}

func (s *inventoryStore) GetAssets(ctx context.Context) ([]domain.Asset, error) {
	query := `
		SELECT id, name, asset_tag, category, status, serial, assigned_to, location, purchase_date, warranty_expires
		FROM assets
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		var (
			r                    store.AssetRecord
			assignedTo, location sql.NullString
			purchase, warranty   sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.AssetTag, &r.Category, &r.Status, &r.Serial,
			&assignedTo, &location, &purchase, &warranty); err != nil {
			return nil, err
		}
		r.AssignedTo = nullableString(assignedTo)
		r.Location = nullableString(location)
		r.PurchaseDate = nullableTime(purchase)
		r.WarrantyExpires = nullableTime(warranty)
		assets = append(assets, store.MapAsset(r))
	}
	return assets, rows.Err()
}

func (s *inventoryStore) GetLicenses(ctx context.Context) ([]domain.License, error) {
	query := `
		SELECT id, name, manufacturer, category, seats_total, seats_available, expiry_date, purchase_date
		FROM licenses
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query licenses: %w", err)
	}
	defer rows.Close()

	licenses := make([]domain.License, 0)
	for rows.Next() {
		var (
			r                store.LicenseRecord
			expiry, purchase sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Manufacturer, &r.Category,
			&r.SeatsTotal, &r.SeatsAvailable, &expiry, &purchase); err != nil {
			return nil, err
		}
		r.ExpiryDate = nullableTime(expiry)
		r.PurchaseDate = nullableTime(purchase)
		licenses = append(licenses, store.MapLicense(r))
	}
	return licenses, rows.Err()
}

func (s *inventoryStore) GetAccessories(ctx context.Context) ([]domain.Accessory, error) {
	query := `SELECT id, name, category, quantity, location FROM accessories ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query accessories: %w", err)
	}
	defer rows.Close()

	accessories := make([]domain.Accessory, 0)
	for rows.Next() {
		var (
			r        store.AccessoryRecord
			location sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Quantity, &location); err != nil {
			return nil, err
		}
		r.Location = nullableString(location)
		accessories = append(accessories, store.MapAccessory(r))
	}
	return accessories, rows.Err()
}

func (s *inventoryStore) GetConsumables(ctx context.Context) ([]domain.Consumable, error) {
	query := `SELECT id, name, category, quantity, min_quantity, location FROM consumables ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query consumables: %w", err)
	}
	defer rows.Close()

	consumables := make([]domain.Consumable, 0)
	for rows.Next() {
		var (
			r        store.ConsumableRecord
			location sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Quantity, &r.MinQuantity, &location); err != nil {
			return nil, err
		}
		r.Location = nullableString(location)
		consumables = append(consumables, store.MapConsumable(r))
	}
	return consumables, rows.Err()
}

func (s *inventoryStore) GetComponents(ctx context.Context) ([]domain.Component, error) {
	query := `SELECT id, name, category, quantity, serial, location FROM components ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query components: %w", err)
	}
	defer rows.Close()

	components := make([]domain.Component, 0)
	for rows.Next() {
		var (
			r        store.ComponentRecord
			location sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Quantity, &r.Serial, &location); err != nil {
			return nil, err
		}
		r.Location = nullableString(location)
		components = append(components, store.MapComponent(r))
	}
	return components, rows.Err()
}

func (s *inventoryStore) GetUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, name, email, department, job_title, asset_count FROM users ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var (
			r                    store.UserRecord
			department, jobTitle sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &department, &jobTitle, &r.AssetCount); err != nil {
			return nil, err
		}
		r.Department = nullableString(department)
		r.JobTitle = nullableString(jobTitle)
		users = append(users, store.MapUser(r))
	}
	return users, rows.Err()
}

func (s *inventoryStore) GetKits(ctx context.Context) ([]domain.PredefinedKit, error) {
	query := `
		SELECT id, name, category, description, created_date, asset_ids, accessory_ids, license_ids, consumable_ids
		FROM kits
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query kits: %w", err)
	}
	defer rows.Close()

	kits := make([]domain.PredefinedKit, 0)
	for rows.Next() {
		var (
			r                         store.KitRecord
			created                   sql.NullTime
			assetRaw, accessoryRaw    []byte
			licenseRaw, consumableRaw []byte
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Description, &created,
			&assetRaw, &accessoryRaw, &licenseRaw, &consumableRaw); err != nil {
			return nil, err
		}
		r.CreatedDate = nullableTime(created)
		r.AssetIDs = decodeIDs(assetRaw)
		r.AccessoryIDs = decodeIDs(accessoryRaw)
		r.LicenseIDs = decodeIDs(licenseRaw)
		r.ConsumableIDs = decodeIDs(consumableRaw)
		kits = append(kits, store.MapKit(r))
	}
	return kits, rows.Err()
}

func (s *inventoryStore) GetRequestableItems(ctx context.Context) ([]domain.RequestableItem, error) {
	query := `SELECT id, name, type, category, status FROM requestable_items ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query requestable items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.RequestableItem, 0)
	for rows.Next() {
		var r store.RequestableRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Category, &r.Status); err != nil {
			return nil, err
		}
		items = append(items, store.MapRequestable(r))
	}
	return items, rows.Err()
}

func (s *inventoryStore) AddAsset(ctx context.Context, a domain.Asset) error {
	query := `
		INSERT INTO assets (id, name, asset_tag, category, status, serial, assigned_to, location, purchase_date, warranty_expires)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, a.ID, a.Name, a.Tag, a.Category, a.Status, a.Serial,
		a.AssignedTo, a.Location, a.PurchaseDate, a.WarrantyExpires)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (s *inventoryStore) AddLicense(ctx context.Context, l domain.License) error {
	query := `
		INSERT INTO licenses (id, name, manufacturer, category, seats_total, seats_available, expiry_date, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, l.ID, l.Name, l.Manufacturer, l.Category,
		l.Seats, l.AvailableSeats, l.ExpiryDate, l.PurchaseDate)
	if err != nil {
		return fmt.Errorf("insert license: %w", err)
	}
	return nil
}

func (s *inventoryStore) AddAccessory(ctx context.Context, a domain.Accessory) error {
	query := `INSERT INTO accessories (id, name, category, quantity, location) VALUES (?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, a.ID, a.Name, a.Category, a.Quantity, a.Location)
	if err != nil {
		return fmt.Errorf("insert accessory: %w", err)
	}
	return nil
}

func (s *inventoryStore) AddConsumable(ctx context.Context, c domain.Consumable) error {
	query := `INSERT INTO consumables (id, name, category, quantity, min_quantity, location) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, c.ID, c.Name, c.Category, c.Quantity, c.MinQuantity, c.Location)
	if err != nil {
		return fmt.Errorf("insert consumable: %w", err)
	}
	return nil
}

func (s *inventoryStore) AddComponent(ctx context.Context, c domain.Component) error {
	query := `INSERT INTO components (id, name, category, quantity, serial, location) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, c.ID, c.Name, c.Category, c.Quantity, c.Serial, c.Location)
	if err != nil {
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

func (s *inventoryStore) AddUser(ctx context.Context, u domain.User) error {
	query := `INSERT INTO users (id, name, email, department, job_title, asset_count) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, u.ID, u.Name, u.Email, u.Department, u.JobTitle, u.AssetCount)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *inventoryStore) AddKit(ctx context.Context, k domain.PredefinedKit) error {
	assetIDs, err := json.Marshal(k.AssetIDs)
	if err != nil {
		return fmt.Errorf("marshal asset ids: %w", err)
	}
	accessoryIDs, err := json.Marshal(k.AccessoryIDs)
	if err != nil {
		return fmt.Errorf("marshal accessory ids: %w", err)
	}
	licenseIDs, err := json.Marshal(k.LicenseIDs)
	if err != nil {
		return fmt.Errorf("marshal license ids: %w", err)
	}
	consumableIDs, err := json.Marshal(k.ConsumableIDs)
	if err != nil {
		return fmt.Errorf("marshal consumable ids: %w", err)
	}

	query := `
		INSERT INTO kits (id, name, category, description, created_date, asset_ids, accessory_ids, license_ids, consumable_ids)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.exec(ctx, query, k.ID, k.Name, k.Category, k.Description, k.CreatedDate,
		string(assetIDs), string(accessoryIDs), string(licenseIDs), string(consumableIDs))
	if err != nil {
		return fmt.Errorf("insert kit: %w", err)
	}
	return nil
}

func (s *inventoryStore) AddRequestableItem(ctx context.Context, item domain.RequestableItem) error {
	query := `INSERT INTO requestable_items (id, name, type, category, status) VALUES (?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, item.ID, item.Name, item.Type, item.Category, item.Status)
	if err != nil {
		return fmt.Errorf("insert requestable item: %w", err)
	}
	return nil
}

func (s *inventoryStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return s.db.ExecContext(ctx, query, args...)
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func decodeIDs(raw []byte) []string {
	ids := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &ids)
	}
	return ids
}

package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// EntityType selects which collection an export covers.
type EntityType string

const (
	EntityAssets      EntityType = "assets"
	EntityLicenses    EntityType = "licenses"
	EntityAccessories EntityType = "accessories"
	EntityConsumables EntityType = "consumables"
	EntityComponents  EntityType = "components"
	EntityUsers       EntityType = "users"
	EntityKits        EntityType = "kits"
	EntityRequestable EntityType = "requestable"

	// EntityAll fans out sequentially across every known entity type.
	EntityAll EntityType = "all"
)

// Inventory is the read side of the storage collaborator.
type Inventory interface {
	GetAssets(ctx context.Context) ([]domain.Asset, error)
	GetLicenses(ctx context.Context) ([]domain.License, error)
	GetAccessories(ctx context.Context) ([]domain.Accessory, error)
	GetConsumables(ctx context.Context) ([]domain.Consumable, error)
	GetComponents(ctx context.Context) ([]domain.Component, error)
	GetUsers(ctx context.Context) ([]domain.User, error)
	GetKits(ctx context.Context) ([]domain.PredefinedKit, error)
	GetRequestableItems(ctx context.Context) ([]domain.RequestableItem, error)
}

// File is encoded export output plus delivery metadata.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// Sink receives finished export files. Implementations deliver them as an
// HTTP download, a file on disk, or an S3 object.
type Sink interface {
	Deliver(ctx context.Context, file File) error
}

// Exporter wires entity-type selectors to row generators and formats to
// encoders, then hands encoded output to a sink.
type Exporter struct {
	inventory Inventory
	now       func() time.Time
	types     map[EntityType]func(ctx context.Context) ([]Row, error)
}

func NewExporter(inventory Inventory) *Exporter {
	e := &Exporter{
		inventory: inventory,
		now:       time.Now,
	}
	e.types = map[EntityType]func(ctx context.Context) ([]Row, error){
		EntityAssets:      e.assetRows,
		EntityLicenses:    e.licenseRows,
		EntityAccessories: e.accessoryRows,
		EntityConsumables: e.consumableRows,
		EntityComponents:  e.componentRows,
		EntityUsers:       e.userRows,
		EntityKits:        e.kitRows,
		EntityRequestable: e.requestableRows,
	}
	return e
}

// WithClock overrides the timestamp source used in filenames.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// exportOrder keeps the "all" fan-out deterministic.
var exportOrder = []EntityType{
	EntityAssets, EntityLicenses, EntityAccessories, EntityConsumables,
	EntityComponents, EntityUsers, EntityKits, EntityRequestable,
}

// Export generates, encodes, and delivers one entity collection. The
// "all" selector runs each type in turn; a sub-export failing (typically
// ErrNoData) is logged and skipped so the remaining types still run.
func (e *Exporter) Export(ctx context.Context, entity EntityType, format Format, sink Sink) error {
	logger := zerolog.Ctx(ctx)

	if entity == EntityAll {
		for _, t := range exportOrder {
			if err := e.exportOne(ctx, t, format, sink); err != nil {
				logger.Warn().
					Err(err).
					Str("entity", string(t)).
					Msg("skipping sub-export")
			}
		}
		return nil
	}

	if _, ok := e.types[entity]; !ok {
		// Unknown selector is a no-op, not an error.
		logger.Warn().Str("entity", string(entity)).Msg("unknown export entity type")
		return nil
	}
	return e.exportOne(ctx, entity, format, sink)
}

func (e *Exporter) exportOne(ctx context.Context, entity EntityType, format Format, sink Sink) error {
	generate, ok := e.types[entity]
	if !ok {
		return nil
	}

	rows, err := generate(ctx)
	if err != nil {
		return fmt.Errorf("generate %s rows: %w", entity, err)
	}

	data, err := encode(rows, format)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return err
		}
		return fmt.Errorf("encode %s as %s: %w", entity, format, err)
	}

	file := File{
		Name:      fmt.Sprintf("%s-%s.%s", entity, e.now().Format("2006-01-02"), format.Extension()),
		MediaType: format.MediaType(),
		Data:      data,
	}
	if err := sink.Deliver(ctx, file); err != nil {
		return fmt.Errorf("deliver %s: %w", file.Name, err)
	}
	return nil
}

// encode dispatches on format; anything unrecognized falls back to CSV.
func encode(rows []Row, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(rows)
	case FormatExcel:
		return EncodeExcel(rows)
	default:
		return EncodeCSV(rows)
	}
}

func (e *Exporter) assetRows(ctx context.Context) ([]Row, error) {
	assets, err := e.inventory.GetAssets(ctx)
	if err != nil {
		return nil, err
	}
	return AssetRows(assets), nil
}

func (e *Exporter) licenseRows(ctx context.Context) ([]Row, error) {
	licenses, err := e.inventory.GetLicenses(ctx)
	if err != nil {
		return nil, err
	}
	return LicenseRows(licenses), nil
}

func (e *Exporter) accessoryRows(ctx context.Context) ([]Row, error) {
	accessories, err := e.inventory.GetAccessories(ctx)
	if err != nil {
		return nil, err
	}
	return AccessoryRows(accessories), nil
}

func (e *Exporter) consumableRows(ctx context.Context) ([]Row, error) {
	consumables, err := e.inventory.GetConsumables(ctx)
	if err != nil {
		return nil, err
	}
	return ConsumableRows(consumables), nil
}

func (e *Exporter) componentRows(ctx context.Context) ([]Row, error) {
	components, err := e.inventory.GetComponents(ctx)
	if err != nil {
		return nil, err
	}
	return ComponentRows(components), nil
}

func (e *Exporter) userRows(ctx context.Context) ([]Row, error) {
	users, err := e.inventory.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	return UserRows(users), nil
}

func (e *Exporter) kitRows(ctx context.Context) ([]Row, error) {
	kits, err := e.inventory.GetKits(ctx)
	if err != nil {
		return nil, err
	}
	refs := KitReferences{}
	if refs.Assets, err = e.inventory.GetAssets(ctx); err != nil {
		return nil, err
	}
	if refs.Accessories, err = e.inventory.GetAccessories(ctx); err != nil {
		return nil, err
	}
	if refs.Licenses, err = e.inventory.GetLicenses(ctx); err != nil {
		return nil, err
	}
	if refs.Consumables, err = e.inventory.GetConsumables(ctx); err != nil {
		return nil, err
	}
	return KitRows(kits, refs), nil
}

func (e *Exporter) requestableRows(ctx context.Context) ([]Row, error) {
	items, err := e.inventory.GetRequestableItems(ctx)
	if err != nil {
		return nil, err
	}
	return RequestableRows(items), nil
}

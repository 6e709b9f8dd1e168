package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const inventoryColumns = `i.product_id, i.bin, i.location, i.source, i.on_hand, i.on_hold,
	i.version, i.created_at, i.updated_at`

func scanInventory(row scanner) (catalog.Inventory, error) {
	var inv catalog.Inventory
	err := row.Scan(&inv.ProductID, &inv.Bin, &inv.Location, &inv.Source, &inv.OnHand, &inv.OnHold,
		&inv.Version, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func (s *Store) GetInventory(ctx context.Context, productID uuid.UUID) (catalog.Inventory, error) {
	row := s.db.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventories i WHERE i.product_id = $1`, productID)
	inv, err := scanInventory(row)
	if err != nil {
		return catalog.Inventory{}, translate(err, fmt.Sprintf("inventory for product %s", productID))
	}
	return inv, nil
}

func (s *Store) ListInventories(ctx context.Context) ([]catalog.Inventory, error) {
	return collect(ctx, s.db, "list inventories", scanInventory,
		`SELECT `+inventoryColumns+` FROM inventories i ORDER BY i.created_at, i.product_id`)
}

// InsertInventory stores a first version. A row that already exists means a
// concurrent writer got there first.
func (s *Store) InsertInventory(ctx context.Context, inv catalog.Inventory) (catalog.Inventory, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO inventories AS i (product_id, bin, location, source, on_hand, on_hold, version)
		VALUES ($1, $2, $3, $4, $5, $6, 1)
		ON CONFLICT (product_id) DO NOTHING
		RETURNING `+inventoryColumns,
		inv.ProductID, inv.Bin, inv.Location, inv.Source, inv.OnHand, inv.OnHold,
	)
	out, err := scanInventory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Inventory{}, &catalog.ConflictError{Kind: "inventory", ProductID: inv.ProductID}
	}
	if err != nil {
		return catalog.Inventory{}, translate(err, "insert inventory")
	}
	return out, nil
}

func (s *Store) UpdateInventory(ctx context.Context, inv catalog.Inventory, expectedVersion int64) (catalog.Inventory, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE inventories AS i SET bin = $3, location = $4, source = $5, on_hand = $6, on_hold = $7,
			version = i.version + 1, updated_at = now()
		WHERE i.product_id = $1 AND i.version = $2
		RETURNING `+inventoryColumns,
		inv.ProductID, expectedVersion, inv.Bin, inv.Location, inv.Source, inv.OnHand, inv.OnHold,
	)
	out, err := scanInventory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Inventory{}, s.staleOrMissing(ctx, "inventories", "inventory", inv.ProductID)
	}
	if err != nil {
		return catalog.Inventory{}, translate(err, "update inventory")
	}
	return out, nil
}

func (s *Store) DeleteInventory(ctx context.Context, productID uuid.UUID) error {
	return execOne(ctx, s.db, fmt.Sprintf("inventory for product %s", productID),
		`DELETE FROM inventories WHERE product_id = $1`, productID)
}

const pricingColumns = `r.product_id, r.msrp, r.map, r.cost, r.sell, r.base, r.start_date, r.end_date,
	r.created_by, r.version, r.created_at, r.updated_at`

func scanPricing(row scanner) (catalog.Pricing, error) {
	var p catalog.Pricing
	err := row.Scan(&p.ProductID, &p.MSRP, &p.MAP, &p.Cost, &p.Sell, &p.Base, &p.StartDate, &p.EndDate,
		&p.CreatedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) GetPricing(ctx context.Context, productID uuid.UUID) (catalog.Pricing, error) {
	row := s.db.QueryRow(ctx, `SELECT `+pricingColumns+` FROM pricing r WHERE r.product_id = $1`, productID)
	p, err := scanPricing(row)
	if err != nil {
		return catalog.Pricing{}, translate(err, fmt.Sprintf("pricing for product %s", productID))
	}
	return p, nil
}

func (s *Store) ListPricing(ctx context.Context) ([]catalog.Pricing, error) {
	return collect(ctx, s.db, "list pricing", scanPricing,
		`SELECT `+pricingColumns+` FROM pricing r ORDER BY r.created_at, r.product_id`)
}

func (s *Store) InsertPricing(ctx context.Context, p catalog.Pricing) (catalog.Pricing, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO pricing AS r (product_id, msrp, map, cost, sell, base, start_date, end_date, created_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		ON CONFLICT (product_id) DO NOTHING
		RETURNING `+pricingColumns,
		p.ProductID, p.MSRP, p.MAP, p.Cost, p.Sell, p.Base, p.StartDate, p.EndDate, p.CreatedBy,
	)
	out, err := scanPricing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Pricing{}, &catalog.ConflictError{Kind: "pricing", ProductID: p.ProductID}
	}
	if err != nil {
		return catalog.Pricing{}, translate(err, "insert pricing")
	}
	return out, nil
}

func (s *Store) UpdatePricing(ctx context.Context, p catalog.Pricing, expectedVersion int64) (catalog.Pricing, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE pricing AS r SET msrp = $3, map = $4, cost = $5, sell = $6, base = $7,
			start_date = $8, end_date = $9, created_by = $10, version = r.version + 1, updated_at = now()
		WHERE r.product_id = $1 AND r.version = $2
		RETURNING `+pricingColumns,
		p.ProductID, expectedVersion, p.MSRP, p.MAP, p.Cost, p.Sell, p.Base, p.StartDate, p.EndDate, p.CreatedBy,
	)
	out, err := scanPricing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Pricing{}, s.staleOrMissing(ctx, "pricing", "pricing", p.ProductID)
	}
	if err != nil {
		return catalog.Pricing{}, translate(err, "update pricing")
	}
	return out, nil
}

func (s *Store) DeletePricing(ctx context.Context, productID uuid.UUID) error {
	return execOne(ctx, s.db, fmt.Sprintf("pricing for product %s", productID),
		`DELETE FROM pricing WHERE product_id = $1`, productID)
}

// staleOrMissing explains why a conditional update matched no row.
// table is a fixed identifier, never caller input.
func (s *Store) staleOrMissing(ctx context.Context, table, kind string, productID uuid.UUID) error {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE product_id = $1)`, productID).Scan(&exists)
	if err != nil {
		return translate(err, "check "+kind)
	}
	if !exists {
		return catalog.NotFoundf("%s for product %s", kind, productID)
	}
	return &catalog.ConflictError{Kind: kind, ProductID: productID}
}

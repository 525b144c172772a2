package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/supplychain-events/internal/domain/inventory"
)

// InventoryRepository persists inventory items in PostgreSQL. The
// sku+warehouse_id unique constraint backs the natural key.
type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

const inventoryColumns = `id, sku, warehouse_id, available_qty, reserved_qty, incoming_qty, threshold, updated_at`

func (r *InventoryRepository) Create(ctx context.Context, i *inventory.Item) error {
	now := time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO inventory_items (sku, warehouse_id, available_qty, reserved_qty, incoming_qty, threshold, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			i.SKU, i.WarehouseID, nullableInt(i.AvailableQty), i.ReservedQty, i.IncomingQty, i.Threshold, now,
		).Scan(&i.ID)
		if err != nil {
			return err
		}
		i.UpdatedAt = now
		return nil
	})
}

func (r *InventoryRepository) Update(ctx context.Context, i *inventory.Item) error {
	now := time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE inventory_items
			 SET available_qty = $1, reserved_qty = $2, incoming_qty = $3, threshold = $4, updated_at = $5
			 WHERE id = $6`,
			nullableInt(i.AvailableQty), i.ReservedQty, i.IncomingQty, i.Threshold, now, i.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return inventory.ErrNotFound
		}
		i.UpdatedAt = now
		return nil
	})
}

func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*inventory.Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1`, id)
	return scanInventoryItem(row)
}

func (r *InventoryRepository) List(ctx context.Context) ([]inventory.Item, error) {
	return r.queryItems(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items ORDER BY id`)
}

func (r *InventoryRepository) GetBySKU(ctx context.Context, sku string) ([]inventory.Item, error) {
	return r.queryItems(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE sku = $1 ORDER BY id`, sku)
}

func (r *InventoryRepository) GetBySKUAndWarehouse(ctx context.Context, sku, warehouseID string) (*inventory.Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE sku = $1 AND warehouse_id = $2`,
		sku, warehouseID)
	return scanInventoryItem(row)
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) queryItems(ctx context.Context, query string, args ...any) ([]inventory.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		var i inventory.Item
		var qty sql.NullInt64
		if err := rows.Scan(&i.ID, &i.SKU, &i.WarehouseID, &qty, &i.ReservedQty, &i.IncomingQty, &i.Threshold, &i.UpdatedAt); err != nil {
			return nil, err
		}
		i.AvailableQty = intPtr(qty)
		items = append(items, i)
	}
	return items, rows.Err()
}

func scanInventoryItem(row *sql.Row) (*inventory.Item, error) {
	var i inventory.Item
	var qty sql.NullInt64
	err := row.Scan(&i.ID, &i.SKU, &i.WarehouseID, &qty, &i.ReservedQty, &i.IncomingQty, &i.Threshold, &i.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inventory.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	i.AvailableQty = intPtr(qty)
	return &i, nil
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

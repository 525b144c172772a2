package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/supplychain-events/internal/domain/order"
)

// OrderRepository persists orders and their items in PostgreSQL.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and all of its items in one transaction and fills
// in the generated ids and timestamps.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	now := time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (customer_id, status, total_amount, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			o.CustomerID, o.Status, o.TotalAmount, now, now,
		).Scan(&o.ID)
		if err != nil {
			return err
		}

		for i := range o.Items {
			err := tx.QueryRowContext(ctx,
				`INSERT INTO order_items (order_id, sku, quantity, unit_price)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id`,
				o.ID, o.Items[i].SKU, o.Items[i].Quantity, o.Items[i].UnitPrice,
			).Scan(&o.Items[i].ID)
			if err != nil {
				return err
			}
		}

		o.CreatedAt = now
		o.UpdatedAt = now
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, customer_id, status, total_amount, created_at, updated_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer_id, status, total_amount, created_at, updated_at
		 FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// Update persists the mutable order fields (currently the status).
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	now := time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
			o.Status, now, o.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return order.ErrNotFound
		}
		o.UpdatedAt = now
		return nil
	})
}

// Delete removes the order; items cascade.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID int64) ([]order.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sku, quantity, unit_price FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ID, &it.SKU, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

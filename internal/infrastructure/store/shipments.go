package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/example/supplychain-events/internal/domain/shipment"
)

// ShipmentRepository persists shipments in PostgreSQL.
type ShipmentRepository struct {
	db *sql.DB
}

func NewShipmentRepository(db *sql.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

const shipmentColumns = `id, order_id, tracking_number, origin, destination, current_location, status, estimated_delivery, created_at, updated_at`

func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	now := time.Now().UTC()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO shipments (order_id, tracking_number, origin, destination, current_location, status, estimated_delivery, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			s.OrderID, s.TrackingNumber, s.Origin, s.Destination, s.CurrentLocation,
			s.Status, s.EstimatedDelivery, now, now,
		).Scan(&s.ID)
		if err != nil {
			return err
		}
		s.CreatedAt = now
		s.UpdatedAt = now
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		return shipment.ErrDuplicateTracking
	}
	return err
}

func (r *ShipmentRepository) GetByID(ctx context.Context, id int64) (*shipment.Shipment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
	return scanShipment(row)
}

func (r *ShipmentRepository) List(ctx context.Context) ([]shipment.Shipment, error) {
	return r.queryShipments(ctx, `SELECT `+shipmentColumns+` FROM shipments ORDER BY id`)
}

func (r *ShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+shipmentColumns+` FROM shipments WHERE tracking_number = $1`, trackingNumber)
	return scanShipment(row)
}

func (r *ShipmentRepository) GetByOrderID(ctx context.Context, orderID int64) ([]shipment.Shipment, error) {
	return r.queryShipments(ctx,
		`SELECT `+shipmentColumns+` FROM shipments WHERE order_id = $1 ORDER BY id`, orderID)
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	now := time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE shipments
			 SET current_location = $1, status = $2, estimated_delivery = $3, updated_at = $4
			 WHERE id = $5`,
			s.CurrentLocation, s.Status, s.EstimatedDelivery, now, s.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return shipment.ErrNotFound
		}
		s.UpdatedAt = now
		return nil
	})
}

func (r *ShipmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return shipment.ErrNotFound
	}
	return nil
}

func (r *ShipmentRepository) queryShipments(ctx context.Context, query string, args ...any) ([]shipment.Shipment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shipments []shipment.Shipment
	for rows.Next() {
		var s shipment.Shipment
		var loc sql.NullString
		var eta sql.NullTime
		if err := rows.Scan(&s.ID, &s.OrderID, &s.TrackingNumber, &s.Origin, &s.Destination,
			&loc, &s.Status, &eta, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.CurrentLocation = loc.String
		if eta.Valid {
			t := eta.Time
			s.EstimatedDelivery = &t
		}
		shipments = append(shipments, s)
	}
	return shipments, rows.Err()
}

func scanShipment(row *sql.Row) (*shipment.Shipment, error) {
	var s shipment.Shipment
	var loc sql.NullString
	var eta sql.NullTime
	err := row.Scan(&s.ID, &s.OrderID, &s.TrackingNumber, &s.Origin, &s.Destination,
		&loc, &s.Status, &eta, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shipment.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.CurrentLocation = loc.String
	if eta.Valid {
		t := eta.Time
		s.EstimatedDelivery = &t
	}
	return &s, nil
}

// isUniqueViolation matches the Postgres unique_violation error code.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

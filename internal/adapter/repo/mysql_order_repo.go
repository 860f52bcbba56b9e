package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// newOrderNumber builds the human-facing identifier assigned at insert.
// Nanosecond resolution plus a unique index on the column keeps it unique.
func newOrderNumber(now time.Time) string {
	return "ORD-" + strings.ToUpper(strconv.FormatInt(now.UnixNano(), 36))
}

// Create inserts the order and all of its items in one transaction. Either
// everything lands or nothing does; there is never an orphaned empty order.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	o.OrderNumber = newOrderNumber(now)
	o.CreatedAt = now

	_, err = tx.ExecContext(ctx, `
INSERT INTO orders
  (id, order_number, user_id, customer_name, customer_phone,
   delivery_mode, delivery_address, delivery_lat, delivery_lng,
   payment_method, payment_status, status,
   subtotal, delivery_fee, scheduled_date, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.OrderNumber, o.UserID, o.CustomerName, o.CustomerPhone,
		o.DeliveryMode, o.DeliveryAddress, o.DeliveryLat, o.DeliveryLng,
		o.PaymentMethod, o.PaymentStatus, o.Status,
		o.Subtotal, o.DeliveryFee, o.ScheduledDate, o.CreatedAt, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		res, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, name, quantity, price)
VALUES (?,?,?,?,?)`,
			item.OrderID, item.ProductID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			item.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, order_number, user_id, customer_name, customer_phone,
       delivery_mode, delivery_address, delivery_lat, delivery_lng,
       payment_method, payment_status, status,
       subtotal, delivery_fee, scheduled_date, created_at
FROM orders
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	index := map[string]int{}
	for rows.Next() {
		var (
			o       domain.Order
			address sql.NullString
			lat     sql.NullFloat64
			lng     sql.NullFloat64
			sched   sql.NullTime
		)
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.CustomerPhone,
			&o.DeliveryMode, &address, &lat, &lng,
			&o.PaymentMethod, &o.PaymentStatus, &o.Status,
			&o.Subtotal, &o.DeliveryFee, &sched, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if address.Valid {
			o.DeliveryAddress = &address.String
		}
		if lat.Valid {
			o.DeliveryLat = &lat.Float64
		}
		if lng.Valid {
			o.DeliveryLng = &lng.Float64
		}
		if sched.Valid {
			o.ScheduledDate = &sched.Time
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemRows, err := r.db.QueryContext(ctx, `
SELECT id, order_id, product_id, name, quantity, price
FROM order_items
WHERE order_id IN (`+placeholders(len(ids))+`)
ORDER BY id`, args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return orders, nil
}

func (r *MySQLOrderRepo) GetStatusForUser(ctx context.Context, orderID, userID string) (domain.OrderStatus, domain.PaymentStatus, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT status, payment_status FROM orders WHERE id = ? AND user_id = ?`, orderID, userID)
	var status domain.OrderStatus
	var payment domain.PaymentStatus
	if err := row.Scan(&status, &payment); err != nil {
		if err == sql.ErrNoRows {
			return "", "", usecase.ErrOrderNotFound
		}
		return "", "", fmt.Errorf("get order status: %w", err)
	}
	return status, payment, nil
}

// GetStatus is the unscoped variant used by the fulfillment event consumer.
func (r *MySQLOrderRepo) GetStatus(ctx context.Context, orderID string) (domain.OrderStatus, domain.PaymentStatus, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT status, payment_status FROM orders WHERE id = ?`, orderID)
	var status domain.OrderStatus
	var payment domain.PaymentStatus
	if err := row.Scan(&status, &payment); err != nil {
		if err == sql.ErrNoRows {
			return "", "", usecase.ErrOrderNotFound
		}
		return "", "", fmt.Errorf("get order status: %w", err)
	}
	return status, payment, nil
}

// ApplyStatus performs a guarded transition: terminal orders are left alone.
// rows == 0 means the order was missing or already terminal.
func (r *MySQLOrderRepo) ApplyStatus(ctx context.Context, orderID string, status domain.OrderStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders
SET status = ?, updated_at = NOW()
WHERE id = ? AND status NOT IN (?, ?)`,
		status, orderID, domain.OrderStatusCompleted, domain.OrderStatusCancelled)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *MySQLOrderRepo) ApplyPaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders
SET payment_status = ?, updated_at = NOW()
WHERE id = ?`, status, orderID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func args(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

var _ usecase.OrderStore = (*MySQLOrderRepo)(nil)

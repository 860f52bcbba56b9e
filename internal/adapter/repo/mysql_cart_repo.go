package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/pmdeguzman/storefront-api/internal/entity"
	"github.com/pmdeguzman/storefront-api/internal/usecase"
)

type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

func (r *MySQLCartRepo) FindCartIDForUser(ctx context.Context, userID string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = ?`, userID)
	var id string
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find cart: %w", err)
	}
	return id, true, nil
}

// GetItems joins the catalog for display name/price; an empty or missing
// cart yields an empty slice, not an error.
func (r *MySQLCartRepo) GetItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT ci.cart_id, ci.product_id, p.name, ci.quantity, p.price
FROM carts c
JOIN cart_items ci ON ci.cart_id = c.id
JOIN products p ON p.id = ci.product_id
WHERE c.user_id = ?
ORDER BY p.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.CartID, &item.ProductID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

// UpsertItem sets one cart line, creating the cart on first use. A quantity
// of zero or less removes the line.
func (r *MySQLCartRepo) UpsertItem(ctx context.Context, userID, productID string, quantity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var cartID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = ?`, userID).Scan(&cartID)
	if err == sql.ErrNoRows {
		cartID = uuid.NewString()
		if _, err := tx.ExecContext(ctx, `INSERT INTO carts (id, user_id) VALUES (?,?)`, cartID, userID); err != nil {
			return fmt.Errorf("create cart: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("find cart: %w", err)
	}

	if quantity <= 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID); err != nil {
			return fmt.Errorf("remove cart item: %w", err)
		}
	} else {
		_, err := tx.ExecContext(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES (?,?,?)
ON DUPLICATE KEY UPDATE quantity = ?`, cartID, productID, quantity, quantity)
		if err != nil {
			return fmt.Errorf("upsert cart item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cart: %w", err)
	}
	return nil
}

func (r *MySQLCartRepo) DeleteCartItems(ctx context.Context, cartID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return nil
}

var _ usecase.CartStore = (*MySQLCartRepo)(nil)

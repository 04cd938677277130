// Package postgres implements notify.Repository on top of a pgx pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/shopnotify/pkg/pg"
	"github.com/dmitrymomot/shopnotify/svc/notify"
)

// Repository reads storefront data and stores confirmation tokens.
type Repository struct {
	pool *pgxpool.Pool
}

var _ notify.Repository = (*Repository)(nil)

// NewRepository returns a Repository backed by pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const insertConfirmTokenQuery = `
INSERT INTO confirm_email_tokens (user_id, key)
VALUES ($1, $2)
ON CONFLICT (user_id) DO NOTHING`

const selectConfirmTokenQuery = `
SELECT user_id, key, created_at
FROM confirm_email_tokens
WHERE user_id = $1`

// GetOrCreateConfirmToken inserts a token unless one exists, then reads
// whichever row won. Concurrent callers for one user see the same key.
func (r *Repository) GetOrCreateConfirmToken(ctx context.Context, userID int64) (notify.ConfirmToken, error) {
	key, err := notify.GenerateTokenKey()
	if err != nil {
		return notify.ConfirmToken{}, fmt.Errorf("generate token key: %w", err)
	}

	if _, err := r.pool.Exec(ctx, insertConfirmTokenQuery, userID, key); err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return notify.ConfirmToken{}, fmt.Errorf("user %d: %w", userID, notify.ErrNotFound)
		}
		return notify.ConfirmToken{}, fmt.Errorf("insert confirm token: %w", err)
	}

	var t notify.ConfirmToken
	err = r.pool.QueryRow(ctx, selectConfirmTokenQuery, userID).Scan(&t.UserID, &t.Key, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return notify.ConfirmToken{}, fmt.Errorf("user %d: %w", userID, notify.ErrNotFound)
		}
		return notify.ConfirmToken{}, fmt.Errorf("select confirm token: %w", err)
	}
	return t, nil
}

const selectUserQuery = `SELECT id, email, type FROM users WHERE id = $1`

// GetUser implements notify.Repository.
func (r *Repository) GetUser(ctx context.Context, id int64) (notify.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, selectUserQuery, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return notify.User{}, fmt.Errorf("user %d: %w", id, notify.ErrNotFound)
		}
		return notify.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

const selectUsersByTypeQuery = `SELECT id, email, type FROM users WHERE type = $1 ORDER BY id`

// ListUsersByType implements notify.Repository.
func (r *Repository) ListUsersByType(ctx context.Context, t notify.UserType) ([]notify.User, error) {
	rows, err := r.pool.Query(ctx, selectUsersByTypeQuery, string(t))
	if err != nil {
		return nil, fmt.Errorf("select users by type: %w", err)
	}
	defer rows.Close()

	var users []notify.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

const selectOrderItemsQuery = `
SELECT pi.id, pi.external_id, pi.model, pi.price::text, oi.quantity, u.email
FROM order_items oi
JOIN product_infos pi ON pi.id = oi.product_info_id
JOIN shops s ON s.id = pi.shop_id
JOIN users u ON u.id = s.user_id
WHERE oi.order_id = $1
ORDER BY oi.id`

// ListOrderItems implements notify.Repository.
func (r *Repository) ListOrderItems(ctx context.Context, orderID int64) ([]notify.OrderItem, error) {
	rows, err := r.pool.Query(ctx, selectOrderItemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	items := []notify.OrderItem{}
	for rows.Next() {
		var (
			item  notify.OrderItem
			price string
		)
		if err := rows.Scan(
			&item.Line.ProductInfoID,
			&item.Line.ExternalID,
			&item.Line.Model,
			&price,
			&item.Line.Quantity,
			&item.ShopEmail,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if item.Line.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return items, nil
}

func scanUser(row pgx.Row) (notify.User, error) {
	var (
		u   notify.User
		typ string
	)
	if err := row.Scan(&u.ID, &u.Email, &typ); err != nil {
		return notify.User{}, err
	}
	u.Type = notify.UserType(typ)
	return u, nil
}

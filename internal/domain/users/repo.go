package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Каждая операция — один SQL-запрос: read-modify-write на стороне Go
// дал бы гонку между ботом и вебхуком за одну и ту же строку.
const opTimeout = 5 * time.Second

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Upsert регистрирует пользователя при первом обращении,
// при повторных — обновляет профиль и last_activity.
func (r *Repo) Upsert(ctx context.Context, tg Telegram) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (user_id, username, first_name)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id) DO UPDATE SET
		  username      = EXCLUDED.username,
		  first_name    = EXCLUDED.first_name,
		  last_activity = now()
	`, tg.ID, tg.Username, tg.FirstName)
	if err != nil {
		return fmt.Errorf("%w: upsert: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, userID int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT user_id, username, first_name, is_premium, subscription_until,
		       stripe_customer_id, created_at, last_activity
		FROM users WHERE user_id = $1
	`, userID)

	var u User
	err := row.Scan(&u.UserID, &u.Username, &u.FirstName, &u.IsPremium,
		&u.SubscriptionUntil, &u.StripeCustomerID, &u.CreatedAt, &u.LastActivity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get: %v", ErrStorageUnavailable, err)
	}
	return &u, nil
}

// SetPremium включает премиум до until. stripe_customer_id выставляется
// только если customerID передан — сбрасывать его здесь нельзя, иначе
// потеряем привязку для будущих renewal-событий.
func (r *Repo) SetPremium(ctx context.Context, userID int64, until time.Time, customerID *string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		UPDATE users SET
		  is_premium         = TRUE,
		  subscription_until = $2,
		  stripe_customer_id = COALESCE($3, stripe_customer_id)
		WHERE user_id = $1
	`, userID, until, customerID)
	if err != nil {
		return fmt.Errorf("%w: set premium: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// ClearPremium снимает только флаг; subscription_until и stripe_customer_id
// остаются, чтобы пользователь опознавался по будущим событиям Stripe.
func (r *Repo) ClearPremium(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `UPDATE users SET is_premium = FALSE WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: clear premium: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// List — все пользователи, для админской выгрузки.
func (r *Repo) List(ctx context.Context) ([]*User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT user_id, username, first_name, is_premium, subscription_until,
		       stripe_customer_id, created_at, last_activity
		FROM users ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.UserID, &u.Username, &u.FirstName, &u.IsPremium,
			&u.SubscriptionUntil, &u.StripeCustomerID, &u.CreatedAt, &u.LastActivity); err != nil {
			return nil, fmt.Errorf("%w: list: %v", ErrStorageUnavailable, err)
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStorageUnavailable, err)
	}
	return out, nil
}

// FindByCustomerRef находит пользователя по идентификатору клиента Stripe.
// Renewal и cancel приходят без user_id — только с customer.
func (r *Repo) FindByCustomerRef(ctx context.Context, customerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var userID int64
	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM users WHERE stripe_customer_id = $1`, customerID,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: find by customer: %v", ErrStorageUnavailable, err)
	}
	return userID, nil
}

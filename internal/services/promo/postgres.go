package promo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sidjey-y/hellweekcoffee/internal/database"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

const (
	insertPromoSQL = `
		INSERT INTO promo_codes (code, discount_percent, valid_from, valid_until, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	getPromoSQL = `
		SELECT id, code, discount_percent, valid_from, valid_until, active, created_at
		FROM promo_codes WHERE code = $1`

	listPromosSQL = `
		SELECT id, code, discount_percent, valid_from, valid_until, active, created_at
		FROM promo_codes ORDER BY code`
)

// Store persists promo codes in PostgreSQL
type Store struct {
	db *database.DB
}

// NewStore creates the promo store
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Create inserts a promo code
func (s *Store) Create(ctx context.Context, p *models.PromoCode) error {
	err := s.db.QueryRow(ctx, insertPromoSQL,
		p.Code, p.DiscountPercent, p.ValidFrom, p.ValidUntil, p.Active,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert promo code: %w", err)
	}
	return nil
}

// GetByCode looks up a promo code by its exact code
func (s *Store) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var p models.PromoCode
	err := s.db.QueryRow(ctx, getPromoSQL, code).Scan(
		&p.ID, &p.Code, &p.DiscountPercent, &p.ValidFrom, &p.ValidUntil, &p.Active, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Entity: "promo code", Key: code}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return &p, nil
}

// List returns every promo code ordered by code
func (s *Store) List(ctx context.Context) ([]*models.PromoCode, error) {
	rows, err := s.db.Query(ctx, listPromosSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	defer rows.Close()

	var promos []*models.PromoCode
	for rows.Next() {
		var p models.PromoCode
		if err := rows.Scan(&p.ID, &p.Code, &p.DiscountPercent, &p.ValidFrom, &p.ValidUntil, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, &p)
	}
	return promos, rows.Err()
}

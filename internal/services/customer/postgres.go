package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sidjey-y/hellweekcoffee/internal/database"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

const (
	insertCustomerSQL = `
		INSERT INTO customers (membership_id, first_name, last_name, email, phone, date_of_birth, is_member, active)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)
		RETURNING id, created_at`

	getByMembershipIDSQL = `
		SELECT id, membership_id, first_name, COALESCE(last_name, ''), COALESCE(email, ''), COALESCE(phone, ''),
			   date_of_birth, is_member, active, created_at
		FROM customers WHERE membership_id = $1`

	membershipIDExistsSQL = `
		SELECT EXISTS(SELECT 1 FROM customers WHERE membership_id = $1)`

	updateCustomerSQL = `
		UPDATE customers
		SET first_name = $1, last_name = NULLIF($2, ''), email = NULLIF($3, ''), phone = NULLIF($4, ''), date_of_birth = $5
		WHERE id = $6`
)

// Store is the PostgreSQL-backed customer store
type Store struct {
	db *database.DB
}

// NewStore creates a customer store over the shared pool
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Create inserts a customer (member or guest), filling in the generated id
func (s *Store) Create(ctx context.Context, customer *models.Customer) error {
	err := s.db.QueryRow(ctx, insertCustomerSQL,
		customer.MembershipID, customer.FirstName, customer.LastName,
		customer.Email, customer.Phone, customer.DateOfBirth,
		customer.Member, customer.Active,
	).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// GetByMembershipID returns one member by membership id
func (s *Store) GetByMembershipID(ctx context.Context, membershipID string) (*models.Customer, error) {
	customer := &models.Customer{}
	err := s.db.QueryRow(ctx, getByMembershipIDSQL, membershipID).Scan(
		&customer.ID, &customer.MembershipID, &customer.FirstName, &customer.LastName,
		&customer.Email, &customer.Phone, &customer.DateOfBirth,
		&customer.Member, &customer.Active, &customer.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Entity: "member", Key: membershipID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// MembershipIDExists reports whether a membership id is taken
func (s *Store) MembershipIDExists(ctx context.Context, membershipID string) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, membershipIDExistsSQL, membershipID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership ID: %w", err)
	}
	return exists, nil
}

// Update persists member detail changes
func (s *Store) Update(ctx context.Context, customer *models.Customer) error {
	err := s.db.Exec(ctx, updateCustomerSQL,
		customer.FirstName, customer.LastName, customer.Email, customer.Phone,
		customer.DateOfBirth, customer.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

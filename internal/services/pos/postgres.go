package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sidjey-y/hellweekcoffee/internal/database"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

const (
	insertOrderSQL = `
		INSERT INTO orders (number, customer_id, customer_name, cashier_name, payment_method, status, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	insertOrderLineSQL = `
		INSERT INTO order_lines (order_id, item_code, item_name, quantity, size, notes, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	insertLineOptionSQL = `
		INSERT INTO order_line_options (order_line_id, customization_id, option_id, option_name, price)
		VALUES ($1, $2, $3, $4, $5)`

	nextOrderSequenceSQL = `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 'POS_[0-9]{8}_([0-9]{3})') AS INTEGER)), 0) + 1
		FROM orders
		WHERE number LIKE $1`

	getOrderSQL = `
		SELECT id, number, customer_id, customer_name, cashier_name, payment_method, status, total, created_at, updated_at
		FROM orders WHERE number = $1`

	listOrdersSQL = `
		SELECT id, number, customer_id, customer_name, cashier_name, payment_method, status, total, created_at, updated_at
		FROM orders WHERE status = $1
		ORDER BY created_at DESC`

	getOrderLinesSQL = `
		SELECT id, item_code, item_name, quantity, size, notes, unit_price
		FROM order_lines WHERE order_id = $1
		ORDER BY id ASC`

	getLineOptionsSQL = `
		SELECT olo.order_line_id, olo.customization_id, olo.option_id, olo.option_name, olo.price
		FROM order_line_options olo
		JOIN order_lines ol ON ol.id = olo.order_line_id
		WHERE ol.order_id = $1
		ORDER BY olo.order_line_id, olo.customization_id, olo.option_id`

	updateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2`
)

// Store is the PostgreSQL-backed order store
type Store struct {
	db *database.DB
}

// NewStore creates an order store over the shared pool
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// NextOrderSequence returns the next per-day order sequence number
func (s *Store) NextOrderSequence(ctx context.Context, date time.Time) (int, error) {
	pattern := fmt.Sprintf("POS_%s_%%", date.Format("20060102"))
	var sequence int
	if err := s.db.QueryRow(ctx, nextOrderSequenceSQL, pattern).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get next order sequence: %w", err)
	}
	return sequence, nil
}

// SaveOrder persists the whole order graph (order, lines, selected options)
// in one transaction.
func (s *Store) SaveOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, insertOrderSQL,
		order.Number, order.CustomerID, order.CustomerName, order.CashierName,
		order.PaymentMethod, order.Status, order.Total,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range order.Lines {
		var size *string
		if line.Size != nil {
			s := string(*line.Size)
			size = &s
		}
		err = tx.QueryRow(ctx, insertOrderLineSQL,
			order.ID, line.ItemCode, line.ItemName, line.Quantity, size, line.Notes, line.UnitPrice,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}

		for _, customization := range line.Customizations {
			for _, option := range customization.Options {
				_, err = tx.Exec(ctx, insertLineOptionSQL,
					line.ID, customization.CustomizationID, option.OptionID, option.Name, option.Price)
				if err != nil {
					return fmt.Errorf("failed to insert line option: %w", err)
				}
			}
		}
	}

	return tx.Commit(ctx)
}

// GetOrderByNumber loads one order graph
func (s *Store) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	order, err := scanOrder(s.db.QueryRow(ctx, getOrderSQL, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Entity: "order", Key: number}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := s.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrdersByStatus returns order graphs in the given status
func (s *Store) ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]*models.Order, error) {
	rows, err := s.db.Query(ctx, listOrdersSQL, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if err := s.loadLines(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrderStatus persists a lifecycle transition
func (s *Store) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	if err := s.db.Exec(ctx, updateOrderStatusSQL, order.Status, order.ID); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

// Ping reports database reachability
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(&order.ID, &order.Number, &order.CustomerID, &order.CustomerName,
		&order.CashierName, &order.PaymentMethod, &order.Status, &order.Total,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Store) loadLines(ctx context.Context, order *models.Order) error {
	rows, err := s.db.Query(ctx, getOrderLinesSQL, order.ID)
	if err != nil {
		return fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	linesByID := make(map[int64]*models.OrderLine)
	for rows.Next() {
		line := &models.OrderLine{}
		var size *string
		var notes *string
		if err := rows.Scan(&line.ID, &line.ItemCode, &line.ItemName, &line.Quantity, &size, &notes, &line.UnitPrice); err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		if size != nil {
			s := models.Size(*size)
			line.Size = &s
		}
		if notes != nil {
			line.Notes = *notes
		}
		order.Lines = append(order.Lines, line)
		linesByID[line.ID] = line
	}
	if err := rows.Err(); err != nil {
		return err
	}

	optRows, err := s.db.Query(ctx, getLineOptionsSQL, order.ID)
	if err != nil {
		return fmt.Errorf("failed to get line options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var lineID, customizationID int64
		var option models.SelectedOption
		if err := optRows.Scan(&lineID, &customizationID, &option.OptionID, &option.Name, &option.Price); err != nil {
			return fmt.Errorf("failed to scan line option: %w", err)
		}
		line, ok := linesByID[lineID]
		if !ok {
			continue
		}
		appendLineOption(line, customizationID, option)
	}
	return optRows.Err()
}

// appendLineOption groups stored options back under their customization
func appendLineOption(line *models.OrderLine, customizationID int64, option models.SelectedOption) {
	for i := range line.Customizations {
		if line.Customizations[i].CustomizationID == customizationID {
			line.Customizations[i].Options = append(line.Customizations[i].Options, option)
			return
		}
	}
	line.Customizations = append(line.Customizations, models.LineCustomization{
		CustomizationID: customizationID,
		Options:         []models.SelectedOption{option},
	})
}

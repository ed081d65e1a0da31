package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/database"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

const (
	salesSummarySQL = `
		SELECT COALESCE(SUM(total), 0), COUNT(*), COALESCE(AVG(total), 0)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2`

	salesByPaymentSQL = `
		SELECT payment_method, COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2
		GROUP BY payment_method
		ORDER BY SUM(total) DESC`

	topItemsSQL = `
		SELECT ol.item_code, ol.item_name, SUM(ol.quantity), SUM(ol.unit_price * ol.quantity)
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE o.status = 'completed' AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY ol.item_code, ol.item_name
		ORDER BY SUM(ol.quantity) DESC, ol.item_code
		LIMIT $3`

	dailyRevenueSQL = `
		SELECT DATE(created_at), COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at)`
)

// Store runs reporting queries against the orders tables
type Store struct {
	db *database.DB
}

// NewStore creates the analytics store
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// SalesSummary aggregates completed-order revenue over a period
func (s *Store) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	var summary SalesSummary
	var avg float64
	err := s.db.QueryRow(ctx, salesSummarySQL, from, to).Scan(&summary.TotalRevenue, &summary.OrderCount, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}
	summary.AverageOrderValue = models.Money(avg)
	return &summary, nil
}

// SalesByPaymentMethod breaks revenue down per payment method
func (s *Store) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]PaymentMethodSales, error) {
	rows, err := s.db.Query(ctx, salesByPaymentSQL, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by payment method: %w", err)
	}
	defer rows.Close()

	var sales []PaymentMethodSales
	for rows.Next() {
		var entry PaymentMethodSales
		if err := rows.Scan(&entry.PaymentMethod, &entry.Revenue, &entry.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan payment method sales: %w", err)
		}
		sales = append(sales, entry)
	}
	return sales, rows.Err()
}

// TopItems ranks items by quantity sold across completed orders
func (s *Store) TopItems(ctx context.Context, from, to time.Time, limit int) ([]ItemSales, error) {
	rows, err := s.db.Query(ctx, topItemsSQL, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top items: %w", err)
	}
	defer rows.Close()

	var items []ItemSales
	for rows.Next() {
		var entry ItemSales
		if err := rows.Scan(&entry.ItemCode, &entry.ItemName, &entry.QuantitySold, &entry.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan item sales: %w", err)
		}
		items = append(items, entry)
	}
	return items, rows.Err()
}

// DailyRevenue returns per-day completed-order revenue
func (s *Store) DailyRevenue(ctx context.Context, from, to time.Time) ([]DailyRevenue, error) {
	rows, err := s.db.Query(ctx, dailyRevenueSQL, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily revenue: %w", err)
	}
	defer rows.Close()

	var days []DailyRevenue
	for rows.Next() {
		var entry DailyRevenue
		var day time.Time
		if err := rows.Scan(&day, &entry.Revenue, &entry.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan daily revenue: %w", err)
		}
		entry.Date = day.Format("2006-01-02")
		days = append(days, entry)
	}
	return days, rows.Err()
}

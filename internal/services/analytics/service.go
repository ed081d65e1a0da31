package analytics

import (
	"context"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

const defaultTopItemsLimit = 10

// SalesSummary is aggregate revenue over a period
type SalesSummary struct {
	TotalRevenue      models.Money `json:"total_revenue"`
	OrderCount        int          `json:"order_count"`
	AverageOrderValue models.Money `json:"average_order_value"`
}

// PaymentMethodSales is revenue attributed to one payment method
type PaymentMethodSales struct {
	PaymentMethod string       `json:"payment_method"`
	Revenue       models.Money `json:"revenue"`
	OrderCount    int          `json:"order_count"`
}

// ItemSales ranks one item by units sold
type ItemSales struct {
	ItemCode     string       `json:"item_code"`
	ItemName     string       `json:"item_name"`
	QuantitySold int          `json:"quantity_sold"`
	Revenue      models.Money `json:"revenue"`
}

// DailyRevenue is one day's completed-order revenue
type DailyRevenue struct {
	Date       string       `json:"date"`
	Revenue    models.Money `json:"revenue"`
	OrderCount int          `json:"order_count"`
}

// Report bundles every aggregate for one period
type Report struct {
	From            string               `json:"from"`
	To              string               `json:"to"`
	Summary         *SalesSummary        `json:"summary"`
	ByPaymentMethod []PaymentMethodSales `json:"by_payment_method"`
	TopItems        []ItemSales          `json:"top_items"`
	DailyRevenue    []DailyRevenue       `json:"daily_revenue"`
}

// Service computes sales reports over completed orders
type Service struct {
	store  *Store
	logger *logger.Logger
}

// NewService creates the analytics service
func NewService(store *Store, log *logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

// Report builds the full sales report for [from, to)
func (s *Service) Report(ctx context.Context, from, to time.Time, requestID string) (*Report, error) {
	if !to.After(from) {
		return nil, models.ValidationError{Field: "to", Message: "end of period must be after start"}
	}

	summary, err := s.store.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byPayment, err := s.store.SalesByPaymentMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	topItems, err := s.store.TopItems(ctx, from, to, defaultTopItemsLimit)
	if err != nil {
		return nil, err
	}
	daily, err := s.store.DailyRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("report_built", "Sales report built", requestID, map[string]interface{}{
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
		"order_count": summary.OrderCount,
	})

	return &Report{
		From:            from.Format("2006-01-02"),
		To:              to.Format("2006-01-02"),
		Summary:         summary,
		ByPaymentMethod: byPayment,
		TopItems:        topItems,
		DailyRevenue:    daily,
	}, nil
}

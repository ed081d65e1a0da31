package pos

import (
	"context"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/messaging"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

const receiptWarning = "order recorded, but the receipt notification could not be delivered"

// Service owns the order build and lifecycle operations. Each order is built
// and mutated by exactly one request; the service keeps no state between
// calls.
type Service struct {
	orders    OrderStore
	customers CustomerResolver
	builder   *LineBuilder
	publisher messaging.NotificationPublisher
	logger    *logger.Logger
	cashier   string
}

// NewService wires the POS service
func NewService(orders OrderStore, catalog CatalogStore, customers CustomerResolver, publisher messaging.NotificationPublisher, log *logger.Logger, cashier string) *Service {
	return &Service{
		orders:    orders,
		customers: customers,
		builder:   NewLineBuilder(NewResolver(catalog)),
		publisher: publisher,
		logger:    log,
		cashier:   cashier,
	}
}

// CreateOrder builds, prices and persists one order atomically. If any
// requested line fails to resolve, the whole build fails and nothing is
// persisted. Receipt notification delivery is best-effort: a publish failure
// is reported as a warning on the response, never as an error.
func (s *Service) CreateOrder(ctx context.Context, req *TransactionRequest, requestID string) (*TransactionResponse, error) {
	payment, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, models.ValidationError{Field: "lines", Message: "at least one line is required"}
	}

	customer, err := s.customers.Resolve(ctx, req.MembershipID, req.GuestFirstName)
	if err != nil {
		return nil, err
	}

	sequence, err := s.orders.NextOrderSequence(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	number := models.GenerateOrderNumber(time.Now().UTC(), sequence)

	order := models.NewOrder(number, customer, s.cashier, payment)
	for _, lineReq := range req.Lines {
		line, err := s.builder.BuildLine(ctx, lineReq)
		if err != nil {
			return nil, err
		}
		if err := order.AddLine(line); err != nil {
			return nil, err
		}
	}

	// Point-of-sale flows that settle immediately skip the pending state
	if req.SettleNow {
		if err := order.Complete(); err != nil {
			return nil, err
		}
	}

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_number": order.Number,
		"status":       order.Status,
		"total":        order.Total,
		"line_count":   len(order.Lines),
	})

	warning := s.publishReceipt(ctx, order, requestID)

	return &TransactionResponse{
		OrderNumber: order.Number,
		Status:      order.Status,
		Total:       order.Total,
		Lines:       order.Lines,
		Warning:     warning,
	}, nil
}

// publishReceipt emits the receipt notification, returning a warning string
// on failure instead of an error.
func (s *Service) publishReceipt(ctx context.Context, order *models.Order, requestID string) string {
	if s.publisher == nil {
		return ""
	}
	if err := s.publisher.PublishReceipt(ctx, models.NewReceiptMessage(order)); err != nil {
		s.logger.Warn("receipt_publish_failed", "Receipt notification could not be delivered", requestID, map[string]interface{}{
			"order_number": order.Number,
			"reason":       err.Error(),
		})
		return receiptWarning
	}
	return ""
}

// GetOrder fetches one order graph by number
func (s *Service) GetOrder(ctx context.Context, number string) (*models.Order, error) {
	return s.orders.GetOrderByNumber(ctx, number)
}

// ListOrders returns orders in the given status
func (s *Service) ListOrders(ctx context.Context, status models.OrderStatus) ([]*models.Order, error) {
	return s.orders.ListOrdersByStatus(ctx, status)
}

// CompleteOrder transitions a pending order to completed. Completion only
// flips status; pricing was settled at build time.
func (s *Service) CompleteOrder(ctx context.Context, number, requestID string) (*models.Order, error) {
	return s.transitionOrder(ctx, number, requestID, (*models.Order).Complete)
}

// CancelOrder transitions a pending order to cancelled
func (s *Service) CancelOrder(ctx context.Context, number, requestID string) (*models.Order, error) {
	return s.transitionOrder(ctx, number, requestID, (*models.Order).Cancel)
}

func (s *Service) transitionOrder(ctx context.Context, number, requestID string, transition func(*models.Order) error) (*models.Order, error) {
	order, err := s.orders.GetOrderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := transition(order); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateOrderStatus(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order_status_changed", "Order status changed", requestID, map[string]interface{}{
		"order_number": order.Number,
		"old_status":   oldStatus,
		"new_status":   order.Status,
	})

	if s.publisher != nil {
		msg := models.NewStatusUpdateMessage(order.Number, oldStatus, order.Status, s.cashier)
		if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
			s.logger.Warn("status_publish_failed", "Status notification could not be delivered", requestID, map[string]interface{}{
				"order_number": order.Number,
				"reason":       err.Error(),
			})
		}
	}

	return order, nil
}

// HealthCheck reports whether the order store is reachable
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.orders.Ping(ctx) == nil
}

package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/messaging"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// Subscriber consumes notification messages and renders them to the console.
// It stands in for the receipt printer and customer display of a real store.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start runs the subscriber until a shutdown signal arrives
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleNotification); err != nil && ctx.Err() == nil {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
		<-s.done
		return s.consumer.Close()
	case <-s.done:
		return nil
	}
}

// handleNotification dispatches one message by its shape: status updates
// carry new_status, receipts carry lines.
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var probe struct {
		NewStatus string          `json:"new_status"`
		Lines     json.RawMessage `json:"lines"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	if probe.NewStatus != "" {
		var update models.StatusUpdateMessage
		if err := json.Unmarshal(body, &update); err != nil {
			return fmt.Errorf("failed to parse status update: %w", err)
		}
		s.displayStatusUpdate(&update, requestID)
		return nil
	}

	var receipt models.ReceiptMessage
	if err := json.Unmarshal(body, &receipt); err != nil {
		return fmt.Errorf("failed to parse receipt: %w", err)
	}
	s.displayReceipt(&receipt, requestID)
	return nil
}

func (s *Subscriber) displayReceipt(receipt *models.ReceiptMessage, requestID string) {
	fmt.Println(formatReceipt(receipt))

	s.logger.Info("receipt_displayed", "Receipt displayed", requestID, map[string]interface{}{
		"order_number": receipt.OrderNumber,
		"total":        receipt.Total,
		"line_count":   len(receipt.Lines),
	})
}

func (s *Subscriber) displayStatusUpdate(update *models.StatusUpdateMessage, requestID string) {
	fmt.Printf("[%s] Order %s: %s -> %s (by %s)\n",
		update.Timestamp.Format("2006-01-02 15:04:05"),
		update.OrderNumber, update.OldStatus, update.NewStatus, update.ChangedBy)

	s.logger.Info("status_update_displayed", "Status update displayed", requestID, map[string]interface{}{
		"order_number": update.OrderNumber,
		"old_status":   update.OldStatus,
		"new_status":   update.NewStatus,
		"changed_by":   update.ChangedBy,
	})
}

// formatReceipt renders a receipt as fixed-width console text
func formatReceipt(receipt *models.ReceiptMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "========================================\n")
	fmt.Fprintf(&b, " HELL WEEK COFFEE\n")
	fmt.Fprintf(&b, " Order:    %s\n", receipt.OrderNumber)
	fmt.Fprintf(&b, " Customer: %s\n", receipt.CustomerName)
	fmt.Fprintf(&b, " Cashier:  %s\n", receipt.CashierName)
	fmt.Fprintf(&b, " Date:     %s\n", receipt.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "----------------------------------------\n")
	for _, line := range receipt.Lines {
		name := line.ItemName
		if line.Size != nil {
			name = fmt.Sprintf("%s (%s)", name, *line.Size)
		}
		fmt.Fprintf(&b, " %dx %-26s %8d\n", line.Quantity, name, line.Subtotal)
	}
	fmt.Fprintf(&b, "----------------------------------------\n")
	fmt.Fprintf(&b, " TOTAL %32d\n", receipt.Total)
	fmt.Fprintf(&b, " Paid via %s, status %s\n", receipt.PaymentMethod, receipt.Status)
	fmt.Fprintf(&b, "========================================")

	return b.String()
}

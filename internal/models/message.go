package models

import "time"

// ReceiptLine is one order line as rendered on a receipt notification
type ReceiptLine struct {
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	Size      *Size  `json:"size,omitempty"`
	UnitPrice Money  `json:"unit_price"`
	Subtotal  Money  `json:"subtotal"`
}

// ReceiptMessage is published after a successful order build so downstream
// subscribers (receipt printer, customer display) can render it. Delivery is
// best-effort and never blocks order creation.
type ReceiptMessage struct {
	OrderNumber   string        `json:"order_number"`
	CustomerName  string        `json:"customer_name"`
	CashierName   string        `json:"cashier_name"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        OrderStatus   `json:"status"`
	Lines         []ReceiptLine `json:"lines"`
	Total         Money         `json:"total"`
	Timestamp     time.Time     `json:"timestamp"`
}

// StatusUpdateMessage notifies subscribers of an order lifecycle transition
type StatusUpdateMessage struct {
	OrderNumber string      `json:"order_number"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
	ChangedBy   string      `json:"changed_by"`
	Timestamp   time.Time   `json:"timestamp"`
}

// NewReceiptMessage builds a receipt notification from a persisted order
func NewReceiptMessage(order *Order) *ReceiptMessage {
	lines := make([]ReceiptLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, ReceiptLine{
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			Size:      line.Size,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}
	return &ReceiptMessage{
		OrderNumber:   order.Number,
		CustomerName:  order.CustomerName,
		CashierName:   order.CashierName,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		Lines:         lines,
		Total:         order.Total,
		Timestamp:     time.Now().UTC(),
	}
}

// NewStatusUpdateMessage builds a status change notification
func NewStatusUpdateMessage(orderNumber string, oldStatus, newStatus OrderStatus, changedBy string) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderNumber: orderNumber,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		ChangedBy:   changedBy,
		Timestamp:   time.Now().UTC(),
	}
}

package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PaymentMethod is how an order was settled. The method is recorded only,
// never processed.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentGCash PaymentMethod = "gcash"
	PaymentMaya  PaymentMethod = "maya"
)

// ParsePaymentMethod validates a payment method string
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentGCash, PaymentMaya:
		return PaymentMethod(s), nil
	default:
		return "", ValidationError{Field: "payment_method", Message: "must be one of: cash, card, gcash, maya"}
	}
}

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further transitions are permitted
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// SelectedOption is one chosen customization option with its priced surcharge
// captured at order time.
type SelectedOption struct {
	OptionID int64  `json:"option_id" db:"option_id"`
	Name     string `json:"name" db:"name"`
	Price    Money  `json:"price" db:"price"`
}

// LineCustomization is one customization axis applied to an order line
type LineCustomization struct {
	CustomizationID int64            `json:"customization_id" db:"customization_id"`
	Options         []SelectedOption `json:"options"`
}

// OrderLine is one priced, quantity-bearing entry in an order. Lines are
// created, mutated and removed only through their owning Order.
type OrderLine struct {
	ID             int64               `json:"id,omitempty" db:"id"`
	ItemCode       string              `json:"item_code" db:"item_code"`
	ItemName       string              `json:"item_name" db:"item_name"`
	Quantity       int                 `json:"quantity" db:"quantity"`
	Size           *Size               `json:"size,omitempty" db:"size"`
	Customizations []LineCustomization `json:"customizations,omitempty"`
	Notes          string              `json:"notes,omitempty" db:"notes"`
	UnitPrice      Money               `json:"unit_price" db:"unit_price"`
}

// Subtotal is the line's contribution to the order total
func (l *OrderLine) Subtotal() Money {
	return l.UnitPrice * Money(l.Quantity)
}

// customizationKeys canonicalizes the line's customization selections as a
// sorted list of "customizationID:opt,opt,..." strings so that comparison is
// independent of submission order.
func (l *OrderLine) customizationKeys() []string {
	keys := make([]string, 0, len(l.Customizations))
	for _, c := range l.Customizations {
		optionIDs := make([]int64, 0, len(c.Options))
		for _, opt := range c.Options {
			optionIDs = append(optionIDs, opt.OptionID)
		}
		sort.Slice(optionIDs, func(i, j int) bool { return optionIDs[i] < optionIDs[j] })

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d:", c.CustomizationID)
		for i, id := range optionIDs {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d", id)
		}
		keys = append(keys, sb.String())
	}
	sort.Strings(keys)
	return keys
}

// Equivalent reports whether two lines describe the same item configuration:
// same item, null-safe same size, identical multiset of
// (customization, sorted options) pairs. A missing customization list on
// either side counts as empty.
func (l *OrderLine) Equivalent(other *OrderLine) bool {
	if l.ItemCode != other.ItemCode {
		return false
	}
	if (l.Size == nil) != (other.Size == nil) {
		return false
	}
	if l.Size != nil && *l.Size != *other.Size {
		return false
	}
	a, b := l.customizationKeys(), other.customizationKeys()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Order is the aggregate root for one transaction. It exclusively owns its
// lines and keeps Total equal to the sum of line subtotals after every
// mutation.
type Order struct {
	ID            int64         `json:"id,omitempty" db:"id"`
	Number        string        `json:"order_number" db:"number"`
	CustomerID    int64         `json:"customer_id" db:"customer_id"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CashierName   string        `json:"cashier_name" db:"cashier_name"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	Status        OrderStatus   `json:"status" db:"status"`
	Lines         []*OrderLine  `json:"lines"`
	Total         Money         `json:"total" db:"total"`
	CreatedAt     time.Time     `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}

// NewOrder creates a pending order with no lines
func NewOrder(number string, customer *Customer, cashierName string, payment PaymentMethod) *Order {
	return &Order{
		Number:        number,
		CustomerID:    customer.ID,
		CustomerName:  customer.FirstName,
		CashierName:   cashierName,
		PaymentMethod: payment,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

// AddLine merges the line into an equivalent existing line or appends it,
// then recomputes the total. Mutation is rejected once the order is terminal.
func (o *Order) AddLine(line *OrderLine) error {
	if o.Status.Terminal() {
		return InvalidStateError{Current: o.Status, Attempted: o.Status}
	}
	merged := false
	for _, existing := range o.Lines {
		if existing.Equivalent(line) {
			existing.Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		o.Lines = append(o.Lines, line)
	}
	o.recalculateTotal()
	return nil
}

// RemoveLine removes a line by identity and recomputes the total
func (o *Order) RemoveLine(line *OrderLine) error {
	if o.Status.Terminal() {
		return InvalidStateError{Current: o.Status, Attempted: o.Status}
	}
	for i, existing := range o.Lines {
		if existing == line {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			o.recalculateTotal()
			return nil
		}
	}
	return NotFoundError{Entity: "order line", Key: line.ItemCode}
}

// recalculateTotal recomputes the full sum over lines rather than adjusting
// incrementally, so the total can never drift from its parts.
func (o *Order) recalculateTotal() {
	var total Money
	for _, line := range o.Lines {
		total += line.Subtotal()
	}
	o.Total = total
}

// Complete transitions a pending order to completed. Completion never
// re-prices; price integrity is guaranteed at build time.
func (o *Order) Complete() error {
	return o.transition(StatusCompleted)
}

// Cancel transitions a pending order to cancelled
func (o *Order) Cancel() error {
	return o.transition(StatusCancelled)
}

func (o *Order) transition(to OrderStatus) error {
	if o.Status != StatusPending {
		return InvalidStateError{Current: o.Status, Attempted: to}
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// GenerateOrderNumber builds an order number in the POS_YYYYMMDD_NNN format
func GenerateOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("POS_%s_%03d", date.Format("20060102"), sequence)
}

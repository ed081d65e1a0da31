package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

func TestFormatReceipt(t *testing.T) {
	large := models.SizeLarge
	receipt := &models.ReceiptMessage{
		OrderNumber:   "POS_20260115_001",
		CustomerName:  "Alex",
		CashierName:   "pos-terminal",
		PaymentMethod: models.PaymentCash,
		Status:        models.StatusCompleted,
		Lines: []models.ReceiptLine{
			{ItemName: "Cafe Latte", Quantity: 2, Size: &large, UnitPrice: 160, Subtotal: 320},
			{ItemName: "Blueberry Muffin", Quantity: 1, UnitPrice: 110, Subtotal: 110},
		},
		Total:     430,
		Timestamp: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	rendered := formatReceipt(receipt)

	for _, want := range []string{
		"POS_20260115_001",
		"Cafe Latte (large)",
		"Blueberry Muffin",
		"430",
		"cash",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("receipt missing %q:\n%s", want, rendered)
		}
	}
}

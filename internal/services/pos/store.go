package pos

import (
	"context"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// CatalogStore is the read-only catalog access the pricing core needs.
// Implementations return models.NotFoundError for unknown keys.
type CatalogStore interface {
	GetItemByCode(ctx context.Context, code string) (*models.Item, error)
	GetCustomization(ctx context.Context, id int64) (*models.Customization, error)
}

// CustomerResolver resolves a membership id or guest name to a customer
type CustomerResolver interface {
	Resolve(ctx context.Context, membershipID, guestFirstName string) (*models.Customer, error)
}

// OrderStore persists order graphs and supports lifecycle updates
type OrderStore interface {
	NextOrderSequence(ctx context.Context, date time.Time) (int, error)
	SaveOrder(ctx context.Context, order *models.Order) error
	GetOrderByNumber(ctx context.Context, number string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order) error
	ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]*models.Order, error)
	Ping(ctx context.Context) error
}

// CustomizationSelection is one requested customization with its chosen
// option ids.
type CustomizationSelection struct {
	CustomizationID int64   `json:"customization_id"`
	OptionIDs       []int64 `json:"option_ids"`
}

// LineRequest is one requested order line
type LineRequest struct {
	ItemCode       string                   `json:"item_code"`
	Quantity       int                      `json:"quantity"`
	Size           string                   `json:"size,omitempty"`
	Customizations []CustomizationSelection `json:"customizations,omitempty"`
	Notes          string                   `json:"notes,omitempty"`
}

// TransactionRequest is an incoming order submission
type TransactionRequest struct {
	MembershipID   string        `json:"membership_id,omitempty"`
	GuestFirstName string        `json:"guest_first_name,omitempty"`
	PaymentMethod  string        `json:"payment_method"`
	SettleNow      bool          `json:"settle_now,omitempty"`
	Lines          []LineRequest `json:"lines"`
}

// TransactionResponse reports a built order. Warning carries a non-fatal
// notification delivery failure; the order itself succeeded.
type TransactionResponse struct {
	OrderNumber string              `json:"order_number"`
	Status      models.OrderStatus  `json:"status"`
	Total       models.Money        `json:"total"`
	Lines       []*models.OrderLine `json:"lines"`
	Warning     string              `json:"warning,omitempty"`
}

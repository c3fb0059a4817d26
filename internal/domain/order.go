package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderSubmitted OrderStatus = "submitted"
)

// MaxLineQuantity caps the quantity of a single order line.
const MaxLineQuantity = 999

func ValidateQuantity(qty int) error {
	if qty < 1 || qty > MaxLineQuantity {
		return Validationf("quantity must be between 1 and %d, got %d", MaxLineQuantity, qty)
	}
	return nil
}

type Order struct {
	ID          uint
	GroupID     uuid.UUID
	Participant Participant
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubmittedAt *time.Time
	Items       []OrderItem
}

// ComputeTotal sums the subtotals of the order lines.
func (o Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

type OrderItem struct {
	ID          uint            `json:"id"`
	OrderID     uint            `json:"order_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (it OrderItem) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Product is the catalog snapshot captured when a line is added.
type Product struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	IsAvailable bool            `json:"is_available"`
}

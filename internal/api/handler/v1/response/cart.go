package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type Participant struct {
	Kind        string `json:"kind"`
	Ref         string `json:"ref"`
	DisplayName string `json:"display_name"`
}

type Order struct {
	ID          uint               `json:"id"`
	GroupID     uuid.UUID          `json:"group_id"`
	Participant string             `json:"participant_ref"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Note        string             `json:"note,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
	Items       []Item             `json:"items"`
}

type Item struct {
	domain.OrderItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Bundle struct {
	Participant Participant     `json:"participant"`
	Orders      []Order         `json:"orders"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type CartStatus struct {
	Group               domain.OrderGroup   `json:"group"`
	State               domain.SessionState `json:"state"`
	Draft               []Bundle            `json:"draft"`
	Submitted           []Bundle            `json:"submitted"`
	Totals              domain.GroupTotals  `json:"totals"`
	CanSubmitFirstOrder bool                `json:"can_submit_first_order"`
	CanAddOrder         bool                `json:"can_add_order"`
}

type JoinGuest struct {
	Token uuid.UUID    `json:"token"`
	Guest domain.Guest `json:"guest"`
}

func NewOrder(o domain.Order) Order {
	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		items[i] = Item{OrderItem: it, Subtotal: it.Subtotal()}
	}

	return Order{
		ID:          o.ID,
		GroupID:     o.GroupID,
		Participant: o.Participant.Ref(),
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		Note:        o.Note,
		CreatedAt:   o.CreatedAt,
		SubmittedAt: o.SubmittedAt,
		Items:       items,
	}
}

func NewBundles(bundles []domain.ParticipantOrders) []Bundle {
	result := make([]Bundle, len(bundles))
	for i, b := range bundles {
		orders := make([]Order, len(b.Orders))
		for j, o := range b.Orders {
			orders[j] = NewOrder(o)
		}
		result[i] = Bundle{
			Participant: Participant{
				Kind:        domain.ParticipantKind(b.Participant),
				Ref:         b.Participant.Ref(),
				DisplayName: b.DisplayName,
			},
			Orders:   orders,
			Subtotal: b.Subtotal,
		}
	}

	return result
}

func NewCartStatus(s domain.CartStatus) CartStatus {
	return CartStatus{
		Group:               s.Group,
		State:               s.Group.State(),
		Draft:               NewBundles(s.Draft),
		Submitted:           NewBundles(s.Submitted),
		Totals:              s.Totals,
		CanSubmitFirstOrder: s.CanSubmitFirstOrder,
		CanAddOrder:         s.CanAddOrder,
	}
}

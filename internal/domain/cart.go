package domain

import (
	"github.com/shopspring/decimal"
)

// ParticipantOrders bundles the orders of one participant in one status.
type ParticipantOrders struct {
	Participant Participant
	DisplayName string
	Orders      []Order
	Subtotal    decimal.Decimal
}

type GroupTotals struct {
	TotalCart      decimal.Decimal `json:"total_cart"`
	TotalSubmitted decimal.Decimal `json:"total_submitted"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

type ParticipantSpend struct {
	DisplayName string          `json:"display_name"`
	Total       decimal.Decimal `json:"total"`
	OrderCount  int             `json:"order_count"`
}

type CartStatus struct {
	Group               OrderGroup
	Draft               []ParticipantOrders
	Submitted           []ParticipantOrders
	Totals              GroupTotals
	CanSubmitFirstOrder bool
	CanAddOrder         bool
}

// BundleByParticipant groups orders per participant reference keeping the order of
// first appearance. name resolves the display name of a participant.
func BundleByParticipant(orders []Order, name func(Participant) string) []ParticipantOrders {
	var bundles []ParticipantOrders
	index := make(map[string]int)
	for _, o := range orders {
		ref := o.Participant.Ref()
		i, ok := index[ref]
		if !ok {
			i = len(bundles)
			index[ref] = i
			bundles = append(bundles, ParticipantOrders{
				Participant: o.Participant,
				DisplayName: name(o.Participant),
				Subtotal:    decimal.Zero,
			})
		}
		bundles[i].Orders = append(bundles[i].Orders, o)
		bundles[i].Subtotal = bundles[i].Subtotal.Add(o.TotalAmount)
	}
	return bundles
}

// SumTotals computes the cart totals of a group from all of its orders.
func SumTotals(orders []Order) GroupTotals {
	totals := GroupTotals{TotalCart: decimal.Zero, TotalSubmitted: decimal.Zero}
	for _, o := range orders {
		switch o.Status {
		case OrderDraft:
			totals.TotalCart = totals.TotalCart.Add(o.TotalAmount)
		case OrderSubmitted:
			totals.TotalSubmitted = totals.TotalSubmitted.Add(o.TotalAmount)
		}
	}
	totals.GrandTotal = totals.TotalCart.Add(totals.TotalSubmitted)
	return totals
}

// SpendByDisplayName sums submitted orders per display name in first seen order.
func SpendByDisplayName(orders []Order, name func(Participant) string) []ParticipantSpend {
	var spend []ParticipantSpend
	index := make(map[string]int)
	for _, o := range orders {
		if o.Status != OrderSubmitted {
			continue
		}
		n := name(o.Participant)
		i, ok := index[n]
		if !ok {
			i = len(spend)
			index[n] = i
			spend = append(spend, ParticipantSpend{DisplayName: n, Total: decimal.Zero})
		}
		spend[i].Total = spend[i].Total.Add(o.TotalAmount)
		spend[i].OrderCount++
	}
	return spend
}

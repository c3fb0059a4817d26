package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderGroup is one dining session on a table.
type OrderGroup struct {
	ID          uuid.UUID       `json:"id"`
	TableID     uint            `json:"table_id"`
	Active      bool            `json:"active"`
	HasOrder    bool            `json:"has_order"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	OrderIDs    []uint          `json:"order_ids"`
}

func (g OrderGroup) CanSubmitFirstOrder() bool {
	return !g.HasOrder && g.Active
}

func (g OrderGroup) CanAddOrder() bool {
	return g.HasOrder && g.Active
}

// AcceptsItems reports whether draft lines may still be added to the group.
func (g OrderGroup) AcceptsItems() bool {
	return g.CanSubmitFirstOrder() || g.CanAddOrder()
}

type SessionState string

const (
	SessionOpenNoOrder  SessionState = "open_no_order"
	SessionOpenHasOrder SessionState = "open_has_order"
	SessionClosed       SessionState = "closed"
)

func (g OrderGroup) State() SessionState {
	switch {
	case !g.Active:
		return SessionClosed
	case g.HasOrder:
		return SessionOpenHasOrder
	default:
		return SessionOpenNoOrder
	}
}

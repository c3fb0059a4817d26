package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]domain.Order, error)
	FindByGroupIDAndStatus(ctx context.Context, groupID uuid.UUID, status domain.OrderStatus) ([]domain.Order, error)
	FindDraftByParticipant(ctx context.Context, groupID uuid.UUID, p domain.Participant) (domain.Order, error)
	MarkSubmitted(ctx context.Context, id uint, total decimal.Decimal, at time.Time) (bool, error)
	UpdateTotal(ctx context.Context, id uint, total decimal.Decimal) error
	FindItemByID(ctx context.Context, id uint) (domain.OrderItem, error)
	FindItemByProduct(ctx context.Context, orderID, productID uint, note string) (domain.OrderItem, error)
	AddItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error)
	UpdateItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error)
	DeleteItem(ctx context.Context, id uint) error
}

// ProductCatalog returns the current catalog entry of a product.
type ProductCatalog interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type ParticipantDirectory interface {
	Resolve(ctx context.Context, groupID uuid.UUID, caller domain.Caller) (domain.Participant, error)
	Namer(ctx context.Context, participants []domain.Participant) (func(domain.Participant) string, error)
}

type CartService struct {
	orders       OrderRepository
	groups       OrderGroupRepository
	products     ProductCatalog
	participants ParticipantDirectory
	tx           Transactor
	events       EventPublisher
}

func NewCartService(
	orders OrderRepository,
	groups OrderGroupRepository,
	products ProductCatalog,
	participants ParticipantDirectory,
	tx Transactor,
	events EventPublisher,
) *CartService {
	return &CartService{
		orders:       orders,
		groups:       groups,
		products:     products,
		participants: participants,
		tx:           tx,
		events:       events,
	}
}

func (s *CartService) ListDraft(ctx context.Context, groupID uuid.UUID) ([]domain.ParticipantOrders, error) {
	return s.listByStatus(ctx, groupID, domain.OrderDraft)
}

func (s *CartService) ListSubmitted(ctx context.Context, groupID uuid.UUID) ([]domain.ParticipantOrders, error) {
	return s.listByStatus(ctx, groupID, domain.OrderSubmitted)
}

func (s *CartService) listByStatus(ctx context.Context, groupID uuid.UUID, status domain.OrderStatus) ([]domain.ParticipantOrders, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return nil, fmt.Errorf("s.groups.FindByID -> %w", err)
	}
	orders, err := s.orders.FindByGroupIDAndStatus(ctx, groupID, status)
	if err != nil {
		return nil, fmt.Errorf("s.orders.FindByGroupIDAndStatus -> %w", err)
	}
	name, err := s.namer(ctx, orders)
	if err != nil {
		return nil, err
	}

	return domain.BundleByParticipant(orders, name), nil
}

// OpenDraft returns the draft order of the caller in the group, creating it on first use.
func (s *CartService) OpenDraft(ctx context.Context, groupID uuid.UUID, caller domain.Caller) (domain.Order, error) {
	var order domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := s.groups.FindByIDForUpdate(ctx, groupID)
		if err != nil {
			return fmt.Errorf("s.groups.FindByIDForUpdate -> %w", err)
		}
		if !group.AcceptsItems() {
			return domain.Statef("order group %s is closed", groupID)
		}

		participant, err := s.participants.Resolve(ctx, groupID, caller)
		if err != nil {
			return fmt.Errorf("s.participants.Resolve -> %w", err)
		}

		order, err = s.orders.FindDraftByParticipant(ctx, groupID, participant)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, ErrOrderNotFound):
			return fmt.Errorf("s.orders.FindDraftByParticipant -> %w", err)
		}

		order, err = s.orders.Create(ctx, domain.Order{
			GroupID:     groupID,
			Participant: participant,
			Status:      domain.OrderDraft,
			TotalAmount: decimal.Zero,
		})
		if err != nil {
			return fmt.Errorf("s.orders.Create -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

// AddItem adds qty of a product to a draft order. A line with the same product and
// note absorbs the quantity and keeps the price it was captured with.
func (s *CartService) AddItem(ctx context.Context, orderID, productID uint, qty int, note string) (domain.Order, error) {
	if err := domain.ValidateQuantity(qty); err != nil {
		return domain.Order{}, err
	}
	note = strings.TrimSpace(note)

	var order domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		draft, err := s.lockDraft(ctx, orderID)
		if err != nil {
			return err
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("s.products.FindByID -> %w", err)
		}
		if !product.IsAvailable {
			return domain.Validationf("product %q is not available", product.Name)
		}

		line, err := s.orders.FindItemByProduct(ctx, orderID, productID, note)
		switch {
		case err == nil:
			if err := domain.ValidateQuantity(line.Quantity + qty); err != nil {
				return err
			}
			line.Quantity += qty
			if _, err := s.orders.UpdateItem(ctx, line); err != nil {
				return fmt.Errorf("s.orders.UpdateItem -> %w", err)
			}
		case errors.Is(err, ErrOrderItemNotFound):
			_, err := s.orders.AddItem(ctx, domain.OrderItem{
				OrderID:     draft.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.UnitPrice,
				Quantity:    qty,
				Note:        note,
			})
			if err != nil {
				return fmt.Errorf("s.orders.AddItem -> %w", err)
			}
		default:
			return fmt.Errorf("s.orders.FindItemByProduct -> %w", err)
		}

		order, err = s.recomputeOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

// AddItemForCaller adds a line to the caller's draft in the group, opening the draft
// on first use. A failed add leaves no draft behind.
func (s *CartService) AddItemForCaller(
	ctx context.Context,
	groupID uuid.UUID,
	caller domain.Caller,
	productID uint,
	qty int,
	note string,
) (domain.Order, error) {
	var order domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		draft, err := s.OpenDraft(ctx, groupID, caller)
		if err != nil {
			return fmt.Errorf("s.OpenDraft -> %w", err)
		}

		order, err = s.AddItem(ctx, draft.ID, productID, qty, note)
		if err != nil {
			return fmt.Errorf("s.AddItem -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

// UpdateItem changes the quantity and note of a draft line.
func (s *CartService) UpdateItem(ctx context.Context, itemID uint, qty int, note string) (domain.Order, error) {
	if err := domain.ValidateQuantity(qty); err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		line, err := s.orders.FindItemByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("s.orders.FindItemByID -> %w", err)
		}
		if _, err := s.lockDraft(ctx, line.OrderID); err != nil {
			return err
		}

		line.Quantity = qty
		line.Note = strings.TrimSpace(note)
		if _, err := s.orders.UpdateItem(ctx, line); err != nil {
			return fmt.Errorf("s.orders.UpdateItem -> %w", err)
		}

		order, err = s.recomputeOrder(ctx, line.OrderID)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (s *CartService) RemoveItem(ctx context.Context, itemID uint) (domain.Order, error) {
	var order domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		line, err := s.orders.FindItemByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("s.orders.FindItemByID -> %w", err)
		}
		if _, err := s.lockDraft(ctx, line.OrderID); err != nil {
			return err
		}
		if err := s.orders.DeleteItem(ctx, itemID); err != nil {
			return fmt.Errorf("s.orders.DeleteItem -> %w", err)
		}

		order, err = s.recomputeOrder(ctx, line.OrderID)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

// Submit moves a draft order to submitted and folds its total into the group. Only one
// of several concurrent submits of the same order succeeds; the others get a state error.
func (s *CartService) Submit(ctx context.Context, orderID uint) (domain.Order, error) {
	var (
		order domain.Order
		group domain.OrderGroup
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		draft, err := s.lockDraft(ctx, orderID)
		if err != nil {
			return err
		}
		if len(draft.Items) == 0 {
			return domain.Validationf("order %d has no items", orderID)
		}

		total := draft.ComputeTotal()
		ok, err := s.orders.MarkSubmitted(ctx, orderID, total, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("s.orders.MarkSubmitted -> %w", err)
		}
		if !ok {
			return domain.Statef("order %d has already been submitted", orderID)
		}

		submitted, err := s.orders.FindByGroupIDAndStatus(ctx, draft.GroupID, domain.OrderSubmitted)
		if err != nil {
			return fmt.Errorf("s.orders.FindByGroupIDAndStatus -> %w", err)
		}
		group, err = s.groups.FindByIDForUpdate(ctx, draft.GroupID)
		if err != nil {
			return fmt.Errorf("s.groups.FindByIDForUpdate -> %w", err)
		}
		group.HasOrder = true
		group.TotalAmount = domain.SumTotals(submitted).TotalSubmitted
		group, err = s.groups.Update(ctx, group)
		if err != nil {
			return fmt.Errorf("s.groups.Update -> %w", err)
		}

		order, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("s.orders.FindByID -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	e := domain.NewEvent(domain.EventOrderSubmitted)
	e.TableID = group.TableID
	e.GroupID = group.ID.String()
	e.OrderID = order.ID
	e.Payload = map[string]any{"order_total": order.TotalAmount, "group_total": group.TotalAmount}
	publish(ctx, s.events, e)

	return order, nil
}

func (s *CartService) ComputeGroupTotals(ctx context.Context, groupID uuid.UUID) (domain.GroupTotals, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return domain.GroupTotals{}, fmt.Errorf("s.groups.FindByID -> %w", err)
	}
	orders, err := s.orders.FindByGroupID(ctx, groupID)
	if err != nil {
		return domain.GroupTotals{}, fmt.Errorf("s.orders.FindByGroupID -> %w", err)
	}

	return domain.SumTotals(orders), nil
}

// PerParticipantSpend sums submitted orders per display name for bill splitting.
func (s *CartService) PerParticipantSpend(ctx context.Context, groupID uuid.UUID) ([]domain.ParticipantSpend, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return nil, fmt.Errorf("s.groups.FindByID -> %w", err)
	}
	orders, err := s.orders.FindByGroupIDAndStatus(ctx, groupID, domain.OrderSubmitted)
	if err != nil {
		return nil, fmt.Errorf("s.orders.FindByGroupIDAndStatus -> %w", err)
	}
	name, err := s.namer(ctx, orders)
	if err != nil {
		return nil, err
	}

	return domain.SpendByDisplayName(orders, name), nil
}

func (s *CartService) CartStatus(ctx context.Context, groupID uuid.UUID) (domain.CartStatus, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return domain.CartStatus{}, fmt.Errorf("s.groups.FindByID -> %w", err)
	}
	orders, err := s.orders.FindByGroupID(ctx, groupID)
	if err != nil {
		return domain.CartStatus{}, fmt.Errorf("s.orders.FindByGroupID -> %w", err)
	}
	name, err := s.namer(ctx, orders)
	if err != nil {
		return domain.CartStatus{}, err
	}

	var draft, submitted []domain.Order
	for _, o := range orders {
		if o.Status == domain.OrderSubmitted {
			submitted = append(submitted, o)
		} else {
			draft = append(draft, o)
		}
	}

	return domain.CartStatus{
		Group:               group,
		Draft:               domain.BundleByParticipant(draft, name),
		Submitted:           domain.BundleByParticipant(submitted, name),
		Totals:              domain.SumTotals(orders),
		CanSubmitFirstOrder: group.CanSubmitFirstOrder(),
		CanAddOrder:         group.CanAddOrder(),
	}, nil
}

// lockDraft locks the group of an order and returns the order once it is known to be
// a draft of a group that still takes items.
func (s *CartService) lockDraft(ctx context.Context, orderID uint) (domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.orders.FindByID -> %w", err)
	}
	group, err := s.groups.FindByIDForUpdate(ctx, order.GroupID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.groups.FindByIDForUpdate -> %w", err)
	}
	if !group.AcceptsItems() {
		return domain.Order{}, domain.Statef("order group %s is closed", group.ID)
	}

	// Re-read under the group lock so a submit that committed meanwhile is seen.
	order, err = s.orders.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.orders.FindByID -> %w", err)
	}
	if order.Status != domain.OrderDraft {
		return domain.Order{}, domain.Statef("order %d is %s, not draft", orderID, order.Status)
	}

	return order, nil
}

func (s *CartService) recomputeOrder(ctx context.Context, orderID uint) (domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.orders.FindByID -> %w", err)
	}
	order.TotalAmount = order.ComputeTotal()
	if err := s.orders.UpdateTotal(ctx, orderID, order.TotalAmount); err != nil {
		return domain.Order{}, fmt.Errorf("s.orders.UpdateTotal -> %w", err)
	}

	return order, nil
}

func (s *CartService) namer(ctx context.Context, orders []domain.Order) (func(domain.Participant) string, error) {
	participants := make([]domain.Participant, len(orders))
	for i, o := range orders {
		participants[i] = o.Participant
	}
	name, err := s.participants.Namer(ctx, participants)
	if err != nil {
		return nil, fmt.Errorf("s.participants.Namer -> %w", err)
	}

	return name, nil
}

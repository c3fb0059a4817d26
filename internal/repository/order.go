package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
)

type OrderDAO interface {
	Insert(ctx context.Context, order dao.Order) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	FindByIDForUpdate(ctx context.Context, id uint) (dao.Order, error)
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]dao.Order, error)
	FindByGroupIDAndStatus(ctx context.Context, groupID uuid.UUID, status string) ([]dao.Order, error)
	FindDraftByParticipant(ctx context.Context, groupID uuid.UUID, participantRef string) (dao.Order, error)
	MarkSubmitted(ctx context.Context, id uint, total decimal.Decimal, at time.Time) (bool, error)
	UpdateTotal(ctx context.Context, id uint, total decimal.Decimal) error
	FindItemsByOrderIDs(ctx context.Context, orderIDs []uint) ([]dao.OrderItem, error)
	FindItemByID(ctx context.Context, id uint) (dao.OrderItem, error)
	FindItemByProduct(ctx context.Context, orderID, productID uint, note string) (dao.OrderItem, error)
	InsertItem(ctx context.Context, item dao.OrderItem) (dao.OrderItem, error)
	UpdateItem(ctx context.Context, item dao.OrderItem) (dao.OrderItem, error)
	DeleteItem(ctx context.Context, id uint) error
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func (r *OrderRepository) daoToDomain(o dao.Order) (domain.Order, error) {
	participant, err := domain.ParseParticipantRef(o.ParticipantRef)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %d: %w", o.ID, err)
	}
	return domain.Order{
		ID:          o.ID,
		GroupID:     o.GroupID,
		Participant: participant,
		Status:      domain.OrderStatus(o.Status),
		TotalAmount: o.TotalAmount,
		Note:        o.Note,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		SubmittedAt: o.SubmittedAt,
		Items:       []domain.OrderItem{},
	}, nil
}

func (r *OrderRepository) itemToDomain(it dao.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ID:          it.ID,
		OrderID:     it.OrderID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		UnitPrice:   it.UnitPrice,
		Quantity:    it.Quantity,
		Note:        it.Note,
		CreatedAt:   it.CreatedAt,
	}
}

func (r *OrderRepository) itemToDao(it domain.OrderItem) dao.OrderItem {
	return dao.OrderItem{
		ID:          it.ID,
		OrderID:     it.OrderID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		UnitPrice:   it.UnitPrice,
		Quantity:    it.Quantity,
		Note:        it.Note,
		CreatedAt:   it.CreatedAt,
	}
}

// withItems maps orders and attaches their lines with a single item query.
func (r *OrderRepository) withItems(ctx context.Context, orders []dao.Order) ([]domain.Order, error) {
	result := make([]domain.Order, 0, len(orders))
	if len(orders) == 0 {
		return result, nil
	}
	ids := make([]uint, len(orders))
	index := make(map[uint]int, len(orders))
	for i, o := range orders {
		mapped, err := r.daoToDomain(o)
		if err != nil {
			return nil, err
		}
		ids[i] = o.ID
		index[o.ID] = i
		result = append(result, mapped)
	}
	items, err := r.dao.FindItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindItemsByOrderIDs -> %w", err)
	}
	for _, it := range items {
		i := index[it.OrderID]
		result[i].Items = append(result[i].Items, r.itemToDomain(it))
	}
	return result, nil
}

func (r *OrderRepository) one(ctx context.Context, o dao.Order) (domain.Order, error) {
	orders, err := r.withItems(ctx, []dao.Order{o})
	if err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.Insert(ctx, dao.Order{
		GroupID:        order.GroupID,
		ParticipantRef: order.Participant.Ref(),
		Status:         string(order.Status),
		TotalAmount:    order.TotalAmount,
		Note:           order.Note,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return r.daoToDomain(created)
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	return r.one(ctx, found)
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByIDForUpdate -> %w", err)
	}
	return r.one(ctx, found)
}

func (r *OrderRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]domain.Order, error) {
	orders, err := r.dao.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByGroupID -> %w", err)
	}
	return r.withItems(ctx, orders)
}

func (r *OrderRepository) FindByGroupIDAndStatus(ctx context.Context, groupID uuid.UUID, status domain.OrderStatus) ([]domain.Order, error) {
	orders, err := r.dao.FindByGroupIDAndStatus(ctx, groupID, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByGroupIDAndStatus -> %w", err)
	}
	return r.withItems(ctx, orders)
}

func (r *OrderRepository) FindDraftByParticipant(ctx context.Context, groupID uuid.UUID, p domain.Participant) (domain.Order, error) {
	found, err := r.dao.FindDraftByParticipant(ctx, groupID, p.Ref())
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindDraftByParticipant -> %w", err)
	}
	return r.one(ctx, found)
}

// MarkSubmitted moves a draft order to submitted. It reports false when the order
// was no longer a draft.
func (r *OrderRepository) MarkSubmitted(ctx context.Context, id uint, total decimal.Decimal, at time.Time) (bool, error) {
	ok, err := r.dao.MarkSubmitted(ctx, id, total, at)
	if err != nil {
		return false, fmt.Errorf("r.dao.MarkSubmitted -> %w", err)
	}
	return ok, nil
}

func (r *OrderRepository) UpdateTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	if err := r.dao.UpdateTotal(ctx, id, total); err != nil {
		return fmt.Errorf("r.dao.UpdateTotal -> %w", err)
	}
	return nil
}

func (r *OrderRepository) FindItemByID(ctx context.Context, id uint) (domain.OrderItem, error) {
	found, err := r.dao.FindItemByID(ctx, id)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("r.dao.FindItemByID -> %w", err)
	}
	return r.itemToDomain(found), nil
}

func (r *OrderRepository) FindItemByProduct(ctx context.Context, orderID, productID uint, note string) (domain.OrderItem, error) {
	found, err := r.dao.FindItemByProduct(ctx, orderID, productID, note)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("r.dao.FindItemByProduct -> %w", err)
	}
	return r.itemToDomain(found), nil
}

func (r *OrderRepository) AddItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	created, err := r.dao.InsertItem(ctx, r.itemToDao(item))
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("r.dao.InsertItem -> %w", err)
	}
	return r.itemToDomain(created), nil
}

func (r *OrderRepository) UpdateItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	updated, err := r.dao.UpdateItem(ctx, r.itemToDao(item))
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("r.dao.UpdateItem -> %w", err)
	}
	return r.itemToDomain(updated), nil
}

func (r *OrderRepository) DeleteItem(ctx context.Context, id uint) error {
	if err := r.dao.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteItem -> %w", err)
	}
	return nil
}

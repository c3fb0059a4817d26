package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
)

type OrderGroupDAO interface {
	Insert(ctx context.Context, group dao.OrderGroup) (dao.OrderGroup, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.OrderGroup, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (dao.OrderGroup, error)
	FindActiveByTableID(ctx context.Context, tableID uint) (dao.OrderGroup, error)
	Update(ctx context.Context, group dao.OrderGroup) (dao.OrderGroup, error)
}

// OrderIDLister lists the orders recorded under a group.
type OrderIDLister interface {
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]dao.Order, error)
}

type OrderGroupRepository struct {
	dao    OrderGroupDAO
	orders OrderIDLister
}

func NewOrderGroupRepository(dao OrderGroupDAO, orders OrderIDLister) *OrderGroupRepository {
	return &OrderGroupRepository{
		dao:    dao,
		orders: orders,
	}
}

func (r *OrderGroupRepository) domainToDao(g domain.OrderGroup) dao.OrderGroup {
	return dao.OrderGroup{
		ID:          g.ID,
		TableID:     g.TableID,
		Active:      g.Active,
		HasOrder:    g.HasOrder,
		TotalAmount: g.TotalAmount,
		CreatedAt:   g.CreatedAt,
		CompletedAt: g.CompletedAt,
	}
}

func (r *OrderGroupRepository) daoToDomain(g dao.OrderGroup) domain.OrderGroup {
	return domain.OrderGroup{
		ID:          g.ID,
		TableID:     g.TableID,
		Active:      g.Active,
		HasOrder:    g.HasOrder,
		TotalAmount: g.TotalAmount,
		CreatedAt:   g.CreatedAt,
		CompletedAt: g.CompletedAt,
		OrderIDs:    []uint{},
	}
}

func (r *OrderGroupRepository) withOrderIDs(ctx context.Context, g dao.OrderGroup) (domain.OrderGroup, error) {
	group := r.daoToDomain(g)
	orders, err := r.orders.FindByGroupID(ctx, g.ID)
	if err != nil {
		return domain.OrderGroup{}, fmt.Errorf("r.orders.FindByGroupID -> %w", err)
	}
	for _, o := range orders {
		group.OrderIDs = append(group.OrderIDs, o.ID)
	}
	return group, nil
}

func (r *OrderGroupRepository) Create(ctx context.Context, group domain.OrderGroup) (domain.OrderGroup, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(group))
	if err != nil {
		return domain.OrderGroup{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return r.daoToDomain(created), nil
}

func (r *OrderGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.OrderGroup, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.OrderGroup{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	return r.withOrderIDs(ctx, found)
}

func (r *OrderGroupRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.OrderGroup, error) {
	found, err := r.dao.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.OrderGroup{}, fmt.Errorf("r.dao.FindByIDForUpdate -> %w", err)
	}
	return r.withOrderIDs(ctx, found)
}

func (r *OrderGroupRepository) FindActiveByTableID(ctx context.Context, tableID uint) (domain.OrderGroup, error) {
	found, err := r.dao.FindActiveByTableID(ctx, tableID)
	if err != nil {
		return domain.OrderGroup{}, fmt.Errorf("r.dao.FindActiveByTableID -> %w", err)
	}
	return r.withOrderIDs(ctx, found)
}

func (r *OrderGroupRepository) Update(ctx context.Context, group domain.OrderGroup) (domain.OrderGroup, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(group))
	if err != nil {
		return domain.OrderGroup{}, fmt.Errorf("r.dao.Update -> %w", err)
	}
	return r.withOrderIDs(ctx, updated)
}

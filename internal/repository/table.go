package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
)

type TableDAO interface {
	LockCanvas(ctx context.Context) error
	Insert(ctx context.Context, table dao.Table) (dao.Table, error)
	FindByID(ctx context.Context, id uint) (dao.Table, error)
	FindByIDForUpdate(ctx context.Context, id uint) (dao.Table, error)
	FindByNumber(ctx context.Context, number int) (dao.Table, error)
	FindAll(ctx context.Context) ([]dao.Table, error)
	FindByStatus(ctx context.Context, status string) ([]dao.Table, error)
	Update(ctx context.Context, table dao.Table) (dao.Table, error)
	UpdatePosition(ctx context.Context, id uint, x, y int) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type TableRepository struct {
	dao TableDAO
}

func NewTableRepository(dao TableDAO) *TableRepository {
	return &TableRepository{
		dao: dao,
	}
}

func (r *TableRepository) domainToDao(t domain.Table) dao.Table {
	return dao.Table{
		ID:        t.ID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Shape:     string(t.Shape),
		X:         t.X,
		Y:         t.Y,
		Width:     t.Width,
		Height:    t.Height,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r *TableRepository) daoToDomain(t dao.Table) domain.Table {
	return domain.Table{
		ID:        t.ID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Shape:     domain.TableShape(t.Shape),
		X:         t.X,
		Y:         t.Y,
		Width:     t.Width,
		Height:    t.Height,
		Status:    domain.TableStatus(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r *TableRepository) daosToDomain(tables []dao.Table) []domain.Table {
	result := make([]domain.Table, len(tables))
	for i, t := range tables {
		result[i] = r.daoToDomain(t)
	}
	return result
}

func (r *TableRepository) LockCanvas(ctx context.Context) error {
	if err := r.dao.LockCanvas(ctx); err != nil {
		return fmt.Errorf("r.dao.LockCanvas -> %w", err)
	}
	return nil
}

func (r *TableRepository) Create(ctx context.Context, table domain.Table) (domain.Table, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(table))
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return r.daoToDomain(created), nil
}

func (r *TableRepository) FindByID(ctx context.Context, id uint) (domain.Table, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	return r.daoToDomain(found), nil
}

func (r *TableRepository) FindByIDForUpdate(ctx context.Context, id uint) (domain.Table, error) {
	found, err := r.dao.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.FindByIDForUpdate -> %w", err)
	}
	return r.daoToDomain(found), nil
}

func (r *TableRepository) FindByNumber(ctx context.Context, number int) (domain.Table, error) {
	found, err := r.dao.FindByNumber(ctx, number)
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.FindByNumber -> %w", err)
	}
	return r.daoToDomain(found), nil
}

func (r *TableRepository) FindAll(ctx context.Context) ([]domain.Table, error) {
	tables, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}
	return r.daosToDomain(tables), nil
}

func (r *TableRepository) FindByStatus(ctx context.Context, status domain.TableStatus) ([]domain.Table, error) {
	tables, err := r.dao.FindByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}
	return r.daosToDomain(tables), nil
}

func (r *TableRepository) Update(ctx context.Context, table domain.Table) (domain.Table, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(table))
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.Update -> %w", err)
	}
	return r.daoToDomain(updated), nil
}

func (r *TableRepository) UpdatePosition(ctx context.Context, id uint, x, y int) error {
	if err := r.dao.UpdatePosition(ctx, id, x, y); err != nil {
		return fmt.Errorf("r.dao.UpdatePosition -> %w", err)
	}
	return nil
}

func (r *TableRepository) UpdateStatus(ctx context.Context, id uint, status domain.TableStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}
	return nil
}

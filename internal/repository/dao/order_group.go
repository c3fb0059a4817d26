package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGroup struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TableID     uint            `gorm:"not null;uniqueIndex:idx_order_groups_active_table,where:active = true"`
	Active      bool            `gorm:"not null;index"`
	HasOrder    bool            `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

type OrderGroupDAO struct {
	db *gorm.DB
}

func NewOrderGroupDAO(db *gorm.DB) *OrderGroupDAO {
	return &OrderGroupDAO{
		db: db,
	}
}

func (d *OrderGroupDAO) Insert(ctx context.Context, group OrderGroup) (OrderGroup, error) {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	result := conn(ctx, d.db).Create(&group)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_order_groups_active_table") {
			return OrderGroup{}, ErrActiveGroupExists
		}
		return OrderGroup{}, result.Error
	}
	return group, nil
}

func (d *OrderGroupDAO) FindByID(ctx context.Context, id uuid.UUID) (OrderGroup, error) {
	var group OrderGroup
	result := conn(ctx, d.db).Where("id = ?", id).First(&group)
	if result.Error != nil {
		return OrderGroup{}, notFound(result.Error, ErrGroupNotFound)
	}
	return group, nil
}

func (d *OrderGroupDAO) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (OrderGroup, error) {
	var group OrderGroup
	result := forUpdate(conn(ctx, d.db)).Where("id = ?", id).First(&group)
	if result.Error != nil {
		return OrderGroup{}, notFound(result.Error, ErrGroupNotFound)
	}
	return group, nil
}

func (d *OrderGroupDAO) FindActiveByTableID(ctx context.Context, tableID uint) (OrderGroup, error) {
	var group OrderGroup
	result := conn(ctx, d.db).Where("table_id = ? AND active = ?", tableID, true).First(&group)
	if result.Error != nil {
		return OrderGroup{}, notFound(result.Error, ErrGroupNotFound)
	}
	return group, nil
}

func (d *OrderGroupDAO) Update(ctx context.Context, group OrderGroup) (OrderGroup, error) {
	result := conn(ctx, d.db).Model(&OrderGroup{}).Where("id = ?", group.ID).
		Updates(map[string]any{
			"active":       group.Active,
			"has_order":    group.HasOrder,
			"total_amount": group.TotalAmount,
			"completed_at": group.CompletedAt,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return OrderGroup{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OrderGroup{}, ErrGroupNotFound
	}
	return d.FindByID(ctx, group.ID)
}

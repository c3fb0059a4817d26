package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusDraft     = "draft"
	OrderStatusSubmitted = "submitted"
)

type Order struct {
	ID             uint            `gorm:"primaryKey"`
	GroupID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ParticipantRef string          `gorm:"not null;index"`
	Status         string          `gorm:"not null"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Note           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SubmittedAt    *time.Time
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"not null;index"`
	ProductID   uint            `gorm:"not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

func (d *OrderDAO) Insert(ctx context.Context, order Order) (Order, error) {
	result := conn(ctx, d.db).Create(&order)
	if result.Error != nil {
		return Order{}, result.Error
	}
	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order
	result := conn(ctx, d.db).First(&order, id)
	if result.Error != nil {
		return Order{}, notFound(result.Error, ErrOrderNotFound)
	}
	return order, nil
}

func (d *OrderDAO) FindByIDForUpdate(ctx context.Context, id uint) (Order, error) {
	var order Order
	result := forUpdate(conn(ctx, d.db)).First(&order, id)
	if result.Error != nil {
		return Order{}, notFound(result.Error, ErrOrderNotFound)
	}
	return order, nil
}

func (d *OrderDAO) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]Order, error) {
	var orders []Order
	result := conn(ctx, d.db).Where("group_id = ?", groupID).Order("id").Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func (d *OrderDAO) FindByGroupIDAndStatus(ctx context.Context, groupID uuid.UUID, status string) ([]Order, error) {
	var orders []Order
	result := conn(ctx, d.db).Where("group_id = ? AND status = ?", groupID, status).Order("id").Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func (d *OrderDAO) FindDraftByParticipant(ctx context.Context, groupID uuid.UUID, participantRef string) (Order, error) {
	var order Order
	result := conn(ctx, d.db).
		Where("group_id = ? AND participant_ref = ? AND status = ?", groupID, participantRef, OrderStatusDraft).
		Order("id").
		First(&order)
	if result.Error != nil {
		return Order{}, notFound(result.Error, ErrOrderNotFound)
	}
	return order, nil
}

// MarkSubmitted flips a draft order to submitted. It returns false when the order was
// not in draft anymore, which is how concurrent submits are told apart.
func (d *OrderDAO) MarkSubmitted(ctx context.Context, id uint, total decimal.Decimal, at time.Time) (bool, error) {
	result := conn(ctx, d.db).Model(&Order{}).
		Where("id = ? AND status = ?", id, OrderStatusDraft).
		Updates(map[string]any{
			"status":       OrderStatusSubmitted,
			"total_amount": total,
			"submitted_at": at,
			"updated_at":   at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (d *OrderDAO) UpdateTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	result := conn(ctx, d.db).Model(&Order{}).Where("id = ?", id).
		Updates(map[string]any{"total_amount": total, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (d *OrderDAO) FindItemsByOrderIDs(ctx context.Context, orderIDs []uint) ([]OrderItem, error) {
	var items []OrderItem
	if len(orderIDs) == 0 {
		return items, nil
	}
	result := conn(ctx, d.db).Where("order_id IN ?", orderIDs).Order("id").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (d *OrderDAO) FindItemByID(ctx context.Context, id uint) (OrderItem, error) {
	var item OrderItem
	result := conn(ctx, d.db).First(&item, id)
	if result.Error != nil {
		return OrderItem{}, notFound(result.Error, ErrOrderItemNotFound)
	}
	return item, nil
}

func (d *OrderDAO) FindItemByProduct(ctx context.Context, orderID, productID uint, note string) (OrderItem, error) {
	var item OrderItem
	result := conn(ctx, d.db).
		Where("order_id = ? AND product_id = ? AND note = ?", orderID, productID, note).
		First(&item)
	if result.Error != nil {
		return OrderItem{}, notFound(result.Error, ErrOrderItemNotFound)
	}
	return item, nil
}

func (d *OrderDAO) InsertItem(ctx context.Context, item OrderItem) (OrderItem, error) {
	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	result := conn(ctx, d.db).Create(&item)
	if result.Error != nil {
		return OrderItem{}, result.Error
	}
	return item, nil
}

// UpdateItem writes quantity and note. The captured unit price is never rewritten.
func (d *OrderDAO) UpdateItem(ctx context.Context, item OrderItem) (OrderItem, error) {
	current, err := d.FindItemByID(ctx, item.ID)
	if err != nil {
		return OrderItem{}, err
	}
	current.Quantity = item.Quantity
	current.Note = item.Note
	current.Subtotal = current.UnitPrice.Mul(decimal.NewFromInt(int64(current.Quantity)))

	result := conn(ctx, d.db).Model(&OrderItem{}).Where("id = ?", current.ID).
		Updates(map[string]any{
			"quantity":   current.Quantity,
			"note":       current.Note,
			"subtotal":   current.Subtotal,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return OrderItem{}, result.Error
	}
	return current, nil
}

func (d *OrderDAO) DeleteItem(ctx context.Context, id uint) error {
	result := conn(ctx, d.db).Delete(&OrderItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderItemNotFound
	}
	return nil
}

package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsAvailable bool            `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductDAO struct {
	db *gorm.DB
}

func NewProductDAO(db *gorm.DB) *ProductDAO {
	return &ProductDAO{
		db: db,
	}
}

func (d *ProductDAO) Insert(ctx context.Context, product Product) (Product, error) {
	result := conn(ctx, d.db).Create(&product)
	if result.Error != nil {
		return Product{}, result.Error
	}
	return product, nil
}

func (d *ProductDAO) FindByID(ctx context.Context, id uint) (Product, error) {
	var product Product
	result := conn(ctx, d.db).First(&product, id)
	if result.Error != nil {
		return Product{}, notFound(result.Error, ErrProductNotFound)
	}
	return product, nil
}

func (d *ProductDAO) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) error {
	result := conn(ctx, d.db).Model(&Product{}).Where("id = ?", id).
		Updates(map[string]any{"unit_price": price, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

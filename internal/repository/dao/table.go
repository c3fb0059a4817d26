package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Table struct {
	ID        uint   `gorm:"primaryKey"`
	Number    int    `gorm:"uniqueIndex:idx_tables_number;not null"`
	Capacity  int    `gorm:"not null"`
	Shape     string `gorm:"not null"`
	X         int    `gorm:"not null"`
	Y         int    `gorm:"not null"`
	Width     int    `gorm:"not null"`
	Height    int    `gorm:"not null"`
	Status    string `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LayoutCanvas has a single row that layout mutations lock to run one at a time.
type LayoutCanvas struct {
	ID        uint `gorm:"primaryKey"`
	UpdatedAt time.Time
}

const canvasID = 1

type TableDAO struct {
	db *gorm.DB
}

func NewTableDAO(db *gorm.DB) *TableDAO {
	return &TableDAO{
		db: db,
	}
}

// LockCanvas takes the layout lock for the rest of the current transaction.
func (d *TableDAO) LockCanvas(ctx context.Context) error {
	var canvas LayoutCanvas
	result := forUpdate(conn(ctx, d.db)).First(&canvas, canvasID)
	if result.Error != nil {
		return fmt.Errorf("%w: %w", errCanvasMissing, result.Error)
	}
	return nil
}

func (d *TableDAO) Insert(ctx context.Context, table Table) (Table, error) {
	result := conn(ctx, d.db).Create(&table)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_tables_number") {
			return Table{}, ErrTableNumberExists
		}
		return Table{}, result.Error
	}
	return table, nil
}

func (d *TableDAO) FindByID(ctx context.Context, id uint) (Table, error) {
	var table Table
	result := conn(ctx, d.db).First(&table, id)
	if result.Error != nil {
		return Table{}, notFound(result.Error, ErrTableNotFound)
	}
	return table, nil
}

func (d *TableDAO) FindByIDForUpdate(ctx context.Context, id uint) (Table, error) {
	var table Table
	result := forUpdate(conn(ctx, d.db)).First(&table, id)
	if result.Error != nil {
		return Table{}, notFound(result.Error, ErrTableNotFound)
	}
	return table, nil
}

func (d *TableDAO) FindByNumber(ctx context.Context, number int) (Table, error) {
	var table Table
	result := conn(ctx, d.db).Where("number = ?", number).First(&table)
	if result.Error != nil {
		return Table{}, notFound(result.Error, ErrTableNotFound)
	}
	return table, nil
}

func (d *TableDAO) FindAll(ctx context.Context) ([]Table, error) {
	var tables []Table
	result := conn(ctx, d.db).Order("id").Find(&tables)
	if result.Error != nil {
		return nil, result.Error
	}
	return tables, nil
}

func (d *TableDAO) FindByStatus(ctx context.Context, status string) ([]Table, error) {
	var tables []Table
	result := conn(ctx, d.db).Where("status = ?", status).Order("number").Find(&tables)
	if result.Error != nil {
		return nil, result.Error
	}
	return tables, nil
}

func (d *TableDAO) Update(ctx context.Context, table Table) (Table, error) {
	result := conn(ctx, d.db).Save(&table)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_tables_number") {
			return Table{}, ErrTableNumberExists
		}
		return Table{}, result.Error
	}
	return table, nil
}

func (d *TableDAO) UpdatePosition(ctx context.Context, id uint, x, y int) error {
	result := conn(ctx, d.db).Model(&Table{}).Where("id = ?", id).
		Updates(map[string]any{"x": x, "y": y, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTableNotFound
	}
	return nil
}

func (d *TableDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := conn(ctx, d.db).Model(&Table{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTableNotFound
	}
	return nil
}

func (d *TableDAO) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, d.db).Delete(&Table{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTableNotFound
	}
	return nil
}

package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, InitTables(db))
	return db
}

func TestInitTables_Idempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, InitTables(db))

	var count int64
	require.NoError(t, db.Model(&LayoutCanvas{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTableDAO(t *testing.T) {
	ctx := context.Background()
	d := NewTableDAO(newTestDB(t))

	require.NoError(t, d.LockCanvas(ctx))

	t1, err := d.Insert(ctx, Table{Number: 1, Capacity: 4, Shape: "round", Width: 80, Height: 80, Status: "empty"})
	require.NoError(t, err)
	_, err = d.Insert(ctx, Table{Number: 2, Capacity: 2, Shape: "round", X: 100, Width: 80, Height: 80, Status: "cleaning"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Table{Number: 1, Capacity: 4, Shape: "round", Width: 80, Height: 80, Status: "empty"})
	assert.ErrorIs(t, err, ErrTableNumberExists)
	assert.ErrorIs(t, err, domain.ErrConflict)

	found, err := d.FindByNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, t1.ID, found.ID)

	empty, err := d.FindByStatus(ctx, "empty")
	require.NoError(t, err)
	require.Len(t, empty, 1)
	assert.Equal(t, 1, empty[0].Number)

	require.NoError(t, d.UpdatePosition(ctx, t1.ID, 300, 200))
	require.NoError(t, d.UpdateStatus(ctx, t1.ID, "booked"))
	found, err = d.FindByID(ctx, t1.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, found.X)
	assert.Equal(t, 200, found.Y)
	assert.Equal(t, "booked", found.Status)

	require.NoError(t, d.Delete(ctx, t1.ID))
	_, err = d.FindByID(ctx, t1.ID)
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.ErrorIs(t, d.Delete(ctx, t1.ID), ErrTableNotFound)
	assert.ErrorIs(t, d.UpdateStatus(ctx, 999, "empty"), ErrTableNotFound)
}

func TestOrderGroupDAO_OneActivePerTable(t *testing.T) {
	ctx := context.Background()
	d := NewOrderGroupDAO(newTestDB(t))

	first, err := d.Insert(ctx, OrderGroup{TableID: 1, Active: true, TotalAmount: decimal.Zero})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)

	_, err = d.Insert(ctx, OrderGroup{TableID: 1, Active: true, TotalAmount: decimal.Zero})
	assert.ErrorIs(t, err, ErrActiveGroupExists)

	now := time.Now()
	first.Active = false
	first.CompletedAt = &now
	_, err = d.Update(ctx, first)
	require.NoError(t, err)

	// A closed group no longer blocks the table.
	second, err := d.Insert(ctx, OrderGroup{TableID: 1, Active: true, TotalAmount: decimal.Zero})
	require.NoError(t, err)

	active, err := d.FindActiveByTableID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	_, err = d.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestOrderDAO_MarkSubmittedOnce(t *testing.T) {
	ctx := context.Background()
	d := NewOrderDAO(newTestDB(t))
	groupID := uuid.New()

	order, err := d.Insert(ctx, Order{GroupID: groupID, ParticipantRef: "anonymous", Status: OrderStatusDraft, TotalAmount: decimal.Zero})
	require.NoError(t, err)

	ok, err := d.MarkSubmitted(ctx, order.ID, decimal.NewFromInt(45), time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.MarkSubmitted(ctx, order.ID, decimal.NewFromInt(99), time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := d.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusSubmitted, found.Status)
	assert.True(t, decimal.NewFromInt(45).Equal(found.TotalAmount))
	assert.NotNil(t, found.SubmittedAt)
}

func TestOrderDAO_Items(t *testing.T) {
	ctx := context.Background()
	d := NewOrderDAO(newTestDB(t))

	order, err := d.Insert(ctx, Order{GroupID: uuid.New(), ParticipantRef: "anonymous", Status: OrderStatusDraft, TotalAmount: decimal.Zero})
	require.NoError(t, err)

	item, err := d.InsertItem(ctx, OrderItem{OrderID: order.ID, ProductID: 5, ProductName: "Pho", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")})
	require.NoError(t, err)
	assert.Equal(t, "21", item.Subtotal.String())

	found, err := d.FindItemByProduct(ctx, order.ID, 5, "")
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	_, err = d.FindItemByProduct(ctx, order.ID, 5, "no onion")
	assert.ErrorIs(t, err, ErrOrderItemNotFound)

	// The unit price in the argument is ignored.
	updated, err := d.UpdateItem(ctx, OrderItem{ID: item.ID, Quantity: 3, Note: "spicy", UnitPrice: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.50").Equal(updated.UnitPrice))
	assert.True(t, decimal.RequireFromString("31.50").Equal(updated.Subtotal))

	items, err := d.FindItemsByOrderIDs(ctx, []uint{order.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "spicy", items[0].Note)

	require.NoError(t, d.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, d.DeleteItem(ctx, item.ID), ErrOrderItemNotFound)
}

func TestTxManager_Rollback(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tx := NewTxManager(db)
	d := NewTableDAO(db)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := d.Insert(ctx, Table{Number: 7, Capacity: 2, Shape: "round", Width: 80, Height: 80, Status: "empty"}); err != nil {
			return err
		}
		// Nested calls join the outer transaction.
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return assert.AnError
		})
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = d.FindByNumber(ctx, 7)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestParticipantDAO(t *testing.T) {
	ctx := context.Background()
	d := NewParticipantDAO(newTestDB(t))

	guest, err := d.InsertGuest(ctx, Guest{GroupID: uuid.New(), Nickname: "Mai"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, guest.ID)

	guests, err := d.FindGuestsByIDs(ctx, []uuid.UUID{guest.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, guests, 1)

	_, err = d.InsertAccount(ctx, Account{Email: "linh@example.com", Nickname: "Linh"})
	require.NoError(t, err)
	_, err = d.InsertAccount(ctx, Account{Email: "linh@example.com", Nickname: "Other"})
	assert.ErrorIs(t, err, ErrAccountEmailExists)

	_, err = d.FindAccountByID(ctx, 404)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestProductDAO(t *testing.T) {
	ctx := context.Background()
	d := NewProductDAO(newTestDB(t))

	p, err := d.Insert(ctx, Product{Name: "Tea", UnitPrice: decimal.NewFromInt(2), IsAvailable: false})
	require.NoError(t, err)

	found, err := d.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found.IsAvailable)

	require.NoError(t, d.UpdatePrice(ctx, p.ID, decimal.NewFromInt(3)))
	assert.ErrorIs(t, d.UpdatePrice(ctx, 999, decimal.NewFromInt(3)), ErrProductNotFound)
}

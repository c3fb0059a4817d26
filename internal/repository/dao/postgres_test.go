package dao

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vietanh2810/dining-pos-api/internal/pkg/testdb"
)

func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open(testdb.PostgresDSN(t)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, InitTables(db))

	return db
}

func TestPostgres_ActiveGroupIndex(t *testing.T) {
	ctx := context.Background()
	db := newPostgresDB(t)
	groups := NewOrderGroupDAO(db)
	tables := NewTableDAO(db)

	table, err := tables.Insert(ctx, Table{Number: 1, Capacity: 4, Shape: "round", Width: 80, Height: 80, Status: "empty"})
	require.NoError(t, err)
	_, err = tables.Insert(ctx, Table{Number: 1, Capacity: 4, Shape: "round", Width: 80, Height: 80, Status: "empty"})
	assert.ErrorIs(t, err, ErrTableNumberExists)

	_, err = groups.Insert(ctx, OrderGroup{TableID: table.ID, Active: true, TotalAmount: decimal.Zero})
	require.NoError(t, err)
	_, err = groups.Insert(ctx, OrderGroup{TableID: table.ID, Active: true, TotalAmount: decimal.Zero})
	assert.ErrorIs(t, err, ErrActiveGroupExists)
}

func TestPostgres_CanvasLockAndMoney(t *testing.T) {
	ctx := context.Background()
	db := newPostgresDB(t)
	tx := NewTxManager(db)
	tables := NewTableDAO(db)
	orders := NewOrderDAO(db)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return tables.LockCanvas(ctx)
	})
	require.NoError(t, err)

	order, err := orders.Insert(ctx, Order{GroupID: uuid.New(), ParticipantRef: "anonymous", Status: OrderStatusDraft, TotalAmount: decimal.Zero})
	require.NoError(t, err)
	_, err = orders.InsertItem(ctx, OrderItem{OrderID: order.ID, ProductID: 1, ProductName: "Bun", Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")})
	require.NoError(t, err)

	items, err := orders.FindItemsByOrderIDs(ctx, []uint{order.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "0.3", items[0].Subtotal.String())
}

func TestPostgres_ConcurrentMarkSubmitted(t *testing.T) {
	ctx := context.Background()
	db := newPostgresDB(t)
	tx := NewTxManager(db)
	orders := NewOrderDAO(db)

	order, err := orders.Insert(ctx, Order{GroupID: uuid.New(), ParticipantRef: "anonymous", Status: OrderStatusDraft, TotalAmount: decimal.Zero})
	require.NoError(t, err)

	const callers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		start = make(chan struct{})
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
				ok, err := orders.MarkSubmitted(ctx, order.ID, decimal.NewFromInt(int64(10+i)), time.Now())
				if err != nil || !ok {
					return err
				}
				mu.Lock()
				wins++
				mu.Unlock()
				// Hold the row lock so the other updates queue behind this one.
				time.Sleep(50 * time.Millisecond)
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	found, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusSubmitted, found.Status)
}

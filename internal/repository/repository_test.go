package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
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

	require.NoError(t, dao.InitTables(db))
	return db
}

func TestOrderRepository_ParticipantsAndItems(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	orders := NewOrderRepository(dao.NewOrderDAO(db))
	groupID := uuid.New()
	guest := domain.GuestParticipant{GuestID: uuid.New(), Nickname: "Mai"}

	first, err := orders.Create(ctx, domain.Order{GroupID: groupID, Participant: guest, Status: domain.OrderDraft, TotalAmount: decimal.Zero})
	require.NoError(t, err)
	second, err := orders.Create(ctx, domain.Order{GroupID: groupID, Participant: domain.RegisteredParticipant{AccountID: 9}, Status: domain.OrderDraft, TotalAmount: decimal.Zero})
	require.NoError(t, err)

	for _, it := range []domain.OrderItem{
		{OrderID: second.ID, ProductID: 1, ProductName: "Pho", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
		{OrderID: first.ID, ProductID: 2, ProductName: "Tea", UnitPrice: decimal.NewFromInt(2), Quantity: 2},
		{OrderID: first.ID, ProductID: 1, ProductName: "Pho", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
	} {
		_, err := orders.AddItem(ctx, it)
		require.NoError(t, err)
	}

	all, err := orders.FindByGroupID(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Nicknames are not persisted in the reference.
	assert.Equal(t, domain.GuestParticipant{GuestID: guest.GuestID}, all[0].Participant)
	assert.Equal(t, domain.RegisteredParticipant{AccountID: 9}, all[1].Participant)
	require.Len(t, all[0].Items, 2)
	assert.Equal(t, "Tea", all[0].Items[0].ProductName)
	assert.True(t, decimal.NewFromInt(14).Equal(all[0].ComputeTotal()))
	require.Len(t, all[1].Items, 1)

	draft, err := orders.FindDraftByParticipant(ctx, groupID, guest)
	require.NoError(t, err)
	assert.Equal(t, first.ID, draft.ID)

	_, err = orders.FindDraftByParticipant(ctx, groupID, domain.AnonymousParticipant{})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderGroupRepository_OrderIDs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	orderDAO := dao.NewOrderDAO(db)
	groups := NewOrderGroupRepository(dao.NewOrderGroupDAO(db), orderDAO)
	orders := NewOrderRepository(orderDAO)

	group, err := groups.Create(ctx, domain.OrderGroup{TableID: 3, Active: true, TotalAmount: decimal.Zero})
	require.NoError(t, err)
	assert.Empty(t, group.OrderIDs)

	o1, err := orders.Create(ctx, domain.Order{GroupID: group.ID, Participant: domain.AnonymousParticipant{}, Status: domain.OrderDraft, TotalAmount: decimal.Zero})
	require.NoError(t, err)

	found, err := groups.FindByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{o1.ID}, found.OrderIDs)
	assert.Equal(t, domain.SessionOpenNoOrder, found.State())

	_, err = groups.Create(ctx, domain.OrderGroup{TableID: 3, Active: true, TotalAmount: decimal.Zero})
	assert.ErrorIs(t, err, ErrActiveGroupExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestParticipantRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := NewParticipantRepository(dao.NewParticipantDAO(newTestDB(t)))

	guest, err := repo.CreateGuest(ctx, domain.Guest{GroupID: uuid.New(), Nickname: "Mai"})
	require.NoError(t, err)
	account, err := repo.CreateAccount(ctx, domain.Account{Email: "linh@example.com", Nickname: "Linh"})
	require.NoError(t, err)

	guests, err := repo.FindGuestsByIDs(ctx, []uuid.UUID{guest.ID})
	require.NoError(t, err)
	assert.Equal(t, "Mai", guests[guest.ID].Nickname)

	accounts, err := repo.FindAccountsByIDs(ctx, []uint{account.ID, 404})
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, "Linh", accounts[account.ID].Nickname)

	_, err = repo.FindGuestByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTableRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository(dao.NewTableDAO(newTestDB(t)))

	created, err := repo.Create(ctx, domain.Table{Number: 5, Capacity: 6, Shape: domain.ShapeLarge, X: 10, Y: 20, Width: 160, Height: 100, Status: domain.TableEmpty})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShapeLarge, found.Shape)
	assert.Equal(t, domain.Rect{X: 10, Y: 20, Width: 160, Height: 100}, found.Rect())

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.TableBooked))
	booked, err := repo.FindByStatus(ctx, domain.TableBooked)
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, 5, booked[0].Number)
}

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/dining-pos-api/internal/db"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/repository"
	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		result[i] = e.Type
	}
	return result
}

type testEnv struct {
	db           *gorm.DB
	tables       *TableService
	sessions     *SessionService
	carts        *CartService
	participants *ParticipantService
	products     *repository.ProductRepository
	people       *repository.ParticipantRepository
	events       *recordingPublisher
}

func testCanvas() domain.Canvas {
	return domain.Canvas{
		Width:  400,
		Height: 200,
		Margin: 20,
		Shapes: map[domain.TableShape]domain.Size{
			domain.ShapeRound:     {Width: 80, Height: 80},
			domain.ShapeSquare:    {Width: 80, Height: 80},
			domain.ShapeRectangle: {Width: 120, Height: 80},
			domain.ShapeLarge:     {Width: 160, Height: 100},
		},
	}
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return newEnv(gdb)
}

func newEnv(gdb *gorm.DB) *testEnv {
	tx := repository.NewTxManager(gdb)
	orderDAO := dao.NewOrderDAO(gdb)
	tableRepo := repository.NewTableRepository(dao.NewTableDAO(gdb))
	groupRepo := repository.NewOrderGroupRepository(dao.NewOrderGroupDAO(gdb), orderDAO)
	orderRepo := repository.NewOrderRepository(orderDAO)
	peopleRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(gdb))
	productRepo := repository.NewProductRepository(dao.NewProductDAO(gdb))
	events := &recordingPublisher{}

	participants := NewParticipantService(peopleRepo)

	return &testEnv{
		db:           gdb,
		tables:       NewTableService(tableRepo, groupRepo, tx, testCanvas(), events),
		sessions:     NewSessionService(groupRepo, tableRepo, peopleRepo, tx, events),
		carts:        NewCartService(orderRepo, groupRepo, productRepo, participants, tx, events),
		participants: participants,
		products:     productRepo,
		people:       peopleRepo,
		events:       events,
	}
}

func (e *testEnv) product(t *testing.T, name, price string) domain.Product {
	t.Helper()
	p, err := e.products.Create(context.Background(), domain.Product{
		Name:        name,
		UnitPrice:   decimal.RequireFromString(price),
		IsAvailable: true,
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) table(t *testing.T, number int) domain.Table {
	t.Helper()
	table, err := e.tables.CreateTable(context.Background(), number, 4, domain.ShapeRound)
	require.NoError(t, err)
	return table
}

// openGroup places a table and opens a session on it.
func (e *testEnv) openGroup(t *testing.T, number int) domain.OrderGroup {
	t.Helper()
	group, err := e.sessions.Open(context.Background(), e.table(t, number).ID)
	require.NoError(t, err)
	return group
}

func (e *testEnv) anonymousDraft(t *testing.T, groupID uuid.UUID) domain.Order {
	t.Helper()
	order, err := e.carts.OpenDraft(context.Background(), groupID, domain.Caller{})
	require.NoError(t, err)
	return order
}

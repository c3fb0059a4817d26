package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type TableRepository interface {
	LockCanvas(ctx context.Context) error
	Create(ctx context.Context, table domain.Table) (domain.Table, error)
	FindByID(ctx context.Context, id uint) (domain.Table, error)
	FindByIDForUpdate(ctx context.Context, id uint) (domain.Table, error)
	FindByNumber(ctx context.Context, number int) (domain.Table, error)
	FindAll(ctx context.Context) ([]domain.Table, error)
	FindByStatus(ctx context.Context, status domain.TableStatus) ([]domain.Table, error)
	Update(ctx context.Context, table domain.Table) (domain.Table, error)
	UpdatePosition(ctx context.Context, id uint, x, y int) error
	UpdateStatus(ctx context.Context, id uint, status domain.TableStatus) error
	Delete(ctx context.Context, id uint) error
}

type ActiveGroupFinder interface {
	FindActiveByTableID(ctx context.Context, tableID uint) (domain.OrderGroup, error)
}

type TableService struct {
	repo   TableRepository
	groups ActiveGroupFinder
	tx     Transactor
	canvas domain.Canvas
	events EventPublisher
}

func NewTableService(repo TableRepository, groups ActiveGroupFinder, tx Transactor, canvas domain.Canvas, events EventPublisher) *TableService {
	return &TableService{
		repo:   repo,
		groups: groups,
		tx:     tx,
		canvas: canvas,
		events: events,
	}
}

func (s *TableService) Canvas() domain.Canvas {
	return s.canvas
}

// CreateTable places a new empty table on the first free spot of the canvas.
func (s *TableService) CreateTable(ctx context.Context, number, capacity int, shape domain.TableShape) (domain.Table, error) {
	return s.PlaceNewTable(ctx, domain.Table{
		Number:   number,
		Capacity: capacity,
		Shape:    shape,
		Status:   domain.TableEmpty,
	})
}

// PlaceNewTable assigns the candidate the first position of a row-major scan that
// does not collide with any existing table.
func (s *TableService) PlaceNewTable(ctx context.Context, candidate domain.Table) (domain.Table, error) {
	if candidate.Number < 1 {
		return domain.Table{}, domain.Validationf("table number must be at least 1")
	}
	if candidate.Capacity < 1 {
		return domain.Table{}, domain.Validationf("table capacity must be at least 1")
	}
	size, err := s.canvas.SizeOf(candidate.Shape)
	if err != nil {
		return domain.Table{}, err
	}
	if candidate.Status == "" {
		candidate.Status = domain.TableEmpty
	}
	candidate.Width, candidate.Height = size.Width, size.Height

	var placed domain.Table
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.LockCanvas(ctx); err != nil {
			return fmt.Errorf("s.repo.LockCanvas -> %w", err)
		}
		if err := s.ensureNumberFree(ctx, candidate.Number, 0); err != nil {
			return err
		}

		tables, err := s.repo.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("s.repo.FindAll -> %w", err)
		}
		candidate.X, candidate.Y, err = s.canvas.NextPosition(size, rects(tables))
		if err != nil {
			return err
		}

		placed, err = s.repo.Create(ctx, candidate)
		if err != nil {
			return fmt.Errorf("s.repo.Create -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Table{}, err
	}

	return placed, nil
}

func (s *TableService) GetTable(ctx context.Context, id uint) (domain.Table, error) {
	table, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Table{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return table, nil
}

func (s *TableService) ListTables(ctx context.Context) ([]domain.Table, error) {
	tables, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return tables, nil
}

func (s *TableService) ListEmptyTables(ctx context.Context) ([]domain.Table, error) {
	tables, err := s.repo.FindByStatus(ctx, domain.TableEmpty)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStatus -> %w", err)
	}

	return tables, nil
}

// UpdateTableStatus sets an administrative status. Dining is owned by the session
// lifecycle and cannot be set by hand.
func (s *TableService) UpdateTableStatus(ctx context.Context, id uint, status string) (domain.Table, error) {
	st, err := domain.ParseTableStatus(status)
	if err != nil {
		return domain.Table{}, err
	}
	if st == domain.TableDining {
		return domain.Table{}, domain.Validationf("status %q is set by opening a session", st)
	}

	var table domain.Table
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		table, err = s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}
		if err := s.ensureNoActiveGroup(ctx, id); err != nil {
			return err
		}
		if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
			return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
		}
		table.Status = st

		return nil
	})
	if err != nil {
		return domain.Table{}, err
	}

	publish(ctx, s.events, tableStatusEvent(table))

	return table, nil
}

// UpdateTableInfo edits number, capacity and shape. A shape change resizes the table
// in place and must still fit between its neighbours.
func (s *TableService) UpdateTableInfo(ctx context.Context, id uint, info domain.TableInfo) (domain.Table, error) {
	if info.Number != nil && *info.Number < 1 {
		return domain.Table{}, domain.Validationf("table number must be at least 1")
	}
	if info.Capacity != nil && *info.Capacity < 1 {
		return domain.Table{}, domain.Validationf("table capacity must be at least 1")
	}

	var updated domain.Table
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.LockCanvas(ctx); err != nil {
			return fmt.Errorf("s.repo.LockCanvas -> %w", err)
		}
		table, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		if info.Number != nil && *info.Number != table.Number {
			if err := s.ensureNumberFree(ctx, *info.Number, id); err != nil {
				return err
			}
			table.Number = *info.Number
		}
		if info.Capacity != nil {
			table.Capacity = *info.Capacity
		}
		if info.Shape != nil && *info.Shape != table.Shape {
			size, err := s.canvas.SizeOf(*info.Shape)
			if err != nil {
				return err
			}
			table.Shape = *info.Shape
			table.Width, table.Height = size.Width, size.Height
			if err := s.checkFits(ctx, table); err != nil {
				return err
			}
		}

		updated, err = s.repo.Update(ctx, table)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Table{}, err
	}

	return updated, nil
}

// RepositionTable moves a table to (x, y). On conflict the table stays where it was.
func (s *TableService) RepositionTable(ctx context.Context, id uint, x, y int) (domain.Table, error) {
	var table domain.Table
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.LockCanvas(ctx); err != nil {
			return fmt.Errorf("s.repo.LockCanvas -> %w", err)
		}
		var err error
		table, err = s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		table.X, table.Y = x, y
		if err := s.checkFits(ctx, table); err != nil {
			return err
		}
		if err := s.repo.UpdatePosition(ctx, id, x, y); err != nil {
			return fmt.Errorf("s.repo.UpdatePosition -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Table{}, err
	}

	publish(ctx, s.events, tableMovedEvent(table))

	return table, nil
}

// BulkRelayout applies all placements or none. The whole final layout, including
// tables outside the batch, is validated before the first write.
func (s *TableService) BulkRelayout(ctx context.Context, placements []domain.Placement) ([]domain.Table, error) {
	seen := make(map[uint]struct{}, len(placements))
	for _, p := range placements {
		if _, dup := seen[p.TableID]; dup {
			return nil, domain.Validationf("table %d appears more than once", p.TableID)
		}
		seen[p.TableID] = struct{}{}
	}

	var result []domain.Table
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.LockCanvas(ctx); err != nil {
			return fmt.Errorf("s.repo.LockCanvas -> %w", err)
		}
		tables, err := s.repo.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		index := make(map[uint]int, len(tables))
		for i, t := range tables {
			index[t.ID] = i
		}
		for _, p := range placements {
			i, ok := index[p.TableID]
			if !ok {
				return domain.NotFoundf("table %d not found", p.TableID)
			}
			tables[i].X, tables[i].Y = p.X, p.Y
		}

		if i, j, ok := s.canvas.ValidateLayout(rects(tables)); !ok {
			if i == j {
				return domain.Validationf("table %d lies outside the %dx%d canvas", tables[i].Number, s.canvas.Width, s.canvas.Height)
			}
			return domain.Conflictf("tables %d and %d would overlap", tables[i].Number, tables[j].Number)
		}

		for _, p := range placements {
			if err := s.repo.UpdatePosition(ctx, p.TableID, p.X, p.Y); err != nil {
				return fmt.Errorf("s.repo.UpdatePosition -> %w", err)
			}
		}
		result = tables

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range placements {
		publish(ctx, s.events, tableMovedEvent(result[indexOf(result, p.TableID)]))
	}

	return result, nil
}

func (s *TableService) DeleteTable(ctx context.Context, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.LockCanvas(ctx); err != nil {
			return fmt.Errorf("s.repo.LockCanvas -> %w", err)
		}
		if _, err := s.repo.FindByIDForUpdate(ctx, id); err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}
		if err := s.ensureNoActiveGroup(ctx, id); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("s.repo.Delete -> %w", err)
		}

		return nil
	})
}

// checkFits verifies that table lies on the canvas and clears every other table.
func (s *TableService) checkFits(ctx context.Context, table domain.Table) error {
	if !s.canvas.Contains(table.Rect()) {
		return domain.Validationf("position (%d,%d) puts table %d outside the %dx%d canvas",
			table.X, table.Y, table.Number, s.canvas.Width, s.canvas.Height)
	}
	tables, err := s.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.FindAll -> %w", err)
	}
	for _, other := range tables {
		if other.ID == table.ID {
			continue
		}
		if domain.Overlaps(table.Rect(), other.Rect(), s.canvas.Margin) {
			return domain.Conflictf("table %d would overlap table %d", table.Number, other.Number)
		}
	}

	return nil
}

func (s *TableService) ensureNumberFree(ctx context.Context, number int, self uint) error {
	existing, err := s.repo.FindByNumber(ctx, number)
	switch {
	case errors.Is(err, ErrTableNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("s.repo.FindByNumber -> %w", err)
	case existing.ID != self:
		return domain.Conflictf("table number %d already exists", number)
	}

	return nil
}

func (s *TableService) ensureNoActiveGroup(ctx context.Context, tableID uint) error {
	group, err := s.groups.FindActiveByTableID(ctx, tableID)
	switch {
	case errors.Is(err, ErrGroupNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("s.groups.FindActiveByTableID -> %w", err)
	}

	return domain.Conflictf("table %d has an active order group %s", tableID, group.ID)
}

func rects(tables []domain.Table) []domain.Rect {
	result := make([]domain.Rect, len(tables))
	for i, t := range tables {
		result[i] = t.Rect()
	}

	return result
}

func indexOf(tables []domain.Table, id uint) int {
	for i, t := range tables {
		if t.ID == id {
			return i
		}
	}

	return -1
}

func tableStatusEvent(t domain.Table) domain.Event {
	e := domain.NewEvent(domain.EventTableStatusChanged)
	e.TableID = t.ID
	e.Payload = map[string]any{"number": t.Number, "status": t.Status}

	return e
}

func tableMovedEvent(t domain.Table) domain.Event {
	e := domain.NewEvent(domain.EventTableMoved)
	e.TableID = t.ID
	e.Payload = map[string]any{"number": t.Number, "x": t.X, "y": t.Y}

	return e
}

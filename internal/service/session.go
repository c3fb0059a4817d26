package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type OrderGroupRepository interface {
	Create(ctx context.Context, group domain.OrderGroup) (domain.OrderGroup, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.OrderGroup, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.OrderGroup, error)
	FindActiveByTableID(ctx context.Context, tableID uint) (domain.OrderGroup, error)
	Update(ctx context.Context, group domain.OrderGroup) (domain.OrderGroup, error)
}

// TableOccupancy is the slice of the table repository a session is allowed to touch.
type TableOccupancy interface {
	FindByIDForUpdate(ctx context.Context, id uint) (domain.Table, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TableStatus) error
}

type GuestRegistry interface {
	CreateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error)
}

type SessionService struct {
	groups OrderGroupRepository
	tables TableOccupancy
	guests GuestRegistry
	tx     Transactor
	events EventPublisher
}

func NewSessionService(groups OrderGroupRepository, tables TableOccupancy, guests GuestRegistry, tx Transactor, events EventPublisher) *SessionService {
	return &SessionService{
		groups: groups,
		tables: tables,
		guests: guests,
		tx:     tx,
		events: events,
	}
}

// Open starts a dining session on a table and marks the table as dining. It fails
// with a conflict when the table already has an active group.
func (s *SessionService) Open(ctx context.Context, tableID uint) (domain.OrderGroup, error) {
	var (
		group domain.OrderGroup
		table domain.Table
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		table, err = s.tables.FindByIDForUpdate(ctx, tableID)
		if err != nil {
			return fmt.Errorf("s.tables.FindByIDForUpdate -> %w", err)
		}

		active, err := s.groups.FindActiveByTableID(ctx, tableID)
		switch {
		case err == nil:
			return domain.Conflictf("table %d already has an active order group %s", table.Number, active.ID)
		case !errors.Is(err, ErrGroupNotFound):
			return fmt.Errorf("s.groups.FindActiveByTableID -> %w", err)
		}

		group, err = s.groups.Create(ctx, domain.OrderGroup{
			TableID:     tableID,
			Active:      true,
			TotalAmount: decimal.Zero,
		})
		if err != nil {
			return fmt.Errorf("s.groups.Create -> %w", err)
		}

		if err := s.tables.UpdateStatus(ctx, tableID, domain.TableDining); err != nil {
			return fmt.Errorf("s.tables.UpdateStatus -> %w", err)
		}
		table.Status = domain.TableDining

		return nil
	})
	if err != nil {
		return domain.OrderGroup{}, err
	}

	publish(ctx, s.events, sessionEvent(domain.EventSessionOpened, group), tableStatusEvent(table))

	return group, nil
}

// Close ends an open session and releases its table to cleaning.
func (s *SessionService) Close(ctx context.Context, groupID uuid.UUID) (domain.OrderGroup, error) {
	var (
		group domain.OrderGroup
		table domain.Table
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		group, err = s.groups.FindByIDForUpdate(ctx, groupID)
		if err != nil {
			return fmt.Errorf("s.groups.FindByIDForUpdate -> %w", err)
		}
		if !group.Active {
			return domain.Statef("order group %s is already closed", groupID)
		}

		now := time.Now().UTC()
		group.Active = false
		group.CompletedAt = &now
		group, err = s.groups.Update(ctx, group)
		if err != nil {
			return fmt.Errorf("s.groups.Update -> %w", err)
		}

		table, err = s.tables.FindByIDForUpdate(ctx, group.TableID)
		if err != nil {
			return fmt.Errorf("s.tables.FindByIDForUpdate -> %w", err)
		}
		if err := s.tables.UpdateStatus(ctx, group.TableID, domain.TableCleaning); err != nil {
			return fmt.Errorf("s.tables.UpdateStatus -> %w", err)
		}
		table.Status = domain.TableCleaning

		return nil
	})
	if err != nil {
		return domain.OrderGroup{}, err
	}

	publish(ctx, s.events, sessionEvent(domain.EventSessionClosed, group), tableStatusEvent(table))

	return group, nil
}

func (s *SessionService) GetGroup(ctx context.Context, groupID uuid.UUID) (domain.OrderGroup, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return domain.OrderGroup{}, fmt.Errorf("s.groups.FindByID -> %w", err)
	}

	return group, nil
}

func (s *SessionService) ActiveGroupForTable(ctx context.Context, tableID uint) (domain.OrderGroup, error) {
	group, err := s.groups.FindActiveByTableID(ctx, tableID)
	if err != nil {
		return domain.OrderGroup{}, fmt.Errorf("s.groups.FindActiveByTableID -> %w", err)
	}

	return group, nil
}

// JoinGuest registers an ephemeral guest for an open group. The returned guest id is
// the token the guest presents on later requests.
func (s *SessionService) JoinGuest(ctx context.Context, groupID uuid.UUID, nickname string) (domain.Guest, error) {
	var guest domain.Guest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := s.groups.FindByIDForUpdate(ctx, groupID)
		if err != nil {
			return fmt.Errorf("s.groups.FindByIDForUpdate -> %w", err)
		}
		if !group.Active {
			return domain.Statef("order group %s is closed", groupID)
		}

		guest, err = s.guests.CreateGuest(ctx, domain.Guest{
			GroupID:  groupID,
			Nickname: strings.TrimSpace(nickname),
		})
		if err != nil {
			return fmt.Errorf("s.guests.CreateGuest -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Guest{}, err
	}

	return guest, nil
}

func sessionEvent(t domain.EventType, g domain.OrderGroup) domain.Event {
	e := domain.NewEvent(t)
	e.TableID = g.TableID
	e.GroupID = g.ID.String()
	e.Payload = map[string]any{"state": g.State(), "total_amount": g.TotalAmount}

	return e
}

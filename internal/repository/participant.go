package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
)

type ParticipantDAO interface {
	InsertGuest(ctx context.Context, guest dao.Guest) (dao.Guest, error)
	FindGuestByID(ctx context.Context, id uuid.UUID) (dao.Guest, error)
	FindGuestsByIDs(ctx context.Context, ids []uuid.UUID) ([]dao.Guest, error)
	InsertAccount(ctx context.Context, account dao.Account) (dao.Account, error)
	FindAccountByID(ctx context.Context, id uint) (dao.Account, error)
	FindAccountsByIDs(ctx context.Context, ids []uint) ([]dao.Account, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func guestToDomain(g dao.Guest) domain.Guest {
	return domain.Guest{
		ID:        g.ID,
		GroupID:   g.GroupID,
		Nickname:  g.Nickname,
		CreatedAt: g.CreatedAt,
	}
}

func accountToDomain(a dao.Account) domain.Account {
	return domain.Account{
		ID:       a.ID,
		Email:    a.Email,
		Nickname: a.Nickname,
	}
}

func (r *ParticipantRepository) CreateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	created, err := r.dao.InsertGuest(ctx, dao.Guest{
		ID:       guest.ID,
		GroupID:  guest.GroupID,
		Nickname: guest.Nickname,
	})
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.InsertGuest -> %w", err)
	}
	return guestToDomain(created), nil
}

func (r *ParticipantRepository) FindGuestByID(ctx context.Context, id uuid.UUID) (domain.Guest, error) {
	found, err := r.dao.FindGuestByID(ctx, id)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.FindGuestByID -> %w", err)
	}
	return guestToDomain(found), nil
}

// FindGuestsByIDs returns the guests found, keyed by id. Unknown ids are skipped.
func (r *ParticipantRepository) FindGuestsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Guest, error) {
	guests, err := r.dao.FindGuestsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindGuestsByIDs -> %w", err)
	}
	result := make(map[uuid.UUID]domain.Guest, len(guests))
	for _, g := range guests {
		result[g.ID] = guestToDomain(g)
	}
	return result, nil
}

func (r *ParticipantRepository) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	created, err := r.dao.InsertAccount(ctx, dao.Account{
		Email:    account.Email,
		Nickname: account.Nickname,
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.InsertAccount -> %w", err)
	}
	return accountToDomain(created), nil
}

func (r *ParticipantRepository) FindAccountByID(ctx context.Context, id uint) (domain.Account, error) {
	found, err := r.dao.FindAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.FindAccountByID -> %w", err)
	}
	return accountToDomain(found), nil
}

func (r *ParticipantRepository) FindAccountsByIDs(ctx context.Context, ids []uint) (map[uint]domain.Account, error) {
	accounts, err := r.dao.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAccountsByIDs -> %w", err)
	}
	result := make(map[uint]domain.Account, len(accounts))
	for _, a := range accounts {
		result[a.ID] = accountToDomain(a)
	}
	return result, nil
}

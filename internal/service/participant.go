package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type ParticipantRepository interface {
	FindGuestByID(ctx context.Context, id uuid.UUID) (domain.Guest, error)
	FindGuestsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Guest, error)
	FindAccountByID(ctx context.Context, id uint) (domain.Account, error)
	FindAccountsByIDs(ctx context.Context, ids []uint) (map[uint]domain.Account, error)
}

type ParticipantService struct {
	repo ParticipantRepository
}

func NewParticipantService(repo ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		repo: repo,
	}
}

// Resolve picks the owner of a cart line for the caller of a group: the guest token
// wins over the account, and a caller with neither is anonymous.
func (s *ParticipantService) Resolve(ctx context.Context, groupID uuid.UUID, caller domain.Caller) (domain.Participant, error) {
	if caller.GuestID != nil {
		guest, err := s.repo.FindGuestByID(ctx, *caller.GuestID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindGuestByID -> %w", err)
		}
		if guest.GroupID != groupID {
			return nil, domain.Validationf("guest token does not belong to order group %s", groupID)
		}

		return domain.GuestParticipant{GuestID: guest.ID, Nickname: guest.Nickname}, nil
	}

	if caller.AccountID != nil {
		account, err := s.repo.FindAccountByID(ctx, *caller.AccountID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAccountByID -> %w", err)
		}

		return domain.RegisteredParticipant{AccountID: account.ID, Nickname: account.Nickname}, nil
	}

	return domain.AnonymousParticipant{}, nil
}

// Namer loads the nicknames of participants in one round trip per kind and returns a
// display name function over them. References that no longer resolve read as anonymous.
func (s *ParticipantService) Namer(ctx context.Context, participants []domain.Participant) (func(domain.Participant) string, error) {
	var (
		guestIDs   []uuid.UUID
		accountIDs []uint
	)
	for _, p := range participants {
		switch v := p.(type) {
		case domain.GuestParticipant:
			guestIDs = append(guestIDs, v.GuestID)
		case domain.RegisteredParticipant:
			accountIDs = append(accountIDs, v.AccountID)
		}
	}

	guests, err := s.repo.FindGuestsByIDs(ctx, guestIDs)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindGuestsByIDs -> %w", err)
	}
	accounts, err := s.repo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAccountsByIDs -> %w", err)
	}

	return func(p domain.Participant) string {
		switch v := p.(type) {
		case domain.GuestParticipant:
			v.Nickname = guests[v.GuestID].Nickname
			return domain.DisplayName(v)
		case domain.RegisteredParticipant:
			v.Nickname = accounts[v.AccountID].Nickname
			return domain.DisplayName(v)
		default:
			return domain.DisplayName(p)
		}
	}, nil
}

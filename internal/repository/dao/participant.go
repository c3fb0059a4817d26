package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"gorm.io/gorm"
)

type Guest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Nickname  string    `gorm:"not null"`
	CreatedAt time.Time
}

type Account struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex:idx_accounts_email;not null"`
	Nickname  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

var ErrAccountEmailExists = domain.Conflictf("account email already exists")

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) InsertGuest(ctx context.Context, guest Guest) (Guest, error) {
	if guest.ID == uuid.Nil {
		guest.ID = uuid.New()
	}
	result := conn(ctx, d.db).Create(&guest)
	if result.Error != nil {
		return Guest{}, result.Error
	}
	return guest, nil
}

func (d *ParticipantDAO) FindGuestByID(ctx context.Context, id uuid.UUID) (Guest, error) {
	var guest Guest
	result := conn(ctx, d.db).Where("id = ?", id).First(&guest)
	if result.Error != nil {
		return Guest{}, notFound(result.Error, ErrGuestNotFound)
	}
	return guest, nil
}

func (d *ParticipantDAO) FindGuestsByIDs(ctx context.Context, ids []uuid.UUID) ([]Guest, error) {
	var guests []Guest
	if len(ids) == 0 {
		return guests, nil
	}
	result := conn(ctx, d.db).Where("id IN ?", ids).Find(&guests)
	if result.Error != nil {
		return nil, result.Error
	}
	return guests, nil
}

func (d *ParticipantDAO) InsertAccount(ctx context.Context, account Account) (Account, error) {
	result := conn(ctx, d.db).Create(&account)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_accounts_email") {
			return Account{}, ErrAccountEmailExists
		}
		return Account{}, result.Error
	}
	return account, nil
}

func (d *ParticipantDAO) FindAccountByID(ctx context.Context, id uint) (Account, error) {
	var account Account
	result := conn(ctx, d.db).First(&account, id)
	if result.Error != nil {
		return Account{}, notFound(result.Error, ErrAccountNotFound)
	}
	return account, nil
}

func (d *ParticipantDAO) FindAccountsByIDs(ctx context.Context, ids []uint) ([]Account, error) {
	var accounts []Account
	if len(ids) == 0 {
		return accounts, nil
	}
	result := conn(ctx, d.db).Where("id IN ?", ids).Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accounts, nil
}

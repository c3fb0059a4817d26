package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const AnonymousName = "anonymous"

// Participant is the owner of an order. It is one of GuestParticipant,
// RegisteredParticipant or AnonymousParticipant.
type Participant interface {
	// Ref is the persisted reference of the participant.
	Ref() string
	isParticipant()
}

type GuestParticipant struct {
	GuestID  uuid.UUID
	Nickname string
}

type RegisteredParticipant struct {
	AccountID uint
	Nickname  string
}

type AnonymousParticipant struct{}

func (g GuestParticipant) Ref() string      { return "guest:" + g.GuestID.String() }
func (r RegisteredParticipant) Ref() string { return "account:" + strconv.FormatUint(uint64(r.AccountID), 10) }
func (AnonymousParticipant) Ref() string    { return AnonymousName }

func (GuestParticipant) isParticipant()      {}
func (RegisteredParticipant) isParticipant() {}
func (AnonymousParticipant) isParticipant()  {}

// DisplayName returns the nickname of p, or "anonymous" when it has none.
func DisplayName(p Participant) string {
	var name string
	switch v := p.(type) {
	case GuestParticipant:
		name = v.Nickname
	case RegisteredParticipant:
		name = v.Nickname
	case AnonymousParticipant:
		return AnonymousName
	default:
		panic(fmt.Sprintf("domain: unhandled participant %T", p))
	}
	if strings.TrimSpace(name) == "" {
		return AnonymousName
	}
	return name
}

// ParseParticipantRef decodes a persisted reference. Nicknames are not part of the
// reference and have to be resolved separately.
func ParseParticipantRef(ref string) (Participant, error) {
	if ref == "" || ref == AnonymousName {
		return AnonymousParticipant{}, nil
	}
	kind, value, ok := strings.Cut(ref, ":")
	if !ok {
		return nil, Validationf("malformed participant reference %q", ref)
	}
	switch kind {
	case "guest":
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, Validationf("malformed guest reference %q", ref)
		}
		return GuestParticipant{GuestID: id}, nil
	case "account":
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil || id == 0 {
			return nil, Validationf("malformed account reference %q", ref)
		}
		return RegisteredParticipant{AccountID: uint(id)}, nil
	default:
		return nil, Validationf("unknown participant kind %q", kind)
	}
}

// Caller is the identity context of a request: an optional ephemeral guest token
// and an optional persistent account id.
type Caller struct {
	GuestID   *uuid.UUID
	AccountID *uint
}

type Guest struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

type Account struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// ParticipantKind returns "guest", "account" or "anonymous".
func ParticipantKind(p Participant) string {
	switch p.(type) {
	case GuestParticipant:
		return "guest"
	case RegisteredParticipant:
		return "account"
	default:
		return AnonymousName
	}
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

func TestParticipantService_Resolve(t *testing.T) {
	ctx := context.Background()
	env := setup(t)
	group := env.openGroup(t, 1)
	otherGroup := env.openGroup(t, 2)

	guest, err := env.sessions.JoinGuest(ctx, group.ID, "Mai")
	require.NoError(t, err)
	stranger, err := env.sessions.JoinGuest(ctx, otherGroup.ID, "Tuan")
	require.NoError(t, err)
	account, err := env.people.CreateAccount(ctx, domain.Account{Email: "linh@example.com", Nickname: "Linh"})
	require.NoError(t, err)
	unknownGuest := uuid.New()
	unknownAccount := uint(404)

	tests := []struct {
		name    string
		caller  domain.Caller
		want    domain.Participant
		wantErr error
	}{
		{
			name:   "guest wins over account",
			caller: domain.Caller{GuestID: &guest.ID, AccountID: &account.ID},
			want:   domain.GuestParticipant{GuestID: guest.ID, Nickname: "Mai"},
		},
		{
			name:   "account",
			caller: domain.Caller{AccountID: &account.ID},
			want:   domain.RegisteredParticipant{AccountID: account.ID, Nickname: "Linh"},
		},
		{
			name:   "anonymous",
			caller: domain.Caller{},
			want:   domain.AnonymousParticipant{},
		},
		{
			name:    "guest of another group",
			caller:  domain.Caller{GuestID: &stranger.ID},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown guest",
			caller:  domain.Caller{GuestID: &unknownGuest},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown account",
			caller:  domain.Caller{AccountID: &unknownAccount},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.participants.Resolve(ctx, group.ID, tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParticipantService_Namer(t *testing.T) {
	ctx := context.Background()
	env := setup(t)
	group := env.openGroup(t, 1)

	guest, err := env.sessions.JoinGuest(ctx, group.ID, "Mai")
	require.NoError(t, err)
	blank, err := env.sessions.JoinGuest(ctx, group.ID, "")
	require.NoError(t, err)
	account, err := env.people.CreateAccount(ctx, domain.Account{Email: "linh@example.com", Nickname: "Linh"})
	require.NoError(t, err)

	participants := []domain.Participant{
		domain.GuestParticipant{GuestID: guest.ID},
		domain.GuestParticipant{GuestID: blank.ID},
		domain.GuestParticipant{GuestID: uuid.New()},
		domain.RegisteredParticipant{AccountID: account.ID},
		domain.RegisteredParticipant{AccountID: 404},
		domain.AnonymousParticipant{},
	}
	name, err := env.participants.Namer(ctx, participants)
	require.NoError(t, err)

	got := make([]string, len(participants))
	for i, p := range participants {
		got[i] = name(p)
	}
	assert.Equal(t, []string{"Mai", "anonymous", "anonymous", "Linh", "anonymous", "anonymous"}, got)
}

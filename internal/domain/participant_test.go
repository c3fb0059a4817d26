package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		p    Participant
		want string
	}{
		{name: "guest", p: GuestParticipant{GuestID: uuid.New(), Nickname: "Mai"}, want: "Mai"},
		{name: "registered", p: RegisteredParticipant{AccountID: 3, Nickname: "Linh"}, want: "Linh"},
		{name: "anonymous", p: AnonymousParticipant{}, want: "anonymous"},
		{name: "blank guest nickname", p: GuestParticipant{GuestID: uuid.New(), Nickname: "  "}, want: "anonymous"},
		{name: "blank account nickname", p: RegisteredParticipant{AccountID: 3}, want: "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.p))
		})
	}
}

func TestParseParticipantRef(t *testing.T) {
	guestID := uuid.New()

	p, err := ParseParticipantRef(GuestParticipant{GuestID: guestID}.Ref())
	require.NoError(t, err)
	assert.Equal(t, GuestParticipant{GuestID: guestID}, p)

	p, err = ParseParticipantRef("account:42")
	require.NoError(t, err)
	assert.Equal(t, RegisteredParticipant{AccountID: 42}, p)

	p, err = ParseParticipantRef("anonymous")
	require.NoError(t, err)
	assert.Equal(t, AnonymousParticipant{}, p)

	for _, bad := range []string{"guest:nope", "account:0", "account:x", "staff:1", "guest"} {
		_, err := ParseParticipantRef(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestParticipantKind(t *testing.T) {
	assert.Equal(t, "guest", ParticipantKind(GuestParticipant{}))
	assert.Equal(t, "account", ParticipantKind(RegisteredParticipant{}))
	assert.Equal(t, "anonymous", ParticipantKind(AnonymousParticipant{}))
}

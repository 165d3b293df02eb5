package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(newStubWordSource())
}

// checkInvariants asserts the ledger mirrors the player set and that exactly
// one player is the host whenever the room is non-empty.
func checkInvariants(t *testing.T, r *Room) {
	t.Helper()

	assert.Len(t, r.Scores, len(r.Players))
	hosts := 0
	for _, p := range r.Players {
		_, ok := r.Scores[p.ID]
		assert.True(t, ok, "player %s missing from score ledger", p.ID)
		if p.IsHost {
			hosts++
			assert.Equal(t, r.HostID, p.ID)
		}
	}
	if len(r.Players) > 0 {
		assert.Equal(t, 1, hosts, "expected exactly one host")
	}
	assert.LessOrEqual(t, len(r.Players), r.MaxPlayers)
}

func TestCreateRoom(t *testing.T) {
	s := newTestStore()

	r := s.CreateRoom("Test Room", VisibilityPublic, "host-id", "Host Name")

	require.NotNil(t, r)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Test Room", r.Name)
	assert.Equal(t, VisibilityPublic, r.Visibility)
	assert.Equal(t, "host-id", r.HostID)
	assert.Equal(t, StateWaiting, r.GameState)
	require.Len(t, r.Players, 1)
	assert.Equal(t, "Host Name", r.Players[0].Name)
	assert.True(t, r.Players[0].IsHost)
	assert.True(t, r.Players[0].Connected)
	assert.Equal(t, DefaultMaxPlayers, r.MaxPlayers)
	assert.Equal(t, DefaultRoundDuration, r.RoundDuration)
	checkInvariants(t, r)
}

func TestCreateRoomUniqueIDs(t *testing.T) {
	s := newTestStore()

	r1 := s.CreateRoom("Room 1", VisibilityPublic, "host-1", "Host 1")
	r2 := s.CreateRoom("Room 2", VisibilityPublic, "host-2", "Host 2")

	assert.NotEqual(t, r1.ID, r2.ID)
}

func TestJoinRoom(t *testing.T) {
	s := newTestStore()
	r := s.CreateRoom("Test Room", VisibilityPublic, "host-id", "Host")

	joined, p, err := s.JoinRoom(r.ID, "player-id", "Player Name")

	require.NoError(t, err)
	require.NotNil(t, joined)
	require.NotNil(t, p)
	assert.Len(t, joined.Players, 2)
	assert.Equal(t, "Player Name", p.Name)
	assert.False(t, p.IsHost)
	assert.Equal(t, 0, joined.Scores["player-id"])
	checkInvariants(t, joined)
}

func TestJoinUnknownRoom(t *testing.T) {
	s := newTestStore()

	joined, p, err := s.JoinRoom("no-such-room", "player-id", "Player")

	assert.NoError(t, err)
	assert.Nil(t, joined)
	assert.Nil(t, p)
}

func TestJoinFullRoom(t *testing.T) {
	s := newTestStore()
	r := s.CreateRoom("Test Room", VisibilityPublic, "host-id", "Host")

	for i := 0; i < DefaultMaxPlayers-1; i++ {
		_, _, err := s.JoinRoom(r.ID, fmt.Sprintf("player-%d", i), fmt.Sprintf("Player %d", i))
		require.NoError(t, err)
	}

	joined, _, err := s.JoinRoom(r.ID, "extra-player", "Extra Player")

	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Nil(t, joined)

	after := s.GetRoom(r.ID)
	require.NotNil(t, after)
	assert.Len(t, after.Players, DefaultMaxPlayers)
	assert.NotContains(t, after.Scores, "extra-player")
	checkInvariants(t, after)
}

func TestLeaveRoom(t *testing.T) {
	s := newTestStore()
	r := s.CreateRoom("Test Room", VisibilityPublic, "host-id", "Host")
	s.JoinRoom(r.ID, "player-id", "Player")

	roomID, remaining, ok := s.LeaveRoom("player-id")

	require.True(t, ok)
	assert.Equal(t, r.ID, roomID)
	require.NotNil(t, remaining)
	assert.Len(t, remaining.Players, 1)
	assert.NotContains(t, remaining.Scores, "player-id")
	checkInvariants(t, remaining)
}

func TestLeaveRoomUnknownPlayer(t *testing.T) {
	s := newTestStore()

	_, _, ok := s.LeaveRoom("ghost")

	assert.False(t, ok)
}

func TestLeaveRoomReassignsHost(t *testing.T) {
	s := newTestStore()
	r := s.CreateRoom("Test Room", VisibilityPublic, "host-id", "Host")
	s.JoinRoom(r.ID, "player-id", "Player")

	_, remaining, ok := s.LeaveRoom("host-id")

	require.True(t, ok)
	require.NotNil(t, remaining)
	assert.Equal(t, "player-id", remaining.HostID)
	require.Len(t, remaining.Players, 1)
	assert.True(t, remaining.Players[0].IsHost)
	checkInvariants(t, remaining)
}

func TestLeaveRoomDeletesEmptyRoom(t *testing.T) {
	s := newTestStore()
	r := s.CreateRoom("Test Room", VisibilityPublic, "host-id", "Host")

	roomID, remaining, ok := s.LeaveRoom("host-id")

	require.True(t, ok)
	assert.Equal(t, r.ID, roomID)
	assert.Nil(t, remaining)
	assert.Nil(t, s.GetRoom(r.ID))
	assert.Nil(t, s.GetRoomByPlayer("host-id"))
}

func TestInvariantsAcrossJoinLeaveSequences(t *testing.T) {
	s := newTestStore()
	r := s.CreateRoom("Churn", VisibilityPublic, "p0", "P0")

	for i := 1; i <= 6; i++ {
		_, _, err := s.JoinRoom(r.ID, fmt.Sprintf("p%d", i), fmt.Sprintf("P%d", i))
		require.NoError(t, err)
		checkInvariants(t, s.GetRoom(r.ID))
	}

	// Peel players off from the front, host included, checking after each.
	for i := 0; i < 6; i++ {
		_, remaining, ok := s.LeaveRoom(fmt.Sprintf("p%d", i))
		require.True(t, ok)
		require.NotNil(t, remaining)
		checkInvariants(t, remaining)
	}

	_, remaining, ok := s.LeaveRoom("p6")
	require.True(t, ok)
	assert.Nil(t, remaining)
}

func TestGetRoomByPlayer(t *testing.T) {
	s := newTestStore()
	r := s.CreateRoom("Test Room", VisibilityPublic, "host-id", "Host")
	s.JoinRoom(r.ID, "player-id", "Player")

	assert.Equal(t, r.ID, s.GetRoomByPlayer("player-id").ID)
	assert.Nil(t, s.GetRoomByPlayer("stranger"))
}

func TestListPublicRooms(t *testing.T) {
	s := newTestStore()
	pub := s.CreateRoom("Open", VisibilityPublic, "h1", "H1")
	s.CreateRoom("Secret", VisibilityPrivate, "h2", "H2")
	s.JoinRoom(pub.ID, "p1", "P1")

	infos := s.ListPublicRooms()

	require.Len(t, infos, 1)
	assert.Equal(t, pub.ID, infos[0].ID)
	assert.Equal(t, "Open", infos[0].Name)
	assert.Equal(t, 2, infos[0].PlayerCount)
	assert.Equal(t, StateWaiting, infos[0].GameState)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestStore()
	r := s.CreateRoom("Test Room", VisibilityPublic, "host-id", "Host")

	r.Name = "mutated"
	r.Scores["intruder"] = 99
	r.Players[0].Name = "mutated"

	fresh := s.GetRoom(r.ID)
	assert.Equal(t, "Test Room", fresh.Name)
	assert.NotContains(t, fresh.Scores, "intruder")
	assert.Equal(t, "Host", fresh.Players[0].Name)
}

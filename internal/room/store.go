package room

import (
	"errors"
	"sync"

	"github.com/ntammineni5/pictionary/internal/words"
	"github.com/ntammineni5/pictionary/pkg/utils"
)

var ErrRoomFull = errors.New("room is full")

// WordSource supplies the three word choices offered at the start of a turn.
type WordSource interface {
	DrawThree() []words.Word
}

// Store is the single in-memory authority over rooms. Every mutation goes
// through its mutex, so room state is never touched concurrently even though
// timer callbacks and client messages arrive on different goroutines.
type Store struct {
	mu            sync.RWMutex
	rooms         map[string]*Room
	playerRooms   map[string]string
	words         WordSource
	roundDuration int
}

func NewStore(source WordSource) *Store {
	return &Store{
		rooms:         make(map[string]*Room),
		playerRooms:   make(map[string]string),
		words:         source,
		roundDuration: DefaultRoundDuration,
	}
}

// SetRoundDuration overrides the round length applied to rooms created later.
func (s *Store) SetRoundDuration(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seconds > 0 {
		s.roundDuration = seconds
	}
}

// CreateRoom allocates a fresh room with the host as its only player and
// returns a snapshot of it. Returns nil if no id could be generated.
func (s *Store) CreateRoom(name string, visibility Visibility, hostID, hostName string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, err := utils.GenShortID()
	if err != nil {
		return nil
	}
	for _, taken := s.rooms[roomID]; taken; _, taken = s.rooms[roomID] {
		if roomID, err = utils.GenShortID(); err != nil {
			return nil
		}
	}

	host := &Player{ID: hostID, Name: hostName, IsHost: true, Connected: true}
	r := &Room{
		ID:              roomID,
		Name:            name,
		Visibility:      visibility,
		Players:         []*Player{host},
		GameState:       StateWaiting,
		WordChoices:     []words.Word{},
		TurnOrder:       []string{},
		Scores:          map[string]int{hostID: 0},
		TimeRemaining:   s.roundDuration,
		CorrectGuessers: []string{},
		Canvas:          []Stroke{},
		HostID:          hostID,
		MaxPlayers:      DefaultMaxPlayers,
		RoundDuration:   s.roundDuration,
	}

	s.rooms[roomID] = r
	s.playerRooms[hostID] = roomID
	return r.snapshot()
}

// JoinRoom appends a new player to the room. It returns (nil, nil, nil) when
// the room does not exist and ErrRoomFull, without mutating anything, when it
// is at capacity.
func (s *Store) JoinRoom(roomID, playerID, playerName string) (*Room, *Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil, nil, nil
	}
	if len(r.Players) >= r.MaxPlayers {
		return nil, nil, ErrRoomFull
	}

	p := &Player{ID: playerID, Name: playerName, Connected: true}
	r.Players = append(r.Players, p)
	r.Scores[playerID] = 0
	s.playerRooms[playerID] = roomID

	pc := *p
	return r.snapshot(), &pc, nil
}

// LeaveRoom removes the player from whichever room holds them. The host role
// passes to the earliest-joined remaining player; an emptied room is deleted,
// in which case the returned snapshot is nil.
func (s *Store) LeaveRoom(playerID string) (string, *Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, ok := s.playerRooms[playerID]
	if !ok {
		return "", nil, false
	}
	delete(s.playerRooms, playerID)

	r, ok := s.rooms[roomID]
	if !ok {
		return "", nil, false
	}

	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	r.Players = kept
	delete(r.Scores, playerID)

	if r.HostID == playerID && len(r.Players) > 0 {
		newHost := r.Players[0]
		newHost.IsHost = true
		r.HostID = newHost.ID
	}

	if len(r.Players) == 0 {
		delete(s.rooms, roomID)
		return roomID, nil, true
	}
	return roomID, r.snapshot(), true
}

func (s *Store) GetRoom(roomID string) *Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.rooms[roomID]; ok {
		return r.snapshot()
	}
	return nil
}

func (s *Store) GetRoomByPlayer(playerID string) *Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if roomID, ok := s.playerRooms[playerID]; ok {
		if r, ok := s.rooms[roomID]; ok {
			return r.snapshot()
		}
	}
	return nil
}

// ListPublicRooms projects every public room into its listing form.
func (s *Store) ListPublicRooms() []RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]RoomInfo, 0, len(s.rooms))
	for _, r := range s.rooms {
		if r.Visibility == VisibilityPublic {
			infos = append(infos, r.info())
		}
	}
	return infos
}

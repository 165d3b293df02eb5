package room

import (
	"encoding/json"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/ntammineni5/pictionary/internal/words"
	"github.com/ntammineni5/pictionary/logger"
	"github.com/ntammineni5/pictionary/pkg/utils"
)

// closeGuessDistance is the largest edit distance still reported back to a
// guesser as a near miss.
const closeGuessDistance = 2

// Session binds inbound client events to the store, state machine and round
// timers, and fans the resulting snapshots back out. All authorization
// checks (host-only, drawer-only) live here; the store trusts its callers.
type Session struct {
	store  *Store
	timers *RoundTimers

	mu      sync.RWMutex
	clients map[string]*Client
}

func NewSession(store *Store, timers *RoundTimers) *Session {
	return &Session{
		store:   store,
		timers:  timers,
		clients: make(map[string]*Client),
	}
}

// Register adds a connected client and tells it its player id.
func (s *Session) Register(c *Client) {
	s.mu.Lock()
	s.clients[c.ID] = c
	s.mu.Unlock()

	s.sendToClient(c, EventConnected, ConnectedPayload{PlayerID: c.ID})
	logger.Info("client connected: %s", c.ID)
}

// HandleDisconnect drops the client and treats the disconnect as a leave.
func (s *Session) HandleDisconnect(c *Client) {
	s.mu.Lock()
	delete(s.clients, c.ID)
	s.mu.Unlock()

	s.handleLeave(c.ID)
	logger.Info("client disconnected: %s", c.ID)
}

// Dispatch routes one inbound envelope. Rejected actions produce exactly one
// error event to the initiator; nobody else hears about them.
func (s *Session) Dispatch(c *Client, msg WSMessage) {
	switch msg.Type {
	case EventRoomCreate:
		s.handleCreateRoom(c, msg.Data)
	case EventRoomJoin:
		s.handleJoinRoom(c, msg.Data)
	case EventRoomLeave:
		s.handleLeave(c.ID)
	case EventRoomsFetch:
		s.sendToClient(c, EventRoomsList, s.store.ListPublicRooms())
	case EventGameStart:
		s.handleStartGame(c)
	case EventSelectWord:
		s.handleSelectWord(c, msg.Data)
	case EventStroke:
		s.handleStroke(c, msg.Data)
	case EventClear:
		s.handleClearCanvas(c)
	case EventGuess:
		s.handleGuess(c, msg.Data)
	case EventStopTimer:
		s.handleStopTimer(c, msg.Data)
	default:
		logger.Debug("unknown event %q from client %s", msg.Type, c.ID)
	}
}

func (s *Session) handleCreateRoom(c *Client, data json.RawMessage) {
	var payload CreateRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.sendError(c, "Failed to create room")
		return
	}
	visibility := payload.RoomType
	if visibility != VisibilityPrivate {
		visibility = VisibilityPublic
	}

	r := s.store.CreateRoom(payload.RoomName, visibility, c.ID, payload.PlayerName)
	if r == nil {
		s.sendError(c, "Failed to create room")
		return
	}
	s.sendToClient(c, EventRoomCreated, RoomCreatedPayload{RoomID: r.ID, Room: r})

	if r.Visibility == VisibilityPublic {
		s.broadcastAll(EventRoomsList, s.store.ListPublicRooms())
	}
	logger.Info("room %s created by %s", r.ID, c.ID)
}

func (s *Session) handleJoinRoom(c *Client, data json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.sendError(c, "Failed to join room")
		return
	}

	r, p, err := s.store.JoinRoom(payload.RoomID, c.ID, payload.PlayerName)
	if err != nil {
		s.sendError(c, "Room is full")
		return
	}
	if r == nil {
		s.sendError(c, "Room not found")
		return
	}

	s.sendToClient(c, EventRoomJoined, RoomJoinedPayload{Room: r, PlayerID: c.ID})
	s.sendToRoom(r, EventPlayerJoined, p)
	s.sendToRoom(r, EventRoomUpdated, r)

	if r.Visibility == VisibilityPublic {
		s.broadcastAll(EventRoomsList, s.store.ListPublicRooms())
	}
}

func (s *Session) handleLeave(playerID string) {
	roomID, remaining, ok := s.store.LeaveRoom(playerID)
	if !ok {
		return
	}

	if remaining == nil {
		// Last player out; the room is gone and so is its countdown.
		s.timers.Stop(roomID)
		s.broadcastAll(EventRoomsList, s.store.ListPublicRooms())
		logger.Info("room %s deleted (empty)", roomID)
		return
	}

	s.sendToRoom(remaining, EventPlayerLeft, playerID)
	s.sendToRoom(remaining, EventRoomUpdated, remaining)
	if remaining.Visibility == VisibilityPublic {
		s.broadcastAll(EventRoomsList, s.store.ListPublicRooms())
	}
}

func (s *Session) handleStartGame(c *Client) {
	r := s.store.GetRoomByPlayer(c.ID)
	if r == nil || r.HostID != c.ID {
		s.sendError(c, "Only host can start the game")
		return
	}
	if len(r.Players) < 2 {
		s.sendError(c, "Need at least 2 players to start")
		return
	}

	started := s.store.StartGame(r.ID)
	if started == nil {
		s.sendError(c, "Failed to start game")
		return
	}

	s.sendToRoom(started, EventGameStarted, started)
	s.sendToPlayer(started.CurrentDrawer, EventWordSelection, WordSelectionPayload{WordChoices: started.WordChoices})
	logger.Info("game started in room %s, drawer %s", started.ID, started.CurrentDrawer)
}

func (s *Session) handleSelectWord(c *Client, data json.RawMessage) {
	var w words.Word
	if err := json.Unmarshal(data, &w); err != nil {
		s.sendError(c, "Invalid word selection")
		return
	}

	r := s.store.GetRoomByPlayer(c.ID)
	if r == nil || r.CurrentDrawer != c.ID {
		s.sendError(c, "Not your turn")
		return
	}

	updated := s.store.SelectWord(r.ID, w)
	if updated == nil {
		return
	}

	// The drawer sees the word; everyone else just sees the round begin.
	s.sendToClient(c, EventRoundStart, RoundStartPayload{
		Drawer: c.ID,
		Word:   w.Text,
		Timer:  updated.RoundDuration,
	})
	s.sendToRoomExcept(updated, c.ID, EventRoundStart, RoundStartPayload{
		Drawer: c.ID,
		Timer:  updated.RoundDuration,
	})
	s.sendToRoom(updated, EventRoomUpdated, updated)

	s.startRoundTimer(updated.ID, updated.RoundDuration)
}

func (s *Session) handleStroke(c *Client, data json.RawMessage) {
	r := s.store.GetRoomByPlayer(c.ID)
	if r == nil || r.CurrentDrawer != c.ID {
		return
	}

	var stroke Stroke
	if err := json.Unmarshal(data, &stroke); err != nil {
		logger.Debug("invalid stroke from %s: %v", c.ID, err)
		return
	}

	s.store.AddStroke(r.ID, stroke)
	s.sendToRoomExcept(r, c.ID, EventStroke, stroke)
}

func (s *Session) handleClearCanvas(c *Client) {
	r := s.store.GetRoomByPlayer(c.ID)
	if r == nil || r.CurrentDrawer != c.ID {
		return
	}

	s.store.ClearCanvas(r.ID)
	s.sendToRoom(r, EventClear, struct{}{})
}

func (s *Session) handleGuess(c *Client, data json.RawMessage) {
	var payload GuessPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	r := s.store.GetRoomByPlayer(c.ID)
	if r == nil || r.CurrentDrawer == c.ID {
		return
	}
	if !c.guessLimiter.Allow() {
		logger.Debug("guess rate limit hit for client %s", c.ID)
		return
	}

	correct := s.store.SubmitGuess(r.ID, c.ID, payload.Guess)

	playerName := "Unknown"
	if p := r.player(c.ID); p != nil {
		playerName = p.Name
	}

	s.sendToClient(c, EventGuessResult, GuessResultPayload{
		Correct:    correct,
		PlayerID:   c.ID,
		PlayerName: playerName,
	})

	if correct {
		s.sendToPlayer(r.CurrentDrawer, EventGuessCorrect, GuessCorrectPayload{
			PlayerID:   c.ID,
			PlayerName: playerName,
		})
		return
	}

	if r.CurrentWord != nil {
		dist := levenshtein.ComputeDistance(
			utils.NormalizeGuess(payload.Guess),
			utils.NormalizeGuess(r.CurrentWord.Text),
		)
		if dist > 0 && dist <= closeGuessDistance {
			s.sendToClient(c, EventGuessClose, GuessClosePayload{Guess: payload.Guess, Distance: dist})
		}
	}
}

func (s *Session) handleStopTimer(c *Client, data json.RawMessage) {
	var payload StopTimerPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	r := s.store.GetRoomByPlayer(c.ID)
	if r == nil || r.CurrentDrawer != c.ID {
		return
	}

	// Only the countdown's owner may settle the round. If expiry already won
	// the race, or the stop arrives during the round-end grace window, this
	// is a no-op rather than a second settlement.
	if !s.timers.Stop(r.ID) {
		return
	}
	s.finishRound(r.ID, payload.CorrectGuessers, true)
}

// startRoundTimer wires the room's countdown into tick broadcasts and the
// expiry round-end path.
func (s *Session) startRoundTimer(roomID string, duration int) {
	s.timers.Start(roomID, duration,
		func(remaining int) {
			s.store.SetTimeRemaining(roomID, remaining)
			if r := s.store.GetRoom(roomID); r != nil {
				s.sendToRoom(r, EventTimerUpdate, remaining)
			}
		},
		func() {
			r := s.store.GetRoom(roomID)
			if r == nil {
				return
			}
			s.finishRound(roomID, r.CorrectGuessers, false)
		},
	)
}

// finishRound settles the round, announces the results and schedules the
// advance to the next turn after the grace delay.
func (s *Session) finishRound(roomID string, guessers []string, manualStop bool) {
	ended := s.store.EndRound(roomID, guessers)
	if ended == nil {
		return
	}

	if manualStop {
		s.sendToRoom(ended, EventTimerStopped, struct{}{})
	}

	word := ""
	if ended.CurrentWord != nil {
		word = ended.CurrentWord.Text
	}
	s.sendToRoom(ended, EventRoundEnd, RoundEndPayload{Word: word, Scores: ended.Scores})
	s.sendToRoom(ended, EventRoomUpdated, ended)

	s.timers.ScheduleAdvance(roomID, func() {
		s.advanceRound(roomID)
	})
}

// advanceRound moves the room to the next turn, or ends the game once the
// turn order is exhausted.
func (s *Session) advanceRound(roomID string) {
	next := s.store.NextRound(roomID)
	if next == nil {
		return
	}

	if next.GameState == StateGameEnd {
		winner, _ := s.store.Winner(roomID)
		s.sendToRoom(next, EventGameEnd, GameEndPayload{FinalScores: next.Scores, Winner: winner})
		logger.Info("game over in room %s, winner %s", roomID, winner)
		return
	}

	s.sendToRoom(next, EventRoomUpdated, next)
	s.sendToPlayer(next.CurrentDrawer, EventWordSelection, WordSelectionPayload{WordChoices: next.WordChoices})
}

func (s *Session) sendError(c *Client, message string) {
	s.sendToClient(c, EventError, message)
}

func (s *Session) sendToClient(c *Client, event string, payload any) {
	msg, err := encodeMessage(event, payload)
	if err != nil {
		logger.Error("encode %s: %v", event, err)
		return
	}
	c.enqueue(msg)
}

func (s *Session) sendToPlayer(playerID, event string, payload any) {
	s.mu.RLock()
	c, ok := s.clients[playerID]
	s.mu.RUnlock()
	if ok {
		s.sendToClient(c, event, payload)
	}
}

func (s *Session) sendToRoom(r *Room, event string, payload any) {
	msg, err := encodeMessage(event, payload)
	if err != nil {
		logger.Error("encode %s: %v", event, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range r.Players {
		if c, ok := s.clients[p.ID]; ok {
			c.enqueue(msg)
		}
	}
}

func (s *Session) sendToRoomExcept(r *Room, exceptID, event string, payload any) {
	msg, err := encodeMessage(event, payload)
	if err != nil {
		logger.Error("encode %s: %v", event, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range r.Players {
		if p.ID == exceptID {
			continue
		}
		if c, ok := s.clients[p.ID]; ok {
			c.enqueue(msg)
		}
	}
}

func (s *Session) broadcastAll(event string, payload any) {
	msg, err := encodeMessage(event, payload)
	if err != nil {
		logger.Error("encode %s: %v", event, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		c.enqueue(msg)
	}
}

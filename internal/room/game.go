package room

import (
	"math/rand"
	"slices"
	"time"

	"github.com/ntammineni5/pictionary/internal/words"
	"github.com/ntammineni5/pictionary/pkg/utils"
)

// StartGame shuffles the current players into a turn order and moves the room
// into word selection. Returns nil, without mutating, when the room is
// unknown or has fewer than two players.
func (s *Store) StartGame(roomID string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok || len(r.Players) < 2 {
		return nil
	}

	order := make([]string, len(r.Players))
	for i, p := range r.Players {
		order[i] = p.ID
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	r.TurnOrder = order
	r.CurrentTurnIndex = 0
	r.CurrentDrawer = order[0]
	r.GameState = StateWordSelection
	r.WordChoices = s.words.DrawThree()
	r.Canvas = []Stroke{}

	return r.snapshot()
}

// SelectWord commits the drawer's chosen word and starts the drawing phase.
// Whether the caller is actually the drawer is the orchestrator's problem.
func (s *Store) SelectWord(roomID string, w words.Word) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil
	}

	chosen := w
	r.SelectedWord = &chosen
	r.CurrentWord = &chosen
	r.GameState = StateDrawing
	now := time.Now()
	r.RoundStartTime = &now
	r.TimeRemaining = r.RoundDuration
	r.CorrectGuessers = []string{}
	// Choices are only live during word selection.
	r.WordChoices = []words.Word{}

	return r.snapshot()
}

// SubmitGuess checks the guess against the current word. Matching ignores
// case, surrounding whitespace and accents. A correct guesser is recorded at
// most once; no points are awarded here.
func (s *Store) SubmitGuess(roomID, playerID, guess string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok || r.CurrentWord == nil {
		return false
	}

	correct := utils.NormalizeGuess(guess) == utils.NormalizeGuess(r.CurrentWord.Text)
	if correct && !slices.Contains(r.CorrectGuessers, playerID) {
		r.CorrectGuessers = append(r.CorrectGuessers, playerID)
	}
	return correct
}

// EndRound settles the round's scores and moves the room to round-end. The
// drawer earns the word's points once if anyone guessed it; each listed
// guesser earns the same. Duplicate or stale guesser ids are dropped so a
// sloppy caller cannot double-award or grow the ledger beyond the current
// players. The word and canvas stay put for the round-end display.
func (s *Store) EndRound(roomID string, guessers []string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok || r.CurrentWord == nil {
		return nil
	}

	awarded := make([]string, 0, len(guessers))
	for _, id := range guessers {
		if _, inLedger := r.Scores[id]; inLedger && !slices.Contains(awarded, id) {
			awarded = append(awarded, id)
		}
	}

	points := r.CurrentWord.Points
	if len(awarded) > 0 {
		if _, inLedger := r.Scores[r.CurrentDrawer]; inLedger {
			r.Scores[r.CurrentDrawer] += points
		}
	}
	for _, id := range awarded {
		r.Scores[id] += points
	}

	for _, p := range r.Players {
		p.Score = r.Scores[p.ID]
	}

	r.GameState = StateRoundEnd
	r.RoundStartTime = nil

	return r.snapshot()
}

// NextRound hands the pencil to the next player in the turn order, or ends
// the game once everyone has drawn.
func (s *Store) NextRound(roomID string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil
	}

	r.CurrentTurnIndex++
	if r.CurrentTurnIndex >= len(r.TurnOrder) {
		r.GameState = StateGameEnd
		r.CurrentWord = nil
		r.SelectedWord = nil
		return r.snapshot()
	}

	r.CurrentDrawer = r.TurnOrder[r.CurrentTurnIndex]
	r.GameState = StateWordSelection
	r.WordChoices = s.words.DrawThree()
	r.CurrentWord = nil
	r.SelectedWord = nil
	r.Canvas = []Stroke{}
	r.CorrectGuessers = []string{}
	r.TimeRemaining = r.RoundDuration

	return r.snapshot()
}

// Winner returns the id of the highest-scoring player; ties go to whoever
// joined first. The second return is false for an unknown or empty room.
func (s *Store) Winner(roomID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[roomID]
	if !ok || len(r.Players) == 0 {
		return "", false
	}

	best := r.Players[0]
	for _, p := range r.Players[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best.ID, true
}

// AddStroke appends a stroke to the round's canvas.
func (s *Store) AddStroke(roomID string, stroke Stroke) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		r.Canvas = append(r.Canvas, stroke)
	}
}

// ClearCanvas wipes the round's canvas.
func (s *Store) ClearCanvas(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		r.Canvas = []Stroke{}
	}
}

// SetTimeRemaining records the countdown position reported by the room's
// timer so snapshots reflect it.
func (s *Store) SetTimeRemaining(roomID string, seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		r.TimeRemaining = seconds
	}
}

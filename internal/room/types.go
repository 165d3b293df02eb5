package room

import (
	"maps"
	"slices"
	"time"

	"github.com/ntammineni5/pictionary/internal/words"
)

// GameState is the lifecycle phase of a room's game.
type GameState string

const (
	StateWaiting       GameState = "waiting"
	StateWordSelection GameState = "word-selection"
	StateDrawing       GameState = "drawing"
	StateRoundEnd      GameState = "round-end"
	StateGameEnd       GameState = "game-end"
)

// Visibility controls whether a room shows up in the public listing.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

const (
	DefaultMaxPlayers    = 15
	DefaultRoundDuration = 60 // seconds
)

type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	IsHost    bool   `json:"isHost"`
	Connected bool   `json:"connected"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is relayed and stored as-is; the engine never interprets it.
type Stroke struct {
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Points []Point `json:"points"`
}

// Room is the central aggregate. The Store owns every Room exclusively;
// everything handed out of the Store is a snapshot copy.
type Room struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Visibility       Visibility     `json:"type"`
	Players          []*Player      `json:"players"`
	GameState        GameState      `json:"gameState"`
	CurrentDrawer    string         `json:"currentDrawer"`
	CurrentWord      *words.Word    `json:"currentWord"`
	SelectedWord     *words.Word    `json:"selectedWord"`
	WordChoices      []words.Word   `json:"wordChoices"`
	TurnOrder        []string       `json:"turnOrder"`
	CurrentTurnIndex int            `json:"currentTurnIndex"`
	Scores           map[string]int `json:"scores"`
	TimeRemaining    int            `json:"roundTimer"`
	RoundStartTime   *time.Time     `json:"roundStartTime"`
	CorrectGuessers  []string       `json:"correctGuessers"`
	Canvas           []Stroke       `json:"canvas"`
	HostID           string         `json:"hostId"`
	MaxPlayers       int            `json:"maxPlayers"`
	RoundDuration    int            `json:"roundDuration"`
}

// RoomInfo is the public-listing projection of a Room.
type RoomInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PlayerCount int       `json:"playerCount"`
	GameState   GameState `json:"gameState"`
}

// snapshot deep-copies the room so callers never hold live state.
func (r *Room) snapshot() *Room {
	cp := *r
	cp.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		pc := *p
		cp.Players[i] = &pc
	}
	cp.WordChoices = slices.Clone(r.WordChoices)
	cp.TurnOrder = slices.Clone(r.TurnOrder)
	cp.Scores = maps.Clone(r.Scores)
	cp.CorrectGuessers = slices.Clone(r.CorrectGuessers)
	cp.Canvas = slices.Clone(r.Canvas)
	if r.CurrentWord != nil {
		w := *r.CurrentWord
		cp.CurrentWord = &w
	}
	if r.SelectedWord != nil {
		w := *r.SelectedWord
		cp.SelectedWord = &w
	}
	if r.RoundStartTime != nil {
		t := *r.RoundStartTime
		cp.RoundStartTime = &t
	}
	return &cp
}

func (r *Room) info() RoomInfo {
	return RoomInfo{
		ID:          r.ID,
		Name:        r.Name,
		PlayerCount: len(r.Players),
		GameState:   r.GameState,
	}
}

func (r *Room) player(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

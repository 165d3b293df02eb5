package room

import (
	"encoding/json"

	"github.com/ntammineni5/pictionary/internal/words"
)

// WSMessage is the envelope every websocket frame uses in both directions.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound event types.
const (
	EventRoomCreate = "room:create"
	EventRoomJoin   = "room:join"
	EventRoomLeave  = "room:leave"
	EventRoomsFetch = "rooms:fetch"
	EventGameStart  = "game:start"
	EventSelectWord = "game:select-word"
	EventStopTimer  = "game:stop-timer"
	EventStroke     = "drawing:stroke"
	EventClear      = "drawing:clear"
	EventGuess      = "guess:submit"
)

// Outbound event types.
const (
	EventConnected     = "connected"
	EventRoomCreated   = "room:created"
	EventRoomJoined    = "room:joined"
	EventRoomUpdated   = "room:updated"
	EventPlayerJoined  = "room:player-joined"
	EventPlayerLeft    = "room:player-left"
	EventRoomsList     = "rooms:list"
	EventGameStarted   = "game:started"
	EventWordSelection = "game:word-selection"
	EventRoundStart    = "game:round-start"
	EventTimerUpdate   = "game:timer-update"
	EventTimerStopped  = "game:timer-stopped"
	EventGuessResult   = "guess:result"
	EventGuessCorrect  = "guess:correct"
	EventGuessClose    = "guess:close"
	EventRoundEnd      = "game:round-end"
	EventGameEnd       = "game:end"
	EventError         = "error"
)

type CreateRoomPayload struct {
	RoomName   string     `json:"roomName"`
	RoomType   Visibility `json:"roomType"`
	PlayerName string     `json:"playerName"`
}

type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type GuessPayload struct {
	Guess string `json:"guess"`
}

type StopTimerPayload struct {
	CorrectGuessers []string `json:"correctGuessers"`
}

type ConnectedPayload struct {
	PlayerID string `json:"playerId"`
}

type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
	Room   *Room  `json:"room"`
}

type RoomJoinedPayload struct {
	Room     *Room  `json:"room"`
	PlayerID string `json:"playerId"`
}

type WordSelectionPayload struct {
	WordChoices []words.Word `json:"wordChoices"`
}

// RoundStartPayload carries the word only in the drawer's copy.
type RoundStartPayload struct {
	Drawer string `json:"drawer"`
	Word   string `json:"word,omitempty"`
	Timer  int    `json:"timer"`
}

type GuessResultPayload struct {
	Correct    bool   `json:"correct"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type GuessCorrectPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// GuessClosePayload tells a guesser their wrong answer was nearly right.
type GuessClosePayload struct {
	Guess    string `json:"guess"`
	Distance int    `json:"distance"`
}

type RoundEndPayload struct {
	Word   string         `json:"word"`
	Scores map[string]int `json:"scores"`
}

type GameEndPayload struct {
	FinalScores map[string]int `json:"finalScores"`
	Winner      string         `json:"winner"`
}

// encodeMessage marshals a payload into the wire envelope.
func encodeMessage(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{Type: event, Data: data})
}

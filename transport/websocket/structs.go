package websocket

import "github.com/rocketscienceinc/gamerules-backend/internal/entity"

const (
	cmdMove    = "move"
	cmdPing    = "ping"
	cmdSetTurn = "set_turn"

	frameTypeGameUpdate = "game_update"
	frameTypeError      = "error"
	frameTypePong       = "pong"

	roleTypePlayer   = "player"
	roleTypeObserver = "observer"
)

// Command is one inbound frame. Position is a pointer so a missing cell can
// be told apart from cell 0. Token is accepted for compatibility with older
// clients; the connection parameter is authoritative.
type Command struct {
	Cmd      string `json:"cmd"`
	Position *int   `json:"position,omitempty"`
	Player   string `json:"player,omitempty"`
	Token    string `json:"token,omitempty"`
}

type gameUpdateFrame struct {
	Type string       `json:"type"`
	Game *entity.Game `json:"game"`
}

type errorFrame struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

type pongFrame struct {
	Type string `json:"type"`
}

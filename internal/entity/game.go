package entity

const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"

	MarkX = "X"
	MarkO = "O"

	WinnerDraw = "draw"

	EmptyCell = ""
)

// Game is the authoritative record of one match. Turn and Winner hold
// usernames, not marks; Symbols maps each registered player to its mark.
type Game struct {
	ID      string            `json:"id"`
	Board   [9]string         `json:"board"`
	Players [2]string         `json:"players"`
	Symbols map[string]string `json:"symbols"`
	Turn    string            `json:"turn"`
	Status  string            `json:"status"`
	Winner  string            `json:"winner,omitempty"`
	Version uint64            `json:"version"`
	Local   bool              `json:"local,omitempty"`
	Host    string            `json:"host,omitempty"`
}

// NewGame - creates a waiting game for two registered players. The first
// player gets X, the second O; starting decides who moves first.
func NewGame(id string, players [2]string, starting string, local bool) *Game {
	if starting == "" {
		starting = players[0]
	}

	return &Game{
		ID:      id,
		Players: players,
		Symbols: map[string]string{
			players[0]: MarkX,
			players[1]: MarkO,
		},
		Turn:   starting,
		Status: StatusWaiting,
		Local:  local,
		Host:   players[0],
	}
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// HasPlayer reports whether username is one of the two registered players.
func (that *Game) HasPlayer(username string) bool {
	return username == that.Players[0] || username == that.Players[1]
}

// Opponent returns the other registered player.
func (that *Game) Opponent(username string) string {
	if username == that.Players[0] {
		return that.Players[1]
	}
	return that.Players[0]
}

// Clone returns a deep copy so callers can hand snapshots around without
// racing the record guarded by the store.
func (that *Game) Clone() *Game {
	copied := *that

	copied.Symbols = make(map[string]string, len(that.Symbols))
	for player, mark := range that.Symbols {
		copied.Symbols[player] = mark
	}

	return &copied
}

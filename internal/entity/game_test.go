package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	t.Run("Creates a waiting game with marks assigned in order", func(t *testing.T) {
		// Given: two players and an explicit starting player
		game := NewGame("48239", [2]string{"alice", "bob"}, "bob", false)

		// Then: the record starts waiting with X for the first player
		assert.Equal(t, StatusWaiting, game.Status)
		assert.Equal(t, MarkX, game.Symbols["alice"])
		assert.Equal(t, MarkO, game.Symbols["bob"])
		assert.Equal(t, "bob", game.Turn)
		assert.Equal(t, "alice", game.Host)
		assert.Zero(t, game.Version)
	})

	t.Run("Defaults the starting turn to the first player", func(t *testing.T) {
		// Given: no explicit starting player
		game := NewGame("48239", [2]string{"alice", "bob"}, "", false)

		// Then: the first registered player starts
		assert.Equal(t, "alice", game.Turn)
	})
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.True(t, game.IsWaiting())
	})

	t.Run("IsInProgress returns true when game status is in_progress", func(t *testing.T) {
		game := &Game{Status: StatusInProgress}
		assert.True(t, game.IsInProgress())
	})

	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.True(t, game.IsFinished())
	})
}

func TestGame_HasPlayer(t *testing.T) {
	t.Run("Knows its registered players", func(t *testing.T) {
		// Given: a game between alice and bob
		game := NewGame("48239", [2]string{"alice", "bob"}, "", false)

		// Then: both players are registered, strangers are not
		assert.True(t, game.HasPlayer("alice"))
		assert.True(t, game.HasPlayer("bob"))
		assert.False(t, game.HasPlayer("mallory"))
	})
}

func TestGame_Opponent(t *testing.T) {
	t.Run("Returns the other registered player", func(t *testing.T) {
		// Given: a game between alice and bob
		game := NewGame("48239", [2]string{"alice", "bob"}, "", false)

		// Then: opponents are symmetric
		assert.Equal(t, "bob", game.Opponent("alice"))
		assert.Equal(t, "alice", game.Opponent("bob"))
	})
}

func TestGame_Clone(t *testing.T) {
	t.Run("Copies the symbols map instead of sharing it", func(t *testing.T) {
		// Given: a game and its clone
		game := NewGame("48239", [2]string{"alice", "bob"}, "", false)
		copied := game.Clone()

		// When: mutating the clone
		copied.Symbols["alice"] = MarkO
		copied.Board[0] = MarkX

		// Then: the original record is unaffected
		require.Equal(t, MarkX, game.Symbols["alice"])
		assert.Equal(t, EmptyCell, game.Board[0])
	})
}

// Package arbiter owns the WAITING -> IN_PROGRESS -> FINISHED state machine.
// All accepted mutations of a game record go through it.
package arbiter

import (
	"fmt"

	"github.com/rocketscienceinc/gamerules-backend/internal/apperror"
	"github.com/rocketscienceinc/gamerules-backend/internal/entity"
	"github.com/rocketscienceinc/gamerules-backend/internal/tictactoe"
)

// Move validates and applies one move by caller. The first accepted move on
// a waiting game starts it. In a local simulation game only the host may
// move, and the move is credited to whichever player owns the turn.
func Move(game *entity.Game, caller string, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameNotActive
	}

	mover := caller
	if game.Local {
		if caller != game.Host {
			return apperror.ErrForbidden
		}
		mover = game.Turn
	} else {
		if !game.HasPlayer(caller) {
			return apperror.ErrForbidden
		}
		if game.Turn != caller {
			return apperror.ErrNotYourTurn
		}
	}

	board, err := tictactoe.Apply(game.Board, cell, game.Symbols[mover])
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	game.Board = board

	if game.IsWaiting() {
		game.Status = entity.StatusInProgress
	}

	if mark, done := tictactoe.Evaluate(board); done {
		game.Status = entity.StatusFinished
		game.Turn = ""
		if mark == entity.EmptyCell {
			game.Winner = entity.WinnerDraw
		} else {
			game.Winner = mover
		}
	} else {
		game.Turn = game.Opponent(mover)
	}

	game.Version++

	return nil
}

// SetTurn reassigns who moves next. Only the host of a local simulation game
// may do this; it is how a single connection drives both sides.
func SetTurn(game *entity.Game, caller, target string) error {
	if game.IsFinished() {
		return apperror.ErrGameNotActive
	}

	if !game.Local || caller != game.Host {
		return apperror.ErrForbidden
	}

	if !game.HasPlayer(target) {
		return fmt.Errorf("%w: %s", apperror.ErrPlayerNotInGame, target)
	}

	game.Turn = target
	game.Version++

	return nil
}

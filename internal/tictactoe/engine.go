package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/gamerules-backend/internal/apperror"
	"github.com/rocketscienceinc/gamerules-backend/internal/entity"
)

// WinCombos lists the 8 winning lines: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Apply - places mark on the given cell and returns the resulting board.
// The input board is never modified.
func Apply(board [9]string, cell int, mark string) ([9]string, error) {
	if cell < 0 || cell >= len(board) {
		return board, fmt.Errorf("%w: cell %d", apperror.ErrCellOutOfRange, cell)
	}

	if board[cell] != entity.EmptyCell {
		return board, apperror.ErrCellOccupied
	}

	board[cell] = mark

	return board, nil
}

// Evaluate - checks the board for a result. It returns the winning mark and
// true when a line is complete, an empty mark and true on a draw, and false
// while the game can still continue.
func Evaluate(board [9]string) (string, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a, true
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return "", false
		}
	}

	return "", true
}

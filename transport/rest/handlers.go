package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/gamerules-backend/internal/apperror"
)

type createGameRequest struct {
	GameID   string   `json:"game_id"`
	Players  []string `json:"players"`
	Starting string   `json:"starting"`
	Local    bool     `json:"local"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}

// handleCreateGame - the creation trigger consumed by the Room service once
// a room is full.
func (that *Server) handleCreateGame(ctx echo.Context) error {
	log := that.logger.With("method", "handleCreateGame")

	var req createGameRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if len(req.Players) != 2 || req.Players[0] == "" || req.Players[1] == "" {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "exactly two players are required"})
	}

	players := [2]string{req.Players[0], req.Players[1]}

	game, err := that.game.CreateGame(ctx.Request().Context(), req.GameID, players, req.Starting, req.Local)
	if errors.Is(err, apperror.ErrGameAlreadyExists) {
		return ctx.JSON(http.StatusConflict, errorResponse{Error: apperror.ErrGameAlreadyExists.Error()})
	}

	if err != nil {
		log.Error("failed to create game", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create game"})
	}

	log.Info("game created", "gameID", game.ID)

	return ctx.JSON(http.StatusCreated, game)
}

// handleGetGame - out-of-band status query for one game record.
func (that *Server) handleGetGame(ctx echo.Context) error {
	log := that.logger.With("method", "handleGetGame")

	game, err := that.game.GetGame(ctx.Request().Context(), ctx.Param("id"))
	if errors.Is(err, apperror.ErrGameNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get game"})
	}

	return ctx.JSON(http.StatusOK, game)
}

package rest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/gamerules-backend/internal/entity"
)

type gamePlay interface {
	CreateGame(ctx context.Context, id string, players [2]string, starting string, local bool) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
}

type Server struct {
	logger *slog.Logger
	game   gamePlay
	echo   *echo.Echo
}

func New(logger *slog.Logger, game gamePlay) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		game:   game,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/ping", server.handlePing)
	e.POST("/games", server.handleCreateGame)
	e.GET("/games/:id", server.handleGetGame)

	server.echo = e

	return server
}

// Start - starts the HTTP server.
func (that *Server) Start(port string) error {
	if err := that.echo.Start(":" + port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

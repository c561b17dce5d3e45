package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gamerules-backend/internal/apperror"
	"github.com/rocketscienceinc/gamerules-backend/internal/entity"
	"github.com/rocketscienceinc/gamerules-backend/internal/hub"
)

const gamesPathPrefix = "/ws/games/"

type authService interface {
	VerifyToken(tokenString string) (string, error)
}

type gamePlay interface {
	GetGame(ctx context.Context, id string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID, caller string, cell int) (*entity.Game, error)
	SetTurn(ctx context.Context, gameID, caller, target string) (*entity.Game, error)
}

type Server struct {
	logger *slog.Logger
	auth   authService
	game   gamePlay
	hub    *hub.Hub

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, auth authService, game gamePlay, gameHub *hub.Hub) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		auth:   auth,
		game:   game,
		hub:    gameHub,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc(gamesPathPrefix, func(w http.ResponseWriter, r *http.Request) {
		that.handleAttach(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleAttach upgrades the connection and binds it to one game. Bad tokens
// and unknown games are reported over the socket before it closes, so a
// client always gets exactly one error frame for a failed attach.
func (that *Server) handleAttach(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleAttach")

	gameID := strings.TrimPrefix(r.URL.Path, gamesPathPrefix)
	if gameID == "" || strings.Contains(gameID, "/") {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	username, err := that.auth.VerifyToken(r.URL.Query().Get("token"))
	if err != nil {
		log.Warn("rejected connection", "gameID", gameID, "error", err)
		that.rejectConn(conn, apperror.ErrUnauthenticated.Error())
		return
	}

	game, err := that.game.GetGame(ctx, gameID)
	if err != nil {
		log.Warn("rejected connection", "gameID", gameID, "error", err)
		that.rejectConn(conn, apperror.ErrGameNotFound.Error())
		return
	}

	role := roleTypeObserver
	if game.HasPlayer(username) || (game.Local && username == game.Host) {
		role = roleTypePlayer
	}

	sess := newSession(that.logger, conn, that.game, that.hub, gameID, username, role)
	sess.run(ctx, game)
}

// rejectConn sends a single error frame and closes the connection.
func (that *Server) rejectConn(conn *websocket.Conn, detail string) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteJSON(errorFrame{Type: frameTypeError, Detail: detail})
	_ = conn.Close()
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gamerules-backend/internal/apperror"
	"github.com/rocketscienceinc/gamerules-backend/internal/entity"
	"github.com/rocketscienceinc/gamerules-backend/internal/hub"
	"github.com/rocketscienceinc/gamerules-backend/internal/pkg"
)

const (
	writeWait      = 10 * time.Second
	idleWait       = 5 * time.Minute
	maxMessageSize = 1024
	outboundBuffer = 8
)

// session is the concurrent unit owning one connection: a read loop
// dispatching commands and a write pump merging broadcasts with frames
// addressed to this session only.
type session struct {
	logger *slog.Logger
	conn   *websocket.Conn
	game   gamePlay
	hub    *hub.Hub

	gameID   string
	username string
	role     string
	lastSeen time.Time

	sub      *hub.Subscriber
	outbound chan []byte

	handlers map[string]func(ctx context.Context, cmd *Command)
}

func newSession(logger *slog.Logger, conn *websocket.Conn, game gamePlay, gameHub *hub.Hub, gameID, username, role string) *session {
	sess := &session{
		logger: logger.With("component", "session", "sessionID", pkg.GenerateNewSessionID(), "gameID", gameID, "username", username),
		conn:   conn,
		game:   game,
		hub:    gameHub,

		gameID:   gameID,
		username: username,
		role:     role,

		sub:      hub.NewSubscriber(),
		outbound: make(chan []byte, outboundBuffer),
	}

	sess.handlers = map[string]func(context.Context, *Command){
		cmdMove:    sess.handleMove,
		cmdPing:    sess.handlePing,
		cmdSetTurn: sess.handleSetTurn,
	}

	return sess
}

// run drives the session until the connection goes away. Disconnect only
// unsubscribes; game state is never mutated because a player left.
func (that *session) run(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "run")

	that.hub.Subscribe(that.gameID, that.sub)
	defer log.Info("session detached", "lastSeen", that.lastSeen)

	// Initial sync goes out before the pump starts, re-read after
	// subscribing so nothing between attach and subscribe is missed.
	if latest, err := that.game.GetGame(ctx, that.gameID); err == nil {
		game = latest
	}

	frame, err := json.Marshal(gameUpdateFrame{Type: frameTypeGameUpdate, Game: game})
	if err != nil {
		log.Error("failed to marshal initial snapshot", "error", err)
		that.hub.Unsubscribe(that.gameID, that.sub)
		_ = that.conn.Close()
		return
	}

	if !that.write(frame) {
		that.hub.Unsubscribe(that.gameID, that.sub)
		return
	}

	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		that.writePump()
	}()

	log.Info("session attached", "role", that.role)

	that.readLoop(ctx)

	// Unsubscribing closes the pump's broadcast channel; wait for it to
	// drain the outbound queue before the connection goes away.
	that.hub.Unsubscribe(that.gameID, that.sub)
	<-pumpDone
	_ = that.conn.Close()
}

func (that *session) readLoop(ctx context.Context) {
	log := that.logger.With("method", "readLoop")

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(idleWait))

	for {
		_, payload, err := that.conn.ReadMessage()
		if err != nil {
			log.Debug("connection closed", "error", err)
			return
		}

		_ = that.conn.SetReadDeadline(time.Now().Add(idleWait))
		that.lastSeen = time.Now()

		var cmd Command
		if err = json.Unmarshal(payload, &cmd); err != nil {
			log.Warn("malformed frame, closing connection", "error", err)
			that.sendError("malformed frame")
			return
		}

		handler, ok := that.handlers[cmd.Cmd]
		if !ok {
			that.sendError(apperror.ErrUnknownCommand.Error())
			continue
		}

		handler(ctx, &cmd)
	}
}

func (that *session) handleMove(ctx context.Context, cmd *Command) {
	if cmd.Position == nil {
		that.sendError("position is required")
		return
	}

	game, err := that.game.MakeTurn(ctx, that.gameID, that.username, *cmd.Position)
	if err != nil {
		that.sendError(errorDetail(err))
		return
	}

	that.publish(game)
}

func (that *session) handlePing(_ context.Context, _ *Command) {
	frame, err := json.Marshal(pongFrame{Type: frameTypePong})
	if err != nil {
		return
	}

	that.send(frame)
}

func (that *session) handleSetTurn(ctx context.Context, cmd *Command) {
	if cmd.Player == "" {
		that.sendError("player is required")
		return
	}

	game, err := that.game.SetTurn(ctx, that.gameID, that.username, cmd.Player)
	if err != nil {
		that.sendError(errorDetail(err))
		return
	}

	that.publish(game)
}

// publish fans the accepted snapshot out to every session on this game,
// including the issuer.
func (that *session) publish(game *entity.Game) {
	frame, err := json.Marshal(gameUpdateFrame{Type: frameTypeGameUpdate, Game: game})
	if err != nil {
		that.logger.Error("failed to marshal snapshot", "error", err)
		return
	}

	that.hub.Publish(that.gameID, game.Version, frame)
}

// sendError delivers a rejection to the issuing session only.
func (that *session) sendError(detail string) {
	frame, err := json.Marshal(errorFrame{Type: frameTypeError, Detail: detail})
	if err != nil {
		return
	}

	that.send(frame)
}

func (that *session) send(frame []byte) {
	select {
	case that.outbound <- frame:
	default:
		that.logger.Warn("outbound buffer full, dropping frame")
	}
}

func (that *session) writePump() {
	for {
		select {
		case frame, ok := <-that.sub.Frames():
			if !ok {
				that.flushOutbound()
				return
			}
			if !that.write(frame) {
				return
			}
		case frame := <-that.outbound:
			if !that.write(frame) {
				return
			}
		}
	}
}

// flushOutbound writes whatever is still queued for this session before the
// pump exits, so a rejection never vanishes on disconnect.
func (that *session) flushOutbound() {
	for {
		select {
		case frame := <-that.outbound:
			if !that.write(frame) {
				return
			}
		default:
			return
		}
	}
}

func (that *session) write(frame []byte) bool {
	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := that.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		that.logger.Debug("write failed, closing connection", "error", err)
		_ = that.conn.Close()
		return false
	}

	return true
}

var knownErrors = []error{
	apperror.ErrUnauthenticated,
	apperror.ErrForbidden,
	apperror.ErrGameNotFound,
	apperror.ErrGameAlreadyExists,
	apperror.ErrCellOutOfRange,
	apperror.ErrCellOccupied,
	apperror.ErrNotYourTurn,
	apperror.ErrGameNotActive,
	apperror.ErrPlayerNotInGame,
	apperror.ErrUnknownCommand,
}

// errorDetail maps pipeline failures to the wire detail string. Anything
// outside the taxonomy is reported as an internal error without leaking.
func errorDetail(err error) string {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gamerules-backend/internal/arbiter"
	"github.com/rocketscienceinc/gamerules-backend/internal/entity"
	"github.com/rocketscienceinc/gamerules-backend/internal/pkg"
)

// GamePlayService is the mutation pipeline: every command goes through the
// store's per-game serialization wrapping the arbiter.
type GamePlayService interface {
	CreateGame(ctx context.Context, id string, players [2]string, starting string, local bool) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID, caller string, cell int) (*entity.Game, error)
	SetTurn(ctx context.Context, gameID, caller, target string) (*entity.Game, error)
}

type gameStore interface {
	Create(ctx context.Context, game *entity.Game) (*entity.Game, error)
	Get(ctx context.Context, id string) (*entity.Game, error)
	Mutate(ctx context.Context, id string, fn func(*entity.Game) error) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger
	store  gameStore
}

func NewGamePlayService(logger *slog.Logger, store gameStore) GamePlayService {
	return &gamePlayService{
		logger: logger.With("component", "gameplay"),
		store:  store,
	}
}

// CreateGame registers a waiting game for a filled room. The Room service
// calls this with the room id and both usernames once the room is full.
func (that *gamePlayService) CreateGame(ctx context.Context, id string, players [2]string, starting string, local bool) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame")

	if id == "" {
		id = pkg.GenerateGameID()
	}

	game, err := that.store.Create(ctx, entity.NewGame(id, players, starting, local))
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info("game created", "gameID", game.ID, "local", game.Local)

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, gameID, caller string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.store.Mutate(ctx, gameID, func(game *entity.Game) error {
		return arbiter.Move(game, caller, cell)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner, "version", game.Version)
	}

	return game, nil
}

func (that *gamePlayService) SetTurn(ctx context.Context, gameID, caller, target string) (*entity.Game, error) {
	log := that.logger.With("method", "SetTurn", "gameID", gameID)

	game, err := that.store.Mutate(ctx, gameID, func(game *entity.Game) error {
		return arbiter.SetTurn(game, caller, target)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set turn: %w", err)
	}

	log.Info("turn reassigned", "turn", game.Turn, "version", game.Version)

	return game, nil
}

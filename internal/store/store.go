// Package store is the only mutation path for game records. The whole
// read-modify-write of one move runs under a per-game mutex, so two
// concurrent commands on the same game never interleave, while different
// games proceed independently.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/gamerules-backend/internal/entity"
)

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	Update(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type GameStore struct {
	repo gameRepo

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(repo gameRepo) *GameStore {
	return &GameStore{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

// Create persists a new game record. The repository rejects duplicate ids.
func (that *GameStore) Create(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	lock := that.lockFor(game.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := that.repo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game.Clone(), nil
}

func (that *GameStore) Get(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// Mutate applies fn atomically to the game with the given id and persists
// the result. When fn fails nothing is written and the stored record is
// untouched.
func (that *GameStore) Mutate(ctx context.Context, id string, fn func(*entity.Game) error) (*entity.Game, error) {
	lock := that.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if err = fn(game); err != nil {
		return nil, err
	}

	if err = that.repo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// lockFor returns the mutex serializing one game id. Entries live for the
// process lifetime.
func (that *GameStore) lockFor(id string) *sync.Mutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[id] = lock
	}

	return lock
}

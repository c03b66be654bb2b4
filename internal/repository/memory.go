package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type memoryEntry struct {
	game      *entity.Game
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository - keeps games in process memory with the same
// expiry rules as the Redis repository.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return newMemoryGameRepository(ttl, time.Now)
}

func newMemoryGameRepository(ttl time.Duration, now func() time.Time) *memoryGame {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	entry := memoryEntry{game: game.Clone()}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = entry
	that.evictExpiredLocked()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.games[id]
	if !ok || that.expired(entry) {
		return nil, ErrGameNotFound
	}

	return entry.game.Clone(), nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.games[id]
	if !ok || that.expired(entry) {
		delete(that.games, id)
		return ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

func (that *memoryGame) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}

func (that *memoryGame) evictExpiredLocked() {
	for id, entry := range that.games {
		if that.expired(entry) {
			delete(that.games, id)
		}
	}
}

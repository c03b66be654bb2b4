package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
	}
}

// CreateGame - starts a new game with an empty board.
func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(pkg.GenerateGameID())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game created", "game_id", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetOrCreateGame - returns the game with id, or a new one when the id is
// empty or the game has expired.
func (that *GameManager) GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error) {
	if id == "" {
		return that.CreateGame(ctx)
	}

	game, err := that.gameRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrGameNotFound) {
		return that.CreateGame(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// RestartGame - drops the game with id and starts a new one.
func (that *GameManager) RestartGame(ctx context.Context, id string) (*entity.Game, error) {
	log := that.logger.With("method", "RestartGame", "game_id", id)

	if id != "" {
		if err := that.gameRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
			log.Error("failed to delete game", "error", err)
		}
	}

	return that.CreateGame(ctx)
}

// MakeTurn - places the next mark at cell. An illegal move is dropped
// silently: the stored game is not touched and it is returned as is.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	return that.dispatch(ctx, id, tictactoe.Play{Cell: cell})
}

// JumpTo - moves the cursor of the game to move.
func (that *GameManager) JumpTo(ctx context.Context, id string, move int) (*entity.Game, error) {
	return that.dispatch(ctx, id, tictactoe.Jump{Move: move})
}

func (that *GameManager) dispatch(ctx context.Context, id string, action tictactoe.Action) (*entity.Game, error) {
	log := that.logger.With("method", "dispatch", "game_id", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := tictactoe.Dispatch(*game, action)
	if err != nil {
		if tictactoe.IsIllegalMove(err) {
			log.Debug("move rejected", "action", fmt.Sprintf("%+v", action), "reason", err)

			return game, nil
		}

		return nil, fmt.Errorf("failed to apply action: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("game updated", "current_move", next.CurrentMove, "history", len(next.History))

	return &next, nil
}

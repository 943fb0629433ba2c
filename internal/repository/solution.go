package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

var ErrSolutionNotFound = errors.New("solution not found")

type SolutionRepository interface {
	Save(ctx context.Context, solution *entity.Solution) error
	Get(ctx context.Context, board entity.Board, player entity.Player) (*entity.Solution, error)
	Delete(ctx context.Context, board entity.Board, player entity.Player) error
}

type dbSolution struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSolutionRepository stores solved positions in redis. A zero ttl keeps entries forever.
func NewSolutionRepository(client *redis.Client, ttl time.Duration) SolutionRepository {
	return &dbSolution{
		client: client,
		ttl:    ttl,
	}
}

func solutionKey(board, player string) string {
	return fmt.Sprintf("solution:v%d:%s:%s", entity.SolutionVersion, board, player)
}

func (that *dbSolution) Save(ctx context.Context, solution *entity.Solution) error {
	solutionJSON, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("could not marshal solution: %w", err)
	}

	err = that.client.Set(ctx, solutionKey(solution.Board, solution.Player), solutionJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set solution: %w", err)
	}

	return nil
}

func (that *dbSolution) Get(ctx context.Context, board entity.Board, player entity.Player) (*entity.Solution, error) {
	response, err := that.client.Get(ctx, solutionKey(board.Key(), player.String())).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSolutionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get solution: %w", err)
	}

	var solution entity.Solution
	if err = json.Unmarshal([]byte(response), &solution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solution: %w", err)
	}

	return &solution, nil
}

func (that *dbSolution) Delete(ctx context.Context, board entity.Board, player entity.Player) error {
	err := that.client.Del(ctx, solutionKey(board.Key(), player.String())).Err()
	if err != nil {
		return fmt.Errorf("failed to delete solution: %w", err)
	}

	return nil
}

package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-core/internal/config"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-core/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-core/transport/cli"
)

var (
	ErrUnknownMode = errors.New("unknown game mode")
	ErrUnknownMark = errors.New("unknown player mark")
)

// RunApp - plays one game on the console.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var solutions repository.SolutionRepository
	if conf.Redis.Enabled {
		client, err := storage.NewRedisClient(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		solutions = repository.NewSolutionRepository(client, conf.SolutionTTL)
	}

	console := cli.New(logger, in, out)
	advisor := usecase.NewAdvisor(logger, solutions)

	console.Greet()

	playerX, playerO, err := pickMovers(ctx, conf, console, advisor)
	if err != nil {
		if errors.Is(err, cli.ErrInputClosed) || errors.Is(err, context.Canceled) {
			log.Info("Setup abandoned", "reason", err)
			return nil
		}
		return err
	}

	match := usecase.NewMatch(logger, playerX, playerO, console)
	log.Info("Starting match", "match.id", match.ID)

	if _, err = match.Run(ctx); err != nil {
		if errors.Is(err, cli.ErrInputClosed) || errors.Is(err, context.Canceled) {
			log.Info("Match abandoned", "match.id", match.ID, "reason", err)
			return nil
		}
		return fmt.Errorf("match failed: %w", err)
	}

	return nil
}

// pickMovers resolves mode and side from the config, asking on the console for anything left empty.
func pickMovers(ctx context.Context, conf *config.Config, console *cli.Console, advisor *usecase.Advisor) (usecase.Mover, usecase.Mover, error) {
	mode := conf.Mode
	if mode == config.ModeAsk {
		choice, err := console.Choose(ctx, "Choose Game Mode:", "Single-Player vs AI", "Two-Player Mode", "AI vs AI")
		if err != nil {
			return nil, nil, err
		}
		mode = []string{config.ModeSingle, config.ModeTwoPlayer, config.ModeSelfPlay}[choice]
	}

	switch mode {
	case config.ModeTwoPlayer:
		return console, console, nil
	case config.ModeSelfPlay:
		return advisor, advisor, nil
	case config.ModeSingle:
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	human, err := humanMark(ctx, conf, console)
	if err != nil {
		return nil, nil, err
	}

	if human == entity.PlayerX {
		return console, advisor, nil
	}
	return advisor, console, nil
}

func humanMark(ctx context.Context, conf *config.Config, console *cli.Console) (entity.Player, error) {
	if conf.HumanMark != "" {
		mark, ok := entity.ParsePlayer(conf.HumanMark)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownMark, conf.HumanMark)
		}
		return mark, nil
	}

	choice, err := console.Choose(ctx, "Choose your player:", "Player X (Goes first)", "Player O (Goes second)")
	if err != nil {
		return 0, err
	}

	return []entity.Player{entity.PlayerX, entity.PlayerO}[choice], nil
}

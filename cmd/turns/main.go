// Command turns inspects the turn queue the game engine consumes.
//
//	turns list [n]   show queue depth and the next n turns (default 10)
//	turns drain      pop and print every queued turn
//	turns follow     pop and print turns as they arrive, until interrupted
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jwebster45206/story-commands/internal/config"
	"github.com/jwebster45206/story-commands/internal/logger"
	"github.com/jwebster45206/story-commands/internal/services/queue"
	queuePkg "github.com/jwebster45206/story-commands/pkg/queue"
)

const defaultListLimit = 10

var followTimeout = 5 * time.Second

// turnSource is the part of the turn queue this tool reads from.
type turnSource interface {
	Depth(ctx context.Context) (int, error)
	Peek(ctx context.Context, limit int) ([]*queuePkg.TurnRequest, error)
	Dequeue(ctx context.Context) (*queuePkg.TurnRequest, error)
	BlockingDequeue(ctx context.Context, timeout time.Duration) (*queuePkg.TurnRequest, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := queue.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to connect turn queue", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Close()
	}()

	if err := run(ctx, queue.NewTurnQueue(client), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, turns turnSource, args []string, out io.Writer) error {
	mode := "list"
	if len(args) > 0 {
		mode = args[0]
	}

	switch mode {
	case "list":
		limit := defaultListLimit
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid limit %q", args[1])
			}
			limit = n
		}
		return list(ctx, turns, limit, out)
	case "drain":
		return drain(ctx, turns, out)
	case "follow":
		return follow(ctx, turns, out)
	default:
		return fmt.Errorf("usage: turns [list [n] | drain | follow]")
	}
}

func list(ctx context.Context, turns turnSource, limit int, out io.Writer) error {
	depth, err := turns.Depth(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Queue depth: %d turns\n", depth)

	pending, err := turns.Peek(ctx, limit)
	if err != nil {
		return err
	}
	for _, t := range pending {
		printTurn(out, t)
	}
	return nil
}

func drain(ctx context.Context, turns turnSource, out io.Writer) error {
	count := 0
	for {
		t, err := turns.Dequeue(ctx)
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
		printTurn(out, t)
		count++
	}
	fmt.Fprintf(out, "Drained %d turns\n", count)
	return nil
}

func follow(ctx context.Context, turns turnSource, out io.Writer) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		t, err := turns.BlockingDequeue(ctx, followTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if t != nil {
			printTurn(out, t)
		}
	}
}

func printTurn(out io.Writer, t *queuePkg.TurnRequest) {
	fmt.Fprintf(out, "%s  %-15s session=%s request=%s\n",
		t.EnqueuedAt.Format(time.RFC3339), t.Kind, t.SessionID, t.RequestID)
	if t.Location != "" {
		fmt.Fprintf(out, "    at %s\n", t.Location)
	}
	fmt.Fprintf(out, "    %s\n", t.Message)
}

// Command chat is a terminal client for the Nutri-AI gateway.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Vovarama1992/nutri-ai-gateway/internal/chat"
	"github.com/Vovarama1992/nutri-ai-gateway/internal/config"
)

func main() {
	dialogID := flag.String("dialog", "", "resume an existing dialog (requires REDIS_URL)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, persistent := openStore(ctx, cfg, logger)

	session := chat.NewSession(*dialogID, chat.NewClient(cfg.Chat.GatewayURL, cfg.Chat.Timeout), store, logger)
	fmt.Printf("Nutri-AI chat (dialog %s). Commands: /plan <file>, /clear, /quit\n", session.ID())

	history, err := session.Transcript(ctx)
	if err != nil {
		logger.Warn("failed to load transcript", "error", err)
	}
	for _, m := range history {
		printMessage(m, false)
	}

	var plan json.RawMessage
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64<<10), 1<<20)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			goto done
		case line == "/clear":
			plan = nil
			fmt.Println("grocery plan cleared")
			continue
		case strings.HasPrefix(line, "/plan "):
			p, err := loadPlan(strings.TrimSpace(strings.TrimPrefix(line, "/plan ")))
			if err != nil {
				fmt.Println("could not load plan:", err)
				continue
			}
			plan = p
			fmt.Printf("grocery plan loaded (%d bytes)\n", len(plan))
			continue
		}

		ans, err := session.Send(ctx, line, plan)
		if errors.Is(err, chat.ErrEmptyMessage) {
			continue
		}
		if err != nil {
			logger.Warn("transcript not updated", "error", err)
		}
		printMessage(ans.Message, ans.Degraded)

		if ctx.Err() != nil {
			break
		}
	}

done:
	if !persistent {
		_ = session.Close(context.Background())
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (chat.TranscriptStore, bool) {
	if cfg.Chat.RedisURL == "" {
		return chat.NewMemoryStore(), false
	}

	opts, err := redis.ParseURL(cfg.Chat.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, keeping transcript in memory", "error", err)
		return chat.NewMemoryStore(), false
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, keeping transcript in memory", "error", err)
		return chat.NewMemoryStore(), false
	}
	return chat.NewRedisStore(rdb, cfg.Chat.TranscriptTTL), true
}

func loadPlan(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, errors.New("file is not valid JSON")
	}
	return json.RawMessage(data), nil
}

func printMessage(m chat.Message, degraded bool) {
	badge := ""
	if degraded {
		badge = " [service degraded]"
	}
	fmt.Printf("%s%s: %s\n", m.Sender, badge, m.Text)
}

// Command chat is an interactive terminal chat backed by the API.
// Replies stream token by token. With history enabled in the config,
// sessions persist in Redis and can be resumed with -session.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	openai "github.com/s33g/openai-client"
	"github.com/s33g/openai-client/internal/cli"
	"github.com/s33g/openai-client/internal/config"
	"github.com/s33g/openai-client/internal/history"
	"github.com/s33g/openai-client/internal/tokens"
)

type app struct {
	mu     sync.RWMutex
	cfg    *config.Config
	logger zerolog.Logger

	client *openai.Client
	window *tokens.Window

	store     *history.Store
	session   *history.Session
	transient []history.Message // Used when history is disabled
}

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	model := flag.String("model", "", "Model ID (overrides config)")
	system := flag.String("system", "", "System prompt (overrides config)")
	sessionID := flag.String("session", "", "Resume a stored session by ID")
	flag.Parse()

	cli.LoadEnv()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if *model != "" {
		cfg.Defaults.Model = *model
	}
	if *system != "" {
		cfg.Defaults.SystemPrompt = *system
	}

	logger := cli.NewLogger(cfg.Logging)

	a := &app{
		cfg:    cfg,
		logger: logger,
		client: cli.NewClient(cfg.Provider, logger),
		window: tokens.NewWindow(cfg.Defaults.MaxContextTokens, cfg.Defaults.ReplyTokens),
	}

	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath, a.applyConfig, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to watch config")
		}
		watcher.Start()
		defer watcher.Stop()
	}

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to history store")
		}
		defer store.Close()
		a.store = store

		if err := a.openSession(*sessionID); err != nil {
			logger.Fatal().Err(err).Msg("Failed to open session")
		}
		fmt.Fprintf(os.Stderr, "session %s\n", a.session.ID)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.repl(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("Chat failed")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

// applyConfig swaps in a reloaded configuration. The model, prompt, and
// token budget take effect on the next turn.
func (a *app) applyConfig(cfg *config.Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	a.window = tokens.NewWindow(cfg.Defaults.MaxContextTokens, cfg.Defaults.ReplyTokens)
	return nil
}

func (a *app) snapshot() (*config.Config, *tokens.Window) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg, a.window
}

// openSession resumes the given session or creates a fresh one.
func (a *app) openSession(id string) error {
	ctx := context.Background()
	if id != "" {
		session, err := a.store.Get(ctx, id)
		if err != nil {
			return err
		}
		a.session = session
		return nil
	}

	cfg, _ := a.snapshot()
	session, err := a.store.Create(ctx, history.Session{
		Model:        cfg.Defaults.Model,
		SystemPrompt: cfg.Defaults.SystemPrompt,
	})
	if err != nil {
		return err
	}
	a.session = session
	return nil
}

func (a *app) repl(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/exit", "/quit":
			return nil
		case "/reset":
			if err := a.reset(ctx); err != nil {
				return err
			}
			continue
		}

		if err := a.turn(ctx, line); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			// API errors end the turn, not the session.
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
}

func (a *app) reset(ctx context.Context) error {
	if a.store != nil {
		return a.store.ClearMessages(ctx, a.session.ID)
	}
	a.transient = nil
	return nil
}

// turn sends one user message and streams the reply to stdout.
func (a *app) turn(ctx context.Context, input string) error {
	cfg, window := a.snapshot()
	model := cfg.Defaults.Model

	userMsg := history.Message{
		Role:    openai.RoleUser,
		Content: input,
		Tokens:  window.CountMessage(input, model),
	}
	if err := a.append(ctx, userMsg); err != nil {
		return err
	}

	stored, err := a.messages(ctx)
	if err != nil {
		return err
	}
	kept, promptTokens := window.Build(stored, cfg.Defaults.SystemPrompt, model)

	messages := make([]openai.ChatMessage, len(kept))
	for i, msg := range kept {
		messages[i] = openai.ChatMessage{Role: msg.Role, Content: msg.Content}
	}

	a.logger.Debug().
		Str("model", model).
		Int("messages", len(messages)).
		Int("prompt_tokens", promptTokens).
		Msg("sending chat request")

	temp := cfg.Defaults.Temperature
	stream, err := a.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:               model,
		Messages:            messages,
		Temperature:         &temp,
		MaxCompletionTokens: cfg.Defaults.ReplyTokens,
	})
	if err != nil {
		return err
	}
	defer stream.Close()

	var acc openai.ChatCompletionAccumulator
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := acc.Add(chunk); err != nil {
			return err
		}
		for _, choice := range chunk.Choices {
			fmt.Print(choice.Delta.Content)
		}
	}
	fmt.Println()

	completion := acc.Completion()
	if completion == nil || len(completion.Choices) == 0 {
		return nil
	}
	reply := completion.Choices[0].Message.Content

	replyMsg := history.Message{
		Role:    openai.RoleAssistant,
		Content: reply,
		Tokens:  window.CountMessage(reply, model),
	}
	if err := a.append(ctx, replyMsg); err != nil {
		return err
	}

	if a.store != nil {
		total := promptTokens + replyMsg.Tokens
		if completion.Usage != nil {
			total = completion.Usage.TotalTokens
		}
		if err := a.store.IncrementTokenCount(ctx, a.session.ID, total); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to record token usage")
		}
	}
	return nil
}

func (a *app) append(ctx context.Context, msg history.Message) error {
	if a.store != nil {
		return a.store.AppendMessage(ctx, a.session.ID, msg)
	}
	a.transient = append(a.transient, msg)
	return nil
}

func (a *app) messages(ctx context.Context) ([]history.Message, error) {
	if a.store != nil {
		return a.store.Messages(ctx, a.session.ID)
	}
	return a.transient, nil
}

// Command completions sends a single prompt to the legacy completions
// endpoint and prints the generated text.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/s33g/openai-client/internal/cli"
	"github.com/s33g/openai-client/internal/config"

	openai "github.com/s33g/openai-client"
)

func main() {
	model := flag.String("model", "gpt-3.5-turbo-instruct", "Model ID")
	maxTokens := flag.Int("max-tokens", 256, "Maximum tokens to generate")
	n := flag.Int("n", 1, "Number of completions")
	flag.Parse()

	cli.LoadEnv()

	cfg := config.DefaultConfig()
	logger := cli.NewLogger(cfg.Logging)
	client := cli.NewClient(cfg.Provider, logger)

	prompt := strings.Join(flag.Args(), " ")
	if prompt == "" {
		// No arguments: read the prompt from stdin.
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to read prompt")
		}
		prompt = strings.TrimSpace(string(data))
	}
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "usage: completions [flags] <prompt>")
		os.Exit(2)
	}

	completion, err := client.CreateCompletion(context.Background(), openai.CompletionRequest{
		Model:     *model,
		Prompt:    prompt,
		MaxTokens: *maxTokens,
		N:         *n,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Completion failed")
	}

	for _, choice := range completion.Choices {
		fmt.Println(strings.TrimSpace(choice.Text))
	}
}

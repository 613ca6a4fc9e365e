package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/config"
	"github.com/pageza/openai-cake/backend/internal/logger"
	"github.com/pageza/openai-cake/backend/internal/service"
)

const (
	systemPrompt  = "You are a helpful assistant. Answer always in German."
	defaultPrompt = "Erstelle mir ein Rezept für einen Apfelkuchen."
)

func main() {
	prompt := flag.String("prompt", defaultPrompt, "user message sent to the model")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	llm := service.NewLLMService(cfg, zlog)
	if err := run(context.Background(), llm, *prompt, os.Stdout); err != nil {
		zlog.Error("completion failed", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
}

// run sends a single completion and prints the assistant reply to out
func run(ctx context.Context, llm service.ILLMService, prompt string, out io.Writer) error {
	msg, err := llm.Complete(ctx, []service.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, msg.Content)
	return err
}

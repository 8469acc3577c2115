// Command infer loads a local GGUF model and prints the reply to one
// greeting. It is a smoke test for the llama.cpp setup.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"chatbench/internal/config"
	"chatbench/internal/llm"
)

const defaultModelPath = "./models/Qwen/Qwen3-0.6B-GGUF/Qwen3-0.6B-Q8_0.gguf"

func main() {
	modelPath := flag.String("model", defaultModelPath, "path to a GGUF model file")
	prompt := flag.String("prompt", "Hello, how are you?", "user message to send")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var loader llm.Loader = llm.NewProcessLoader(cfg.LlamaServerBin)
	if cfg.LlamaServerURL != "" {
		loader = llm.NewRemoteLoader(cfg.LlamaServerURL)
	}

	ctx := context.Background()
	session, err := loader.Load(ctx, llm.LoadOptions{
		ModelPath:   *modelPath,
		ContextSize: cfg.ModelContextSize,
		Threads:     cfg.ModelThreads,
		BatchSize:   cfg.ModelBatchSize,
	})
	if err != nil {
		slog.Error("Failed to load model", "model", *modelPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = session.Close() }()
	slog.Info("Model loaded successfully", "model", *modelPath)

	messages := []llm.Message{{Role: "user", Content: *prompt}}
	fmt.Println(llm.Infer(ctx, session, messages, cfg.DefaultTemperature))
}

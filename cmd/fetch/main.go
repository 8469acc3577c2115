// Command fetch downloads one GGUF file from the Hugging Face Hub into the
// models directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"chatbench/internal/config"
	"chatbench/internal/hub"
)

func main() {
	repo := flag.String("repo", "ggml-org/gemma-3-1b-it-GGUF", "Hub repository id")
	file := flag.String("file", "gemma-3-1b-it-Q4_K_M.gguf", "GGUF file name; empty lists the repository")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client := hub.NewClient(cfg.HFEndpoint, cfg.HFToken)

	if *file == "" {
		files, err := client.ListGGUF(ctx, *repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing files: %v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stderr, "No GGUF files found in %s\n", *repo)
			os.Exit(1)
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	fmt.Printf("=== Downloading %s from %s ===\n", *file, *repo)
	progress := make(chan hub.DownloadStatus)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range progress {
			if s.Status == "downloading" && s.Total > 0 {
				fmt.Printf("\r%d / %d MB", s.Completed>>20, s.Total>>20)
			}
		}
		fmt.Println()
	}()

	path, err := client.Download(ctx, hub.DownloadRequest{
		RepoID:   *repo,
		Filename: *file,
		LocalDir: hub.DefaultLocalDir(cfg.ModelsDir, *repo),
	}, progress)
	<-done
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Success! Model at: %s\n", path)
}

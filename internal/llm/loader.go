package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	app_errors "chatbench/internal/errors"
)

const (
	defaultStartTimeout = 2 * time.Minute
	healthPollInterval  = 500 * time.Millisecond
)

// ProcessLoader starts a dedicated llama.cpp server per loaded model. The
// server binary is a packaging prerequisite; Load checks that it is present.
type ProcessLoader struct {
	Binary       string
	StartTimeout time.Duration
	client       *http.Client
}

func NewProcessLoader(binary string) *ProcessLoader {
	if binary == "" {
		binary = "llama-server"
	}
	return &ProcessLoader{
		Binary:       binary,
		StartTimeout: defaultStartTimeout,
		client:       &http.Client{},
	}
}

// Available reports whether the server binary can be found on PATH.
func (l *ProcessLoader) Available() bool {
	_, err := exec.LookPath(l.Binary)
	return err == nil
}

func (l *ProcessLoader) Load(ctx context.Context, opts LoadOptions) (Session, error) {
	opts = opts.withDefaults()
	if err := checkModelFile(opts.ModelPath); err != nil {
		return nil, err
	}

	bin, err := exec.LookPath(l.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRuntimeMissing, l.Binary)
	}

	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("could not reserve a port: %w", err)
	}

	cmd := exec.Command(bin,
		"-m", opts.ModelPath,
		"-c", strconv.Itoa(opts.ContextSize),
		"-t", strconv.Itoa(opts.Threads),
		"-b", strconv.Itoa(opts.BatchSize),
		"--host", "127.0.0.1",
		"--port", strconv.Itoa(port),
	)
	// The runtime is chatty on startup; its output is not part of our logs.
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("could not start llama.cpp server: %w", err)
	}
	exited := make(chan struct{})
	go func() {
		if werr := cmd.Wait(); werr != nil {
			slog.Debug("llama.cpp server exited", "model", opts.ModelPath, "error", werr)
		}
		close(exited)
	}()

	s := &serverSession{
		client:    l.client,
		url:       fmt.Sprintf("http://127.0.0.1:%d", port),
		modelPath: opts.ModelPath,
		cmd:       cmd,
		exited:    exited,
	}

	if err := waitForServer(ctx, l.client, s.url, l.StartTimeout, exited); err != nil {
		_ = s.Close()
		return nil, err
	}

	slog.Info("Model loaded successfully", "path", opts.ModelPath, "ctx", opts.ContextSize, "threads", opts.Threads, "batch", opts.BatchSize)
	return s, nil
}

// RemoteLoader attaches to a llama.cpp server that is already running with
// its own model; the model path is only used as a label.
type RemoteLoader struct {
	URL          string
	StartTimeout time.Duration
	client       *http.Client
}

func NewRemoteLoader(url string) *RemoteLoader {
	return &RemoteLoader{
		URL:          strings.TrimRight(url, "/"),
		StartTimeout: 30 * time.Second,
		client:       &http.Client{},
	}
}

func (l *RemoteLoader) Load(ctx context.Context, opts LoadOptions) (Session, error) {
	if strings.TrimSpace(opts.ModelPath) == "" {
		return nil, fmt.Errorf("%w: Please provide a valid model path", app_errors.ErrValidation)
	}
	if err := waitForServer(ctx, l.client, l.URL, l.StartTimeout, nil); err != nil {
		return nil, err
	}
	slog.Info("Attached to llama.cpp server", "url", l.URL, "model", opts.ModelPath)
	return &serverSession{client: l.client, url: l.URL, modelPath: opts.ModelPath}, nil
}

func checkModelFile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: Please provide a valid model path", app_errors.ErrValidation)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: Please provide a valid model path", app_errors.ErrValidation)
	}
	return nil
}

// waitForServer polls /health until the server answers 200, the process
// exits, the timeout passes or ctx is cancelled.
func waitForServer(ctx context.Context, client *http.Client, url string, timeout time.Duration, exited <-chan struct{}) error {
	slog.Info("Waiting for llama.cpp server to be ready...", "url", url)
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(healthPollInterval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/health", nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			ready := resp.StatusCode == http.StatusOK
			if bErr := resp.Body.Close(); bErr != nil {
				slog.Warn("Failed to close response body in health check", "error", bErr)
			}
			if ready {
				slog.Info("llama.cpp server is ready.", "url", url)
				return nil
			}
		}
		slog.Debug("llama.cpp server not ready yet", "url", url, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("llama.cpp server at %s not ready after %s", url, timeout)
		case <-exited:
			return errors.New("llama.cpp server stopped during startup")
		case <-ticker.C:
		}
	}
}

func freePort() (int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port, nil
}

package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// serverSession talks to a llama.cpp server through its OpenAI-compatible
// chat endpoint. When cmd is set the session owns the server process.
type serverSession struct {
	client    *http.Client
	url       string
	modelPath string

	cmd       *exec.Cmd
	exited    <-chan struct{}
	closeOnce sync.Once
}

type chatRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		Delta        Message `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

func (s *serverSession) ModelPath() string { return s.modelPath }

func (s *serverSession) post(ctx context.Context, req chatRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return resp, nil
}

func (s *serverSession) Complete(ctx context.Context, messages []Message, temperature float64) (string, error) {
	resp, err := s.post(ctx, chatRequest{Messages: messages, Temperature: temperature})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// CompleteStream sends server-sent completion deltas to ch and closes it when
// the stream ends.
func (s *serverSession) CompleteStream(ctx context.Context, messages []Message, temperature float64, ch chan<- StreamResponse) error {
	defer close(ch)

	resp, err := s.post(ctx, chatRequest{Messages: messages, Temperature: temperature, Stream: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)

		var chunk StreamResponse
		if data == "[DONE]" {
			chunk.Done = true
		} else {
			var parsed chatResponse
			if err := json.Unmarshal([]byte(data), &parsed); err != nil {
				chunk.Error = "Failed to decode stream chunk"
			} else if len(parsed.Choices) > 0 {
				chunk.Content = parsed.Choices[0].Delta.Content
			}
			if chunk.Content == "" && chunk.Error == "" {
				continue
			}
		}

		select {
		case ch <- chunk:
		case <-ctx.Done():
			return ctx.Err()
		}
		if chunk.Done {
			return nil
		}
	}
	return scanner.Err()
}

// Close stops the owned server process, if any.
func (s *serverSession) Close() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	var err error
	s.closeOnce.Do(func() {
		slog.Info("Stopping llama.cpp server", "model", s.modelPath, "pid", s.cmd.Process.Pid)
		if kerr := s.cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
			err = kerr
			return
		}
		<-s.exited
	})
	return err
}

// Package hub lists and downloads GGUF weight files from the Hugging Face Hub.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	app_errors "chatbench/internal/errors"
)

const (
	DefaultEndpoint = "https://huggingface.co"
	GGUFSuffix      = ".gguf"

	// progressStep is how many bytes are written between progress updates.
	progressStep = 4 << 20
)

// DownloadRequest names one file in a Hub repository.
type DownloadRequest struct {
	RepoID   string `json:"repo_id" validate:"required,repoid"`
	Filename string `json:"filename" validate:"required"`
	LocalDir string `json:"local_dir,omitempty"`
}

// DownloadStatus is one progress update of a download.
type DownloadStatus struct {
	Status    string `json:"status"`
	Filename  string `json:"filename,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
	Path      string `json:"path,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Client struct {
	client   *http.Client
	endpoint string
	token    string
}

func NewClient(endpoint, token string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		client:   &http.Client{},
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
	}
}

func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// ListFiles returns every file path in the repository.
func (c *Client) ListFiles(ctx context.Context, repoID string) ([]string, error) {
	if repoID == "" {
		return nil, fmt.Errorf("%w: Repository ID is required", app_errors.ErrValidation)
	}

	req, err := c.newRequest(ctx, c.endpoint+"/api/models/"+escapeRepo(repoID))
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: repository %s", app_errors.ErrNotFound, repoID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("hub returned non-200 status %d: %s", resp.StatusCode, string(body))
	}

	var info struct {
		Siblings []struct {
			RFilename string `json:"rfilename"`
		} `json:"siblings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("could not decode repository info: %w", err)
	}

	files := make([]string, 0, len(info.Siblings))
	for _, s := range info.Siblings {
		files = append(files, s.RFilename)
	}
	return files, nil
}

// ListGGUF returns the repository files ending in .gguf.
func (c *Client) ListGGUF(ctx context.Context, repoID string) ([]string, error) {
	files, err := c.ListFiles(ctx, repoID)
	if err != nil {
		return nil, err
	}
	gguf := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f, GGUFSuffix) {
			gguf = append(gguf, f)
		}
	}
	return gguf, nil
}

// DefaultLocalDir is where a repository's files land when no directory is given.
func DefaultLocalDir(modelsDir, repoID string) string {
	if modelsDir == "" {
		modelsDir = "models"
	}
	return filepath.Join(modelsDir, filepath.FromSlash(repoID))
}

// Download fetches one file into req.LocalDir and returns its local path.
// Progress is sent to ch when it is non-nil; ch is closed on return.
func (c *Client) Download(ctx context.Context, req DownloadRequest, ch chan<- DownloadStatus) (string, error) {
	if ch != nil {
		defer close(ch)
	}
	send := func(s DownloadStatus) {
		if ch == nil {
			return
		}
		select {
		case ch <- s:
		case <-ctx.Done():
		}
	}

	path, err := c.download(ctx, req, send)
	if err != nil {
		send(DownloadStatus{Status: "error", Filename: req.Filename, Error: "Error downloading model: " + err.Error()})
		return "", err
	}
	send(DownloadStatus{Status: "success", Filename: req.Filename, Path: path})
	return path, nil
}

func (c *Client) download(ctx context.Context, req DownloadRequest, send func(DownloadStatus)) (string, error) {
	if req.RepoID == "" {
		return "", fmt.Errorf("%w: Repository ID is required", app_errors.ErrValidation)
	}
	if req.Filename == "" {
		return "", fmt.Errorf("%w: Filename is required", app_errors.ErrValidation)
	}
	rel := filepath.FromSlash(req.Filename)
	if filepath.IsAbs(rel) || strings.HasPrefix(filepath.Clean(rel), "..") {
		return "", fmt.Errorf("%w: invalid filename %q", app_errors.ErrValidation, req.Filename)
	}

	localDir := req.LocalDir
	if localDir == "" {
		localDir = DefaultLocalDir("", req.RepoID)
	}
	dest := filepath.Join(localDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return "", fmt.Errorf("could not create model directory: %w", err)
	}

	fileURL := fmt.Sprintf("%s/%s/resolve/main/%s", c.endpoint, escapeRepo(req.RepoID), escapePath(req.Filename))
	httpReq, err := c.newRequest(ctx, fileURL)
	if err != nil {
		return "", err
	}

	slog.Info("Downloading model file", "repo", req.RepoID, "file", req.Filename)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s in %s", app_errors.ErrNotFound, req.Filename, req.RepoID)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hub returned non-200 status %d", resp.StatusCode)
	}

	part := dest + ".part"
	f, err := os.Create(part)
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}

	pw := &progressWriter{
		status: DownloadStatus{Status: "downloading", Filename: req.Filename, Total: resp.ContentLength},
		send:   send,
	}
	send(pw.status)
	_, copyErr := io.Copy(f, io.TeeReader(resp.Body, pw))
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(part)
		if copyErr != nil {
			return "", fmt.Errorf("download interrupted: %w", copyErr)
		}
		return "", fmt.Errorf("could not write file: %w", closeErr)
	}

	if err := os.Rename(part, dest); err != nil {
		return "", fmt.Errorf("could not finalize file: %w", err)
	}
	slog.Info("Downloaded model file", "path", dest, "bytes", pw.status.Completed)
	return dest, nil
}

type progressWriter struct {
	status   DownloadStatus
	reported int64
	send     func(DownloadStatus)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.status.Completed += int64(len(b))
	if p.status.Completed-p.reported >= progressStep {
		p.reported = p.status.Completed
		p.send(p.status)
	}
	return len(b), nil
}

func escapeRepo(repoID string) string {
	return escapePath(repoID)
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

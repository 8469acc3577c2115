package llm

import (
	"context"
	"errors"
	"fmt"
)

// Defaults mirror the settings the playground was tuned for on small CPUs.
const (
	DefaultContextSize = 1024
	DefaultThreads     = 4
	DefaultBatchSize   = 1
	DefaultTemperature = 0.7
)

// Sentinel replies returned by Infer instead of an error.
const (
	ReplyModelNotLoaded = "Model not loaded"
	ReplyNoMessages     = "No messages provided"
)

// ErrRuntimeMissing is returned when the llama.cpp server binary cannot be found.
var ErrRuntimeMissing = errors.New("llama.cpp server binary not found")

// Message is one chat message sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamResponse is one piece of a streamed completion: a content delta, the
// final Done marker, or an error message.
type StreamResponse struct {
	Content string
	Done    bool
	Error   string
}

// LoadOptions are the knobs passed to the inference runtime when a model is loaded.
type LoadOptions struct {
	ModelPath   string
	ContextSize int
	Threads     int
	BatchSize   int
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.ContextSize <= 0 {
		o.ContextSize = DefaultContextSize
	}
	if o.Threads <= 0 {
		o.Threads = DefaultThreads
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	return o
}

// Loader turns a model file into a running Session.
type Loader interface {
	Load(ctx context.Context, opts LoadOptions) (Session, error)
}

// Session is a loaded model that can answer chat completions.
type Session interface {
	ModelPath() string
	Complete(ctx context.Context, messages []Message, temperature float64) (string, error)
	CompleteStream(ctx context.Context, messages []Message, temperature float64, ch chan<- StreamResponse) error
	Close() error
}

// Infer runs one completion and always returns text: failures become one of
// the sentinel replies or an "Error during inference" message.
func Infer(ctx context.Context, s Session, messages []Message, temperature float64) string {
	if s == nil {
		return ReplyModelNotLoaded
	}
	if len(messages) == 0 {
		return ReplyNoMessages
	}
	reply, err := s.Complete(ctx, messages, temperature)
	if err != nil {
		return ErrorReply(err)
	}
	return reply
}

// ErrorReply formats an inference failure the way it is shown in the chat.
func ErrorReply(err error) string {
	return fmt.Sprintf("Error during inference: %v", err)
}

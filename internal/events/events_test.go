package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(SubjectTranscriptExported, TranscriptExported{Rows: 1}))
	p.Close()
}

func TestTranscriptExported_JSON(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(TranscriptExported{
		ConversationID: "conv-1",
		SheetRef:       "abc",
		ModelName:      "qwen.gguf",
		Rows:           3,
		StartRow:       2,
		ExportedAt:     at,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"conversation_id":"conv-1","sheet_ref":"abc","model_name":"qwen.gguf","rows":3,"start_row":2,"exported_at":"2026-10-19T12:00:00Z"}`, string(payload))
}

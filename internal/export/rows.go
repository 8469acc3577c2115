package export

import (
	"time"

	"chatbench/internal/model"
)

// TimestampLayout is how row timestamps are written to the sheet.
const TimestampLayout = "2006-01-02 15:04:05"

// UnknownModel is recorded when no model name is available.
const UnknownModel = "unknown"

// Row is one flattened prompt/response pair. Rows are derived per export
// call and never stored.
type Row struct {
	Timestamp      time.Time
	ConversationID string
	ModelName      string
	Prompt         string
	Response       string
}

// Values renders the row in sheet column order:
// timestamp, conversation id, model name, prompt, response.
func (r Row) Values() []any {
	return []any{
		r.Timestamp.Format(TimestampLayout),
		r.ConversationID,
		r.ModelName,
		r.Prompt,
		r.Response,
	}
}

// BuildRows pairs every user turn with the assistant turn directly after it.
// System turns and orphaned assistant turns are skipped; a user turn with no
// assistant reply yields an empty response. It never fails.
func BuildRows(turns []model.Turn, conversationID string, ts time.Time, modelName string) []Row {
	if modelName == "" {
		modelName = UnknownModel
	}

	rows := make([]Row, 0, len(turns)/2+1)
	for i := 0; i < len(turns); {
		if turns[i].Role != model.RoleUser {
			i++
			continue
		}

		row := Row{
			Timestamp:      ts,
			ConversationID: conversationID,
			ModelName:      modelName,
			Prompt:         turns[i].Content,
		}
		if i+1 < len(turns) && turns[i+1].Role == model.RoleAssistant {
			row.Response = turns[i+1].Content
			i += 2
		} else {
			i++
		}
		rows = append(rows, row)
	}
	return rows
}

// NextRow returns the 1-based sheet row where the next batch starts. Row 1 is
// reserved for the header, so the result is never below 2.
func NextRow(existingRows int) int {
	next := existingRows + 1
	if next < 2 {
		next = 2
	}
	return next
}

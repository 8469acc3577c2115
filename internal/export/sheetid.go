package export

import (
	"fmt"
	"regexp"
	"strings"

	app_errors "chatbench/internal/errors"
)

var (
	sheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([A-Za-z0-9_-]+)`)
	sheetIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ParseSheetID accepts either a full Google Sheets URL or a bare spreadsheet
// ID and returns the ID.
func ParseSheetID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: sheet URL or ID is required", app_errors.ErrBackend)
	}
	if m := sheetURLPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	if sheetIDPattern.MatchString(ref) {
		return ref, nil
	}
	return "", fmt.Errorf("%w: malformed sheet identifier %q", app_errors.ErrBackend, ref)
}

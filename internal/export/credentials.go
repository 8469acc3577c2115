package export

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	app_errors "chatbench/internal/errors"
)

// CredentialErrorKind names the first check a credential file failed.
type CredentialErrorKind string

const (
	CredentialNotFound   CredentialErrorKind = "not_found"
	CredentialNotAFile   CredentialErrorKind = "not_a_file"
	CredentialUnreadable CredentialErrorKind = "unreadable"
	CredentialEmpty      CredentialErrorKind = "empty"
)

// CredentialError describes why a credential file was rejected.
type CredentialError struct {
	Kind CredentialErrorKind
	Path string
	Err  error
}

func (e *CredentialError) Error() string {
	switch e.Kind {
	case CredentialNotFound:
		return fmt.Sprintf("Credentials file not found: %s", e.Path)
	case CredentialNotAFile:
		return fmt.Sprintf("Path exists but is not a file: %s", e.Path)
	case CredentialEmpty:
		return "Credentials file is empty"
	default:
		return fmt.Sprintf("Cannot read credentials file: %v", e.Err)
	}
}

// Is lets callers match any credential failure against app_errors.ErrCredential.
func (e *CredentialError) Is(target error) bool {
	return target == app_errors.ErrCredential
}

func (e *CredentialError) Unwrap() error { return e.Err }

// CheckCredentials runs the existence, regular-file and readable/non-empty
// checks in that order and stops at the first failure. The content itself
// is never parsed; the spreadsheet backend does that.
func CheckCredentials(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &CredentialError{Kind: CredentialNotFound, Path: path, Err: err}
		}
		return &CredentialError{Kind: CredentialUnreadable, Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &CredentialError{Kind: CredentialNotAFile, Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return &CredentialError{Kind: CredentialUnreadable, Path: path, Err: err}
	}
	defer f.Close()

	var buf [1]byte
	n, err := f.Read(buf[:])
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return &CredentialError{Kind: CredentialEmpty, Path: path}
		}
		return &CredentialError{Kind: CredentialUnreadable, Path: path, Err: err}
	}
	return nil
}

// ValidateCredentials is the (valid, reason) form of CheckCredentials.
func ValidateCredentials(path string) (bool, string) {
	if err := CheckCredentials(path); err != nil {
		return false, err.Error()
	}
	return true, "Credentials file found"
}

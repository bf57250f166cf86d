// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/macprefs/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "file not found",
			wantStr: "[NOT_FOUND] file not found",
		},
		{
			name:    "document_parse_error",
			code:    errors.ErrDocumentParse,
			message: "invalid TOML document",
			wantStr: "[DOCUMENT_PARSE] invalid TOML document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("exit status 1")
	err := errors.Wrap(base, errors.ErrDefaultsWrite, "defaults write failed").
		WithDetail("domain", "com.apple.finder").
		WithDetail("key", "AppleShowAllFiles")

	if !stderrors.Is(err, base) {
		t.Error("wrapped error should match the base error with errors.Is")
	}

	if got := err.Error(); got != "[DEFAULTS_WRITE] defaults write failed: exit status 1" {
		t.Errorf("Error() = %q", got)
	}

	if err.Details["domain"] != "com.apple.finder" {
		t.Errorf("WithDetail did not record domain, got %v", err.Details["domain"])
	}

	if errors.Wrap(nil, errors.ErrDefaultsWrite, "no-op") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrDocumentLoad, "cannot load %s", "broken.toml")

	if !errors.IsErrorCode(err, errors.ErrDocumentLoad) {
		t.Error("IsErrorCode should match DOCUMENT_LOAD")
	}
	if errors.IsErrorCode(err, errors.ErrDefaultsWrite) {
		t.Error("IsErrorCode should not match DEFAULTS_WRITE")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrDocumentLoad) {
		t.Error("IsErrorCode should not match a plain error")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrProcessKill, "killall failed")); got != errors.ErrProcessKill {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrProcessKill)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestErrorIs_ByCode(t *testing.T) {
	a := errors.New(errors.ErrDefaultsRead, "read a")
	b := errors.New(errors.ErrDefaultsRead, "read b")
	c := errors.New(errors.ErrDefaultsWrite, "write c")

	if !stderrors.Is(a, b) {
		t.Error("errors with the same code should match with errors.Is")
	}
	if stderrors.Is(a, c) {
		t.Error("errors with different codes should not match")
	}
}

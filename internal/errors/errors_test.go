package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{"empty", SourceLocation{}, "unknown location"},
		{"file only", SourceLocation{File: "a.go"}, "a.go"},
		{"file and line", SourceLocation{File: "a.go", Line: 3}, "a.go:3"},
		{"full", SourceLocation{File: "a.go", Line: 3, Column: 7}, "a.go:3:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestBaseError_Error(t *testing.T) {
	err := New(SyntaxErrorCode, "unexpected token")
	assert.Equal(t, "unexpected token", err.Error())

	err.WithLocation(SourceLocation{File: "users.go", Line: 12, Column: 4})
	assert.Equal(t, "users.go:12:4: unexpected token", err.Error())

	wrapped := Wrap(FileSystemErrorCode, "failed to read", fs.ErrNotExist)
	assert.Equal(t, "failed to read: file does not exist", wrapped.Error())
	assert.ErrorIs(t, wrapped, fs.ErrNotExist)
}

func TestNewValidationError(t *testing.T) {
	loc := SourceLocation{File: "users.go", Line: 4, Column: 1}
	err := NewValidationError("Status", "integer status code", "abc", loc, "use -Status=200:OK")

	assert.Equal(t, ValidationErrorCode, err.ErrorCode())
	assert.Equal(t, loc, err.Location())
	assert.Equal(t, "Status", err.Context()["option"])
	assert.Equal(t, []string{"use -Status=200:OK"}, err.Suggestions())
	assert.Contains(t, err.Error(), "option 'Status' validation failed")
}

func TestNewSyntaxError_EmptyHint(t *testing.T) {
	err := NewSyntaxError("bad", SourceLocation{}, "")
	assert.Empty(t, err.Suggestions())
}

func TestCodeOf(t *testing.T) {
	base := WrapConfigurationError("routedoc.toml", "load", fs.ErrPermission)
	wrapped := fmt.Errorf("startup: %w", base)

	assert.Equal(t, ConfigurationErrorCode, CodeOf(wrapped))
	assert.Equal(t, UnknownErrorCode, CodeOf(stderrors.New("plain")))
	assert.Equal(t, "routedoc.toml", base.Context()["config_type"])
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	require.NoError(t, multi.ErrOrNil())

	multi.Add(NewSyntaxError("first", SourceLocation{File: "a.go", Line: 1}, ""))
	assert.Equal(t, "a.go:1: first", multi.Error())

	cause := WrapFileSystemError("read", "b.go", fs.ErrNotExist)
	multi.Add(cause)

	assert.Equal(t, 2, multi.Count())
	assert.True(t, multi.HasCode(FileSystemErrorCode))
	assert.False(t, multi.HasCode(OutputErrorCode))
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")

	err := multi.ErrOrNil()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var target *BaseError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, SyntaxErrorCode, target.ErrorCode())
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "SyntaxError", SyntaxErrorCode.String())
	assert.Equal(t, "OutputError", OutputErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}

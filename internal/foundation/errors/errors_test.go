package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel")

func TestClassifiedError_BuilderAndAccessors(t *testing.T) {
	err := SidebarError("dangling document reference").
		WithContext("doc_id", "missing_doc").
		WithCause(errSentinel).
		Build()

	assert.Equal(t, CategorySidebar, err.Category())
	assert.Equal(t, SeverityFatal, err.Severity())
	assert.Equal(t, RetryUserAction, err.RetryStrategy())
	assert.False(t, err.CanRetry())
	assert.True(t, err.IsFatal())

	id, ok := err.Context().GetString("doc_id")
	require.True(t, ok)
	assert.Equal(t, "missing_doc", id)

	assert.ErrorIs(t, err, errSentinel)
	assert.Contains(t, err.Error(), "[sidebar:fatal] dangling document reference: sentinel")
}

func TestClassifiedError_FoundThroughWrapping(t *testing.T) {
	inner := ContentError("duplicate document id").Build()
	wrapped := fmt.Errorf("scan current: %w", inner)

	assert.True(t, IsClassified(wrapped))
	assert.True(t, HasCategory(wrapped, CategoryContent))
	assert.Equal(t, CategoryContent, GetCategory(wrapped))
	assert.Equal(t, CategoryInternal, GetCategory(errSentinel))
	assert.Equal(t, SeverityError, GetSeverity(errSentinel))
}

func TestClassifiedError_WithContextDoesNotMutateOriginal(t *testing.T) {
	base := BuildError("write failed").Build()
	next := base.WithContext("path", "out/manifest.json")

	_, ok := base.Context().Get("path")
	assert.False(t, ok)
	path, ok := next.Context().GetString("path")
	require.True(t, ok)
	assert.Equal(t, "out/manifest.json", path)
}

func TestClassifiedError_Is(t *testing.T) {
	a := ConfigError("bad config").Build()
	b := ConfigError("bad config").WithContext("file", "x").Build()
	c := ConfigError("other").Build()

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestClassifiedError_SeverityAndRetry(t *testing.T) {
	fsErr := FileSystemError("failed to write artifact").Build()
	assert.Equal(t, RetryBackoff, fsErr.RetryStrategy())
	assert.True(t, fsErr.CanRetry())
	assert.False(t, fsErr.IsFatal())

	strict := ValidationError("navigation has warnings").Warning().Build()
	assert.Equal(t, SeverityWarning, strict.Severity())
	assert.False(t, strict.IsFatal())
	assert.False(t, strict.CanRetry())
	assert.True(t, strict.IsCategory(CategoryValidation))
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("navigation invalid").Build(), expected: 2},
		{name: "sidebar", err: SidebarError("dangling").Build(), expected: 3},
		{name: "content", err: ContentError("duplicate id").Build(), expected: 4},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "build", err: BuildError("write failed").Build(), expected: 11},
		{name: "filesystem", err: FileSystemError("read failed").Build(), expected: 11},
		{name: "internal", err: InternalError("bug").Build(), expected: 10},
		{name: "wrapped sidebar", err: fmt.Errorf("ctx: %w", SidebarError("dup").Build()), expected: 3},
		{name: "unclassified", err: errSentinel, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := SidebarError("dangling document reference").
		WithContext("tree", "docs").
		WithContext("doc_id", "missing_doc").
		Build()

	plain := NewCLIErrorAdapter(false, quiet)
	assert.Equal(t, "Error: dangling document reference (doc_id=missing_doc tree=docs)", plain.FormatError(err))
	assert.Equal(t, "Internal error occurred (use -v for details)", plain.FormatError(InternalError("bug").Build()))
	assert.Equal(t, "Error: sentinel", plain.FormatError(errSentinel))
	assert.Equal(t, "Warning: navigation has warnings (warnings=1)",
		plain.FormatError(ValidationError("navigation has warnings").WithContext("warnings", 1).Warning().Build()))

	verbose := NewCLIErrorAdapter(true, quiet)
	assert.Equal(t, err.Error(), verbose.FormatError(err))
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil))).WithOutput(&out)

	code := adapter.Report(ConfigError("configuration file not found").Build())

	assert.Equal(t, 7, code)
	assert.Contains(t, out.String(), "configuration file not found")
	assert.Contains(t, logs.String(), "category=config")
	assert.Equal(t, 0, adapter.Report(nil))

	logs.Reset()
	out.Reset()
	code = adapter.Report(ValidationError("navigation has warnings").Warning().Build())
	assert.Equal(t, 2, code)
	assert.Equal(t, "Warning: navigation has warnings\n", out.String())
	assert.Empty(t, logs.String(), "non-fatal errors are only logged in verbose mode")
}

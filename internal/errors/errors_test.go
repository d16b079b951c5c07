package errors

import (
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// UserError Tests
// =============================================================================

func TestUserError(t *testing.T) {
	t.Run("message_only", func(t *testing.T) {
		err := NewUserError("rate must not be negative", "use 0 or more")
		assert.Equal(t, "rate must not be negative", err.Error())
		assert.Equal(t, "use 0 or more", err.Suggestion)
	})

	t.Run("with_field_and_value", func(t *testing.T) {
		err := NewUserErrorWithField("status", "blocked", "invalid task status", "")
		assert.Equal(t, "invalid task status: 'blocked'", err.Error())
	})

	t.Run("because_links_sentinel", func(t *testing.T) {
		err := NewUserError("no such project", "").Because(ErrProjectNotFound)
		assert.True(t, Is(err, ErrProjectNotFound))
		assert.True(t, IsUserError(err))
		assert.False(t, IsSystemError(err))
	})

	t.Run("survives_wrapping", func(t *testing.T) {
		err := Wrap(NewUserError("bad", "fix it"), "creating task")
		ue, ok := AsUserError(err)
		require.True(t, ok)
		assert.Equal(t, "fix it", ue.Suggestion)
	})
}

// =============================================================================
// SystemError Tests
// =============================================================================

func TestSystemError(t *testing.T) {
	cause := fmt.Errorf("disk on fire")

	err := NewSystemErrorWithOp("save tasks", "write failed", cause)
	assert.Equal(t, "write failed during save tasks", err.Error())
	assert.True(t, Is(err, cause))

	se, ok := AsSystemError(Wrap(err, "outer"))
	require.True(t, ok)
	assert.Equal(t, "save tasks", se.Op)

	assert.Equal(t, "write failed", (&SystemError{Message: "write failed"}).Error())
}

// =============================================================================
// Classification Tests
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryUnknown},
		{"user_error", NewUserError("x", ""), CategoryUser},
		{"system_error", NewSystemErrorWithOp("open", "x", nil), CategorySystem},
		{"sentinel_not_found", Wrap(ErrTaskNotFound, "lookup"), CategoryUser},
		{"sentinel_duration", ErrInvalidDuration, CategoryUser},
		{"load_failed", Wrap(ErrLoadFailed, "tasks"), CategorySystem},
		{"errno_eacces", syscall.EACCES, CategorySystem},
		{"plain", fmt.Errorf("something"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "user", CategoryUser.String())
	assert.Equal(t, "system", CategorySystem.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestFormatByCategory(t *testing.T) {
	t.Run("user_with_suggestion", func(t *testing.T) {
		out := FormatByCategory(ErrInvalidStatus)
		assert.Contains(t, out, "invalid task status")
		assert.Contains(t, out, "Try: Use one of: pending, in_progress, done.")
	})

	t.Run("system_prefixed", func(t *testing.T) {
		out := FormatByCategory(NewSystemErrorWithOp("open badger", "cannot open database", nil))
		assert.True(t, strings.HasPrefix(out, "System error: "))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, FormatByCategory(nil))
	})
}

// =============================================================================
// Suggestion Tests
// =============================================================================

func TestGetSuggestion(t *testing.T) {
	assert.Empty(t, GetSuggestion(nil))
	assert.Contains(t, GetSuggestion(Wrap(ErrProjectNotFound, "x")), "workflowr project")
	assert.Equal(t, "own", GetSuggestion(NewUserError("m", "own").Because(ErrProjectNotFound)))
	assert.Empty(t, GetSuggestion(fmt.Errorf("unknown")))
}

func TestGetExamples(t *testing.T) {
	examples := GetExamples(Wrap(ErrInvalidDuration, "parse"))
	require.NotEmpty(t, examples)
	assert.Contains(t, examples[0], "workflowr timer log")
	assert.Nil(t, GetExamples(ErrTaskNotFound))
}

// =============================================================================
// Wrapping Tests
// =============================================================================

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))
	assert.Nil(t, Wrapf(nil, "ctx %d", 1))

	err := Wrapf(ErrTaskNotFound, "task %s", "abc")
	assert.Equal(t, "task abc: task not found", err.Error())
	assert.True(t, Is(err, ErrTaskNotFound))
}

func TestWithContext(t *testing.T) {
	assert.Nil(t, WithContext(nil, "x"))

	err := WithContext(ErrLoadFailed, "loading tasks")
	assert.Equal(t, "loading tasks: failed to load stored data", err.Error())
	assert.True(t, Is(err, ErrLoadFailed))

	stack := GetStack(err)
	require.NotEmpty(t, stack)
	assert.Contains(t, stack[0].Function, "TestWithContext")
}

func TestChain(t *testing.T) {
	err := Wrap(Wrap(ErrTaskNotFound, "inner"), "outer")

	chain := Chain(err)
	require.Len(t, chain, 3)
	assert.Equal(t, "outer: inner: task not found", chain[0])
	assert.Equal(t, "task not found", chain[2])
	assert.Nil(t, Chain(nil))
}

func TestFormatDebugError(t *testing.T) {
	out := FormatDebugError(WithContext(Wrap(ErrLoadFailed, "tasks"), "open"))
	assert.Contains(t, out, "Category: system")
	assert.Contains(t, out, "Chain:")
	assert.Contains(t, out, "Stack:")
	assert.Empty(t, FormatDebugError(nil))
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewFormatMismatch("title row does not match", nil),
			want: "[FORMAT] title row does not match",
		},
		{
			name: "with cause",
			err:  NewParseError("bad quantity", errors.New("invalid syntax")),
			want: "[PARSING] bad quantity: invalid syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewSinkError("write failed", cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppErrorWithContext(t *testing.T) {
	err := NewFormatMismatch("column count mismatch", nil).
		WithContext("file", "a.txt").
		WithContext("columns", 19)

	assert.Equal(t, "a.txt", err.Context["file"])
	assert.Equal(t, 19, err.Context["columns"])
}

func TestTypePredicates(t *testing.T) {
	format := NewFormatMismatch("bad title", nil)
	parse := NewParseError("bad quantity", nil)
	sink := NewSinkError("write failed", nil)

	assert.True(t, IsFormatMismatch(format))
	assert.False(t, IsFormatMismatch(parse))

	assert.True(t, IsParseError(parse))
	assert.False(t, IsParseError(sink))

	assert.True(t, IsSinkError(sink))
	assert.False(t, IsSinkError(format))

	assert.False(t, IsFormatMismatch(errors.New("plain")))
	assert.False(t, IsFormatMismatch(nil))
}

func TestTypePredicatesThroughWrapping(t *testing.T) {
	inner := NewParseError("bad quantity", nil)
	wrapped := fmt.Errorf("line 12: %w", inner)

	assert.True(t, IsParseError(wrapped))
	assert.False(t, IsFormatMismatch(wrapped))
}

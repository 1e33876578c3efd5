package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrKindInvalidDatabase, "no catalog"),
			want: "[invalid_database] no catalog",
		},
		{
			name: "with cause",
			err:  Wrap(ErrKindTableRead, "scan failed", errors.New("disk error")),
			want: "[table_read] scan failed: disk error",
		},
		{
			name: "unknown kind",
			err:  New(ErrKindUnknown, "what"),
			want: "[unknown] what",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"invalid database", New(ErrKindInvalidDatabase, "x"), IsInvalidDatabase},
		{"table read", New(ErrKindTableRead, "x"), IsTableRead},
		{"io", New(ErrKindIO, "x"), IsIO},
		{"timeout", New(ErrKindTimeout, "x"), IsTimeout},
		{"invalid input", New(ErrKindInvalidInput, "x"), IsInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))

			// Every other predicate must reject it.
			for _, other := range tests {
				if other.name == tt.name {
					continue
				}
				assert.False(t, other.pred(tt.err), "predicate %s accepted %s", other.name, tt.name)
			}
		})
	}
}

func TestPredicatesTraverseWrapping(t *testing.T) {
	inner := New(ErrKindIO, "disk full")
	outer := fmt.Errorf("exporting: %w", inner)

	assert.True(t, IsIO(outer))
	assert.False(t, IsTableRead(outer))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrKindTableRead, "read failed", cause)

	require.ErrorIs(t, err, cause)
}

func TestPlainErrorIsUnknown(t *testing.T) {
	err := errors.New("something else")

	assert.False(t, IsInvalidDatabase(err))
	assert.False(t, IsTableRead(err))
	assert.False(t, IsIO(err))
}

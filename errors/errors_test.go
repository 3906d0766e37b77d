package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindInvalidArgument, "invalid argument"},
		{KindRange, "range"},
		{KindNotImplemented, "not implemented"},
		{KindInternal, "internal"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
	}
}

func TestInvalidArgumentf(t *testing.T) {
	err := InvalidArgumentf("Clamp", "NewClamp", "unsupported dtype %q", "complex_float16")
	require.Error(t, err)

	assert.True(t, IsInvalidArgument(err))
	assert.False(t, IsRange(err))
	assert.Equal(t, KindInvalidArgument, KindOf(err))
	assert.Contains(t, err.Error(), "Clamp.NewClamp")
	assert.Contains(t, err.Error(), `"complex_float16"`)
}

func TestRangef(t *testing.T) {
	err := Rangef("Select", "SetSelectedInput", "invalid input %d, valid: [0,%d)", 5, 3)
	require.Error(t, err)

	assert.True(t, IsRange(err))
	assert.False(t, IsInvalidArgument(err))
	assert.Equal(t, KindRange, KindOf(err))
}

func TestNotImplementedf(t *testing.T) {
	err := NotImplementedf("FileSource", "Seek", "seek unsupported in stream mode")
	assert.True(t, IsNotImplemented(err))
	assert.Equal(t, KindNotImplemented, KindOf(err))
}

func TestInternalf(t *testing.T) {
	err := Internalf("Multiplexer", "SetOutputChannel", "no input routes to output %d", 2)
	assert.True(t, IsInternal(err))
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestWrapPreservesClassification(t *testing.T) {
	inner := InvalidArgumentf("Interleaver", "SetChunkSize", "chunk size must be positive")
	wrapped := fmt.Errorf("building topology: %w", inner)

	assert.True(t, IsInvalidArgument(wrapped))
	assert.Equal(t, KindInvalidArgument, KindOf(wrapped))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "Block", "Work", "anything"))
	assert.Nil(t, WrapInvalidArgument(nil, "Block", "Work", "anything"))
}

func TestWrapFormatsContext(t *testing.T) {
	err := Wrap(ErrUnsupportedDType, "MinMax", "NewMinMax", "dtype dispatch")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "MinMax.NewMinMax: dtype dispatch failed")
	assert.True(t, Is(err, ErrUnsupportedDType))
}

func TestStandardErrorsClassify(t *testing.T) {
	assert.True(t, IsInvalidArgument(ErrUnsupportedDType))
	assert.True(t, IsInvalidArgument(ErrInvalidConfig))
	assert.False(t, IsInvalidArgument(ErrOverConsume))
	assert.False(t, IsInvalidArgument(nil))
	assert.False(t, IsRange(nil))
}

func TestClassifiedErrorUnwrap(t *testing.T) {
	err := WrapInvalidArgument(ErrInvalidConfig, "Registry", "Make", "factory lookup")

	var ce *ClassifiedError
	require.True(t, As(err, &ce))
	assert.Equal(t, "Registry", ce.Component)
	assert.Equal(t, "Make", ce.Operation)
	assert.True(t, Is(ce.Unwrap(), ErrInvalidConfig))
}

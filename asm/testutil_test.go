package asm

import (
	"bytes"
	"testing"
)

// assert is a boolean predicate reported through t.Fatalf.
func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	assert(t, err == nil, "unexpected error: %v", err)
}

func assertError(t *testing.T, err error) {
	t.Helper()
	assert(t, err != nil, "expected an error, got nil")
}

func assertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	assert(t, got == want, "got %v, want %v", got, want)
}

func assertBytesEqual(t *testing.T, got, want []byte) {
	t.Helper()
	assert(t, bytes.Equal(got, want), "got %x, want %x", got, want)
}

func assertStringSliceEqual(t *testing.T, got, want []string) {
	t.Helper()
	assert(t, len(got) == len(want), "got %v, want %v", got, want)
	for i := range got {
		assert(t, got[i] == want[i], "got %v, want %v", got, want)
	}
}

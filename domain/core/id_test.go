package core

import (
	"testing"
)

// TestNewRunIDUniqueness tests that NewRunID generates unique identifiers
func TestNewRunIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[RunID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewRunID()
		if ID(id).IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"run-123", RunID("run-123"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestHashDeterministic tests that identical payloads hash identically
func TestHashDeterministic(t *testing.T) {
	a := NewHash([]byte("Price,HP"))
	b := NewHash([]byte("Price,HP"))
	c := NewHash([]byte("Price,Age_08_04"))

	if !a.Equals(b) {
		t.Errorf("Expected equal hashes, got %s and %s", a, b)
	}
	if a.Equals(c) {
		t.Error("Expected different payloads to hash differently")
	}
	if a.IsEmpty() {
		t.Error("Expected non-empty hash")
	}
}

package chatid

import (
	"strings"
	"testing"
)

func TestNewIsMonotonic(t *testing.T) {
	previous := New()
	for i := 0; i < 100; i++ {
		next := New()
		if next <= previous {
			t.Fatalf("ids must sort by creation order: %s then %s", previous, next)
		}
		previous = next
	}
}

func TestNewIsLowercase(t *testing.T) {
	id := New()
	if id != strings.ToLower(id) {
		t.Errorf("expected lowercase id, got %s", id)
	}
	if !IsValid(id) {
		t.Errorf("generated id should be valid: %s", id)
	}
}

func TestIsValidRejectsGarbage(t *testing.T) {
	if IsValid("not-a-ulid") {
		t.Error("expected garbage to be rejected")
	}
	if IsValid("") {
		t.Error("expected empty string to be rejected")
	}
}

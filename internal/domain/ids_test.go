package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestStableID(t *testing.T) {
	a := StableID("category", "Home & Kitchen")
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("expected a uuid, got %q", a)
	}
	if b := StableID("category", "  home & kitchen "); b != a {
		t.Fatalf("expected case and space insensitive id, got %s vs %s", a, b)
	}
	if c := StableID("product", "Home & Kitchen"); c == a {
		t.Fatalf("expected kind to change the id")
	}
}

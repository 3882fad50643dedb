package memory

import (
	"context"
	"errors"
	"testing"

	"xeghep/internal/repository"
)

func TestSlotStore(t *testing.T) {
	ctx := context.Background()
	s := NewSlotStore()

	if _, err := s.Load(ctx, repository.SlotRides); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	payload := []byte(`[{"id":"1"}]`)
	if err := s.SaveAll(ctx, map[string][]byte{repository.SlotRides: payload}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload[0] = 'X'

	got, err := s.Load(ctx, repository.SlotRides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("stored value should be a copy, got %s", got)
	}
}

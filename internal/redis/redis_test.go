package redis

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"xeghep/internal/repository"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestLockStore_AcquireAndRelease(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)

	a := NewLockStore(client)
	b := NewLockStore(client)

	ok, err := a.AcquireRequestLock(ctx, "q1", 10*time.Second)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}
	if ttl := mr.TTL("lock:request:q1"); ttl != 10*time.Second {
		t.Errorf("expected 10s ttl, got %v", ttl)
	}

	ok, err = b.AcquireRequestLock(ctx, "q1", 10*time.Second)
	if err != nil || ok {
		t.Fatalf("second acquire should fail: ok=%v err=%v", ok, err)
	}

	if err := b.ReleaseRequestLock(ctx, "q1"); err != nil {
		t.Fatalf("release by non-holder: %v", err)
	}
	if !mr.Exists("lock:request:q1") {
		t.Fatal("a non-holder must not release the lock")
	}

	if err := a.ReleaseRequestLock(ctx, "q1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists("lock:request:q1") {
		t.Error("lock should be gone after release")
	}

	ok, err = b.AcquireRequestLock(ctx, "q1", 10*time.Second)
	if err != nil || !ok {
		t.Errorf("acquire after release: ok=%v err=%v", ok, err)
	}
}

func TestLockStore_ExpiredLockTakenByOtherIsKept(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)

	a := NewLockStore(client)
	b := NewLockStore(client)

	if ok, _ := a.AcquireRequestLock(ctx, "q1", time.Second); !ok {
		t.Fatal("expected a to acquire")
	}
	mr.FastForward(2 * time.Second)
	if ok, _ := b.AcquireRequestLock(ctx, "q1", 10*time.Second); !ok {
		t.Fatal("expected b to acquire the expired lock")
	}

	if err := a.ReleaseRequestLock(ctx, "q1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !mr.Exists("lock:request:q1") {
		t.Error("a late release must not drop b's lock")
	}
}

func TestLockStore_ConnectionError(t *testing.T) {
	mr, client := newTestClient(t)
	mr.Close()

	if _, err := NewLockStore(client).AcquireRequestLock(context.Background(), "q1", time.Second); err == nil {
		t.Error("expected an error with redis down")
	}
}

func TestSlotStore_LoadSaveAll(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	s := NewSlotStore(client)

	if _, err := s.Load(ctx, repository.SlotRides); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	err := s.SaveAll(ctx, map[string][]byte{
		repository.SlotRides:    []byte(`[{"id":"1"}]`),
		repository.SlotBookings: []byte(`[]`),
	})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}

	got, err := s.Load(ctx, repository.SlotRides)
	if err != nil || string(got) != `[{"id":"1"}]` {
		t.Errorf("unexpected rides slot %q, err %v", got, err)
	}
	if v, _ := mr.Get(repository.SlotBookings); v != `[]` {
		t.Errorf("unexpected bookings slot %q", v)
	}
	if ttl := mr.TTL(repository.SlotRides); ttl != 0 {
		t.Errorf("slots must not expire, ttl %v", ttl)
	}
}

func TestResponseCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	c := NewResponseCache(client)

	got, err := c.Get(ctx, "k1")
	if err != nil || got != nil {
		t.Fatalf("expected a clean miss, got %+v err %v", got, err)
	}

	want := &CachedResponse{
		StatusCode: http.StatusCreated,
		Body:       []byte(`{"id":"b1"}`),
		Headers:    http.Header{"Content-Type": {"application/json"}},
	}
	if err := c.Set(ctx, "k1", want, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("idempotency:k1") {
		t.Fatal("expected the idempotency: prefix on the key")
	}

	got, err = c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.StatusCode != want.StatusCode || string(got.Body) != string(want.Body) ||
		got.Headers.Get("Content-Type") != "application/json" {
		t.Errorf("unexpected cached response %+v", got)
	}

	mr.FastForward(2 * time.Hour)
	if got, _ := c.Get(ctx, "k1"); got != nil {
		t.Error("entry should expire after its ttl")
	}
}

func TestResponseCache_CorruptEntry(t *testing.T) {
	mr, client := newTestClient(t)
	_ = mr.Set("idempotency:bad", "{not json")

	if _, err := NewResponseCache(client).Get(context.Background(), "bad"); err == nil {
		t.Error("expected a decode error")
	}
}

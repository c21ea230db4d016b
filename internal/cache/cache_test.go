package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryHitAndMiss(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected miss on empty store")
	}

	m.Set(ctx, "k", []byte("body"), time.Minute)
	got, ok := m.Get(ctx, "k")
	if !ok || string(got) != "body" {
		t.Fatalf("Get = (%q, %v), want (body, true)", got, ok)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	current := time.Unix(1000, 0)
	m.now = func() time.Time { return current }

	m.Set(ctx, "k", []byte("body"), 30*time.Minute)

	current = current.Add(29 * time.Minute)
	if _, ok := m.Get(ctx, "k"); !ok {
		t.Fatal("entry expired too early")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestMemoryCopiesValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	src := []byte("abc")
	m.Set(ctx, "k", src, time.Minute)
	src[0] = 'x'

	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("cached value aliased caller's buffer: %q", got)
	}
}

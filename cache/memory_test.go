package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("expected hit with v, got %q ok=%v err=%v", got, ok, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_ = c.Set(ctx, "k", []byte("v"), time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemoryCacheSetAfterExpiryIsKept(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_ = c.Set(ctx, "k", []byte("old"), time.Nanosecond)
	time.Sleep(time.Millisecond)
	_ = c.Set(ctx, "k", []byte("new"), time.Minute)

	got, ok, _ := c.Get(ctx, "k")
	if !ok || string(got) != "new" {
		t.Fatalf("fresh entry lost: %q ok=%v", got, ok)
	}
}

func TestMemoryCacheConcurrentRefresh(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 100; j++ {
				// expire, read the stale entry, then refresh it
				_ = c.Set(ctx, key, []byte("stale"), time.Nanosecond)
				_, _, _ = c.Get(ctx, key)
				_ = c.Set(ctx, key, []byte("fresh"), time.Minute)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		got, ok, _ := c.Get(ctx, fmt.Sprintf("k%d", i))
		if !ok || string(got) != "fresh" {
			t.Fatalf("k%d: got %q ok=%v", i, got, ok)
		}
	}
}

func TestMemoryCacheCopiesValues(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	v := []byte("abc")
	_ = c.Set(ctx, "k", v, 0)
	v[0] = 'x'

	got, ok, _ := c.Get(ctx, "k")
	if !ok || string(got) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}
	got[1] = 'y'
	again, _, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()
	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("noop cache must never hit")
	}
}

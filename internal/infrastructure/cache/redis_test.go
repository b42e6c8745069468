package cache

import (
	"context"
	"testing"
	"time"
)

func TestNoopCache_BypassesEverything(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()

	if err := c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var out map[string]int
	hit, err := c.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	ok, err := c.SetIfNotExists(ctx, "lock", "1", time.Second)
	if err != nil || ok {
		t.Fatalf("expected lock not acquired without error, got %v %v", ok, err)
	}
	if err := c.InvalidateProduct(ctx, "Audience"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := c.Ping(ctx); err == nil {
		t.Fatalf("expected ping error on noop cache")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestNilCache_IsSafe(t *testing.T) {
	var c *Redis
	if err := c.Delete(context.Background(), "k"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := c.DeleteByPattern(context.Background(), "x:*"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

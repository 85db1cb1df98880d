package adminview

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisInvalidatorDropsCachedView(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	if err := mr.Set(DefaultKey, "rendered-admin-page"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	inv := NewRedisInvalidator(client, nil)
	if err := inv.Invalidate(context.Background()); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}
	if mr.Exists(DefaultKey) {
		t.Fatalf("expected cached view to be deleted")
	}
}

func TestRedisInvalidatorMissingKeyIsNoop(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	inv := NewRedisInvalidator(client, nil)
	if err := inv.Invalidate(context.Background()); err != nil {
		t.Fatalf("Invalidate on absent key should succeed, got %v", err)
	}
}

func TestMemoryInvalidatorCounts(t *testing.T) {
	inv := NewMemoryInvalidator()
	for i := 0; i < 3; i++ {
		if err := inv.Invalidate(context.Background()); err != nil {
			t.Fatalf("Invalidate: %v", err)
		}
	}
	if got := inv.Invalidations(); got != 3 {
		t.Fatalf("expected 3 invalidations, got %d", got)
	}
}

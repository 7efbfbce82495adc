package common

import (
	"testing"
	"time"
)

func TestCache_Touch(t *testing.T) {
	cache := NewCache(0, 0)

	cache.Touch(CacheKeyClient("127.0.0.1"), 42)

	v, ok := cache.Get("client:127.0.0.1")
	if !ok || v.(int) != 42 {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestCache_TouchExpires(t *testing.T) {
	cache := NewCache(time.Millisecond, 0)

	cache.Touch("key", "value")
	time.Sleep(5 * time.Millisecond)

	if _, ok := cache.Get("key"); ok {
		t.Error("expected key to be expired")
	}
}

func TestCache_TouchRestartsExpiration(t *testing.T) {
	cache := NewCache(200*time.Millisecond, 0)

	cache.Touch("key", "value")
	time.Sleep(120 * time.Millisecond)
	cache.Touch("key", "value")
	time.Sleep(120 * time.Millisecond)

	if _, ok := cache.Get("key"); !ok {
		t.Error("expected key to survive after being touched")
	}
}

func TestCache_Missing(t *testing.T) {
	cache := NewCache(0, 0)

	if _, ok := cache.Get("absent"); ok {
		t.Error("expected no value for an absent key")
	}
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestLock_ServerUnavailable(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	l := NewLocker(client, WithPollInterval(10*time.Millisecond))
	unlock, err := l.Lock(context.Background(), "recommend:1")
	if err == nil {
		unlock()
		t.Fatal("expected error when redis is unreachable")
	}
}

func TestConnect_Errors(t *testing.T) {
	if _, err := Connect(context.Background(), "not a url"); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Connect(context.Background(), "redis://127.0.0.1:1/0"); err == nil {
		t.Error("expected ping error")
	}
}

func TestNewLocker_Options(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	l := NewLocker(client, WithTTL(3*time.Second), WithPollInterval(0))
	if l.ttl != 3*time.Second {
		t.Errorf("ttl = %v, want 3s", l.ttl)
	}
	if l.poll != defaultPollInterval {
		t.Errorf("non-positive poll interval should keep the default, got %v", l.poll)
	}
}

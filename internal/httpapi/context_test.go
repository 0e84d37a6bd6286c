package httpapi

import (
	"context"
	"testing"
	"time"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("joined context was not canceled")
	}
}

func TestJoinContextsCancelsOnFirstParent(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	joined, cancel := joinContexts(a, context.Background())
	defer cancel()
	cancelA()
	waitDone(t, joined)
}

func TestJoinContextsCancelsOnSecondParent(t *testing.T) {
	b, cancelB := context.WithCancel(context.Background())
	joined, cancel := joinContexts(context.Background(), b)
	defer cancel()
	cancelB()
	waitDone(t, joined)
}

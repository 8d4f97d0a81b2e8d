package observability

import (
	"context"
	"testing"
	"time"
)

type countingPlacementHooks struct {
	NoopPlacementHooks
	commits int
}

func (h *countingPlacementHooks) OnCommit(context.Context, string, string, string) {
	h.commits++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.hits++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// No panic, no effect.
	Placement().OnRunStart(ctx, 3)
	Placement().OnCommit(ctx, "props", "id", "strict")
	Placement().OnRunComplete(ctx, 3, time.Second)
	Cache().OnCacheHit(ctx, "estimate")
}

func TestSetPlacementHooks(t *testing.T) {
	defer Reset()

	h := &countingPlacementHooks{}
	SetPlacementHooks(h)

	Placement().OnCommit(context.Background(), "props", "id", "strict")
	Placement().OnCommit(context.Background(), "props", "id2", "relaxed")

	if h.commits != 2 {
		t.Errorf("commits = %d, want 2", h.commits)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	h := &countingCacheHooks{}
	SetCacheHooks(h)

	Cache().OnCacheHit(context.Background(), "estimate")
	if h.hits != 1 {
		t.Errorf("hits = %d, want 1", h.hits)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	h := &countingPlacementHooks{}
	SetPlacementHooks(h)
	SetPlacementHooks(nil)

	Placement().OnCommit(context.Background(), "props", "id", "strict")
	if h.commits != 1 {
		t.Error("nil registration should not replace the active hooks")
	}
}

func TestReset(t *testing.T) {
	h := &countingPlacementHooks{}
	SetPlacementHooks(h)
	Reset()

	Placement().OnCommit(context.Background(), "props", "id", "strict")
	if h.commits != 0 {
		t.Error("Reset should restore the no-op hooks")
	}
}

package sockrelay

import (
	"sync"
	"testing"

	"github.com/sockrelay/sockrelay/event"
)

type broadcastCall struct {
	exceptID string
	ev       event.Outbound
}

// testBroadcaster records broadcasts instead of delivering them.
type testBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *testBroadcaster) SendToAllExcept(exceptID string, ev event.Outbound) {
	b.mu.Lock()
	b.calls = append(b.calls, broadcastCall{exceptID: exceptID, ev: ev})
	b.mu.Unlock()
}

func (b *testBroadcaster) Calls() []broadcastCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broadcastCall{}, b.calls...)
}

func TestPresenceOnline(t *testing.T) {
	b := &testBroadcaster{}
	p := NewPresence(b)
	sD := newTestSession("sD")

	p.Online(sD, "d")

	calls := b.Calls()
	if len(calls) != 1 {
		t.Fatalf("Got: %d broadcasts; Expected: 1", len(calls))
	}
	if calls[0].exceptID != "sD" {
		t.Errorf("Got: %q excluded; Expected: %q", calls[0].exceptID, "sD")
	}
	online, ok := calls[0].ev.(*event.UserOnline)
	if !ok {
		t.Fatalf("Got: %T; Expected: *event.UserOnline", calls[0].ev)
	}
	if online.UserID != "d" {
		t.Errorf("Got: %q; Expected: %q", online.UserID, "d")
	}
}

func TestPresenceOffline(t *testing.T) {
	b := &testBroadcaster{}
	p := NewPresence(b)
	sD := newTestSession("sD")

	p.Offline(sD, "d")

	calls := b.Calls()
	if len(calls) != 1 {
		t.Fatalf("Got: %d broadcasts; Expected: 1", len(calls))
	}
	offline, ok := calls[0].ev.(*event.UserOffline)
	if !ok {
		t.Fatalf("Got: %T; Expected: *event.UserOffline", calls[0].ev)
	}
	if offline.UserID != "d" {
		t.Errorf("Got: %q; Expected: %q", offline.UserID, "d")
	}
}

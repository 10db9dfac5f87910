// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"log/slog"
	"sync"
)

// Event names sent to subscribers.
const (
	EventSession = "session-update"
	EventRoster  = "roster-update"
	EventVotes   = "vote-update"
	EventVerdict = "verdict-update"
)

// subscriberBuffer is the per-client channel depth. A client that falls
// further behind than this starts dropping messages rather than blocking
// the writer.
const subscriberBuffer = 16

// Message is one push notification for a session.
type Message struct {
	Event string // event type, one of the Event* constants
	Data  string // JSON payload
}

// Broadcaster fans session change notifications out to SSE subscribers.
// Each session code has its own subscriber set.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[string]map[chan Message]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[string]map[chan Message]struct{}),
	}
}

// Subscribe registers a new subscriber for a session code and returns its
// channel. The caller must Unsubscribe when done (client navigated away or
// disconnected).
func (b *Broadcaster) Subscribe(code string) chan Message {
	ch := make(chan Message, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[code] == nil {
		b.subs[code] = make(map[chan Message]struct{})
	}
	b.subs[code][ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and releases its channel.
func (b *Broadcaster) Unsubscribe(code string, ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if set, ok := b.subs[code]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(b.subs, code)
		}
	}
}

// Broadcast sends a message to every subscriber of a session code. Sends
// never block: a full subscriber channel drops the message, and the next
// snapshot will catch that client up.
func (b *Broadcaster) Broadcast(code, event, data string) {
	b.mu.RLock()
	// Collect channels while holding the lock, send without it
	channels := make([]chan Message, 0, len(b.subs[code]))
	for ch := range b.subs[code] {
		channels = append(channels, ch)
	}
	b.mu.RUnlock()

	msg := Message{Event: event, Data: data}
	for _, ch := range channels {
		select {
		case ch <- msg:
		default:
			slog.Warn("dropping event for slow subscriber", "code", code, "event", event)
		}
	}
}

// SubscriberCount returns how many clients are subscribed to a code.
func (b *Broadcaster) SubscriberCount(code string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[code])
}

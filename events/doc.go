// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events fans out session change notifications to SSE subscribers.

Handlers broadcast after every successful write; each subscriber is one
open SSE connection for one session code:

	ch := bus.Subscribe(code)
	defer bus.Unsubscribe(code, ch)

Broadcast never blocks the writing handler: subscribers have a small
buffer and slow ones drop messages. Every event carries a full JSON
snapshot (not a delta), so a dropped message only delays a client until
the next change.
*/
package events

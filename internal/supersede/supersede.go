// Package supersede makes sure a late response can never overwrite the
// result of a newer request.
//
// Each view a visitor can trigger (a search, a profile load) is identified by
// a key. Begin hands out a Ticket carrying a generation number and a
// context. Starting a newer ticket for the same key cancels the older
// ticket's context, which aborts its outbound HTTP call, and makes its
// Current method return false so whatever it produced is dropped.
package supersede

import (
	"context"
	"sync"
)

// Group tracks the latest generation per key. The zero value is not usable;
// call New.
type Group struct {
	mu      sync.Mutex
	next    uint64 // generations are unique across keys, so a forgotten key cannot reuse one
	entries map[string]*entry
}

type entry struct {
	gen    uint64
	cancel context.CancelFunc
}

// New creates an empty Group.
func New() *Group {
	return &Group{entries: make(map[string]*entry)}
}

// Ticket is one request's claim on a key.
type Ticket struct {
	g      *Group
	key    string
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Begin starts a new generation for key and cancels the previous one.
//
// The returned ticket's Context is derived from parent. Callers must call
// Done when they are finished with the ticket, whether or not it is still
// current.
//
// An empty key never supersedes anything: the ticket is independent and
// always current.
func (g *Group) Begin(parent context.Context, key string) *Ticket {
	ctx, cancel := context.WithCancel(parent)
	t := &Ticket{g: g, key: key, ctx: ctx, cancel: cancel}
	if key == "" {
		return t
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	if !ok {
		e = &entry{}
		g.entries[key] = e
	} else if e.cancel != nil {
		e.cancel()
	}
	g.next++
	e.gen = g.next
	e.cancel = cancel
	t.gen = e.gen
	return t
}

// Context is cancelled when the ticket is superseded, when the parent is
// cancelled, or after Done.
func (t *Ticket) Context() context.Context {
	return t.ctx
}

// Current reports whether no newer ticket for the same key has begun.
func (t *Ticket) Current() bool {
	if t.key == "" {
		return true
	}
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	e, ok := t.g.entries[t.key]
	return ok && e.gen == t.gen
}

// Done releases the ticket. If it is still the latest for its key the key
// is forgotten, so the map does not grow with every visitor ever seen.
func (t *Ticket) Done() {
	t.cancel()
	if t.key == "" {
		return
	}
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if e, ok := t.g.entries[t.key]; ok && e.gen == t.gen {
		delete(t.g.entries, t.key)
	}
}

// Len returns the number of keys with an outstanding ticket.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

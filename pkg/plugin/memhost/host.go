// Package memhost is an in-memory game host for demos and tests.
package memhost

import (
	"sort"
	"sync"

	burnguard "github.com/goliatone/go-burnguard"
	"github.com/goliatone/go-burnguard/pkg/plugin"
)

// Cookable is a mutable temperature pair.
type Cookable struct {
	mu   sync.Mutex
	pair burnguard.ValuePair
}

// Pair implements burnguard.Handle.
func (c *Cookable) Pair() burnguard.ValuePair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pair
}

// SetPair implements burnguard.Handle.
func (c *Cookable) SetPair(pair burnguard.ValuePair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pair = pair
}

// Host holds item definitions, connected players and loaded plugins.
type Host struct {
	mu      sync.RWMutex
	items   map[string]*Cookable
	players map[string]burnguard.Actor
	plugins []plugin.Info
}

// New returns a host with the given item temperatures.
func New(items map[string]burnguard.ValuePair) *Host {
	h := &Host{
		items:   make(map[string]*Cookable, len(items)),
		players: map[string]burnguard.Actor{},
	}
	for id, pair := range items {
		h.items[id] = &Cookable{pair: pair}
	}
	return h
}

// Cookable implements plugin.Host.
func (h *Host) Cookable(shortname string) (burnguard.Handle, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	item, ok := h.items[shortname]
	if !ok {
		return nil, false
	}
	return item, true
}

// Player implements plugin.Host.
func (h *Host) Player(id string) (burnguard.Actor, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	actor, ok := h.players[id]
	return actor, ok
}

// Join connects a player.
func (h *Host) Join(actor burnguard.Actor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.players[actor.ID] = actor
}

// Leave disconnects a player.
func (h *Host) Leave(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.players, id)
}

// Remove drops an item definition, as a game update might.
func (h *Host) Remove(shortname string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.items, shortname)
}

// Temperatures returns the current pair of every item.
func (h *Host) Temperatures() map[string]burnguard.ValuePair {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]burnguard.ValuePair, len(h.items))
	for id, item := range h.items {
		out[id] = item.Pair()
	}
	return out
}

// Items returns the known shortnames, sorted.
func (h *Host) Items() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.items))
	for id := range h.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Install records a loaded plugin.
func (h *Host) Install(info plugin.Info) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.plugins = append(h.plugins, info)
}

// Loaded implements plugin.Registry.
func (h *Host) Loaded() []plugin.Info {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]plugin.Info(nil), h.plugins...)
}

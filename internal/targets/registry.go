// Package targets holds the lookup tables of available snippet targets and the
// selection logic that picks a subset of them from a selection spec.
package targets

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/apiembed/apiembed/pkg/snippet"
)

// Entry is the availability or selection state of one target. Clients is nil
// for targets that have no clients, in which case Selected carries the state.
type Entry struct {
	Selected bool
	Clients  map[string]bool
}

// HasClients reports whether the entry describes a target with clients.
func (e Entry) HasClients() bool {
	return e.Clients != nil
}

// MarshalJSON encodes a clientless entry as a boolean and a cliented one as
// its client map.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Clients != nil {
		return json.Marshal(e.Clients)
	}
	return json.Marshal(e.Selected)
}

// Availability maps every known target to its (unselected) entry.
type Availability map[string]Entry

// NamedTarget is a target descriptor with its clients keyed by client key.
type NamedTarget struct {
	Key     string                    `json:"key"`
	Title   string                    `json:"title"`
	Extname string                    `json:"extname"`
	Default string                    `json:"default,omitempty"`
	Clients map[string]snippet.Client `json:"clients,omitempty"`

	// ClientKeys lists the client keys in listing order
	ClientKeys []string `json:"-"`
}

// Registry is built once at startup and is read-only afterwards.
type Registry struct {
	listing      []snippet.Target
	availability Availability
	named        map[string]NamedTarget
}

// NewRegistry builds the availability and named lookup tables from a target
// listing. A listing that is empty or contains duplicate or empty keys is rejected.
func NewRegistry(listing []snippet.Target) (*Registry, error) {
	if len(listing) == 0 {
		return nil, errors.New("target listing is empty")
	}

	r := &Registry{
		listing:      listing,
		availability: make(Availability, len(listing)),
		named:        make(map[string]NamedTarget, len(listing)),
	}

	for _, t := range listing {
		if t.Key == "" {
			return nil, errors.New("target with empty key")
		}
		if _, dup := r.availability[t.Key]; dup {
			return nil, fmt.Errorf("duplicate target %q", t.Key)
		}

		named := NamedTarget{
			Key:     t.Key,
			Title:   t.Title,
			Extname: t.Extname,
			Default: t.Default,
		}

		if t.Clients == nil {
			r.availability[t.Key] = Entry{}
			r.named[t.Key] = named
			continue
		}

		clients := make(map[string]bool, len(t.Clients))
		named.Clients = make(map[string]snippet.Client, len(t.Clients))
		for _, c := range t.Clients {
			if c.Key == "" {
				return nil, fmt.Errorf("target %q has a client with an empty key", t.Key)
			}
			if _, dup := clients[c.Key]; dup {
				return nil, fmt.Errorf("target %q has duplicate client %q", t.Key, c.Key)
			}
			clients[c.Key] = false
			named.Clients[c.Key] = c
			named.ClientKeys = append(named.ClientKeys, c.Key)
		}

		r.availability[t.Key] = Entry{Clients: clients}
		r.named[t.Key] = named
	}

	return r, nil
}

// Listing returns the target listing the registry was built from.
func (r *Registry) Listing() []snippet.Target {
	return append([]snippet.Target(nil), r.listing...)
}

// Availability returns the availability table. Callers must not modify it.
func (r *Registry) Availability() Availability {
	return r.availability
}

// Named returns the descriptor of a target.
func (r *Registry) Named(key string) (NamedTarget, bool) {
	t, ok := r.named[key]
	return t, ok
}

// Keys returns the target keys in listing order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.listing))
	for _, t := range r.listing {
		keys = append(keys, t.Key)
	}
	return keys
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.listing)
}

// sortedClients returns the client keys of a client map in a stable order.
func sortedClients(clients map[string]bool) []string {
	keys := make([]string, 0, len(clients))
	for k := range clients {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

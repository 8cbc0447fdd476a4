package contenttypes

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Registry maps registered sender types to stable "<namespace>.<type>"
// descriptors. Webhook consumers key on the descriptor, so it must stay
// stable across releases regardless of how the Go types are renamed.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]string
	byName map[string]any
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]string),
		byName: make(map[string]any),
	}
}

// Register derives the descriptor for token's type as
// "<namespace>.<lowercased type name>" and records it, returning the
// descriptor. Registering the same type again overwrites the earlier entry.
func (r *Registry) Register(namespace string, token any) string {
	t := indirectType(token)
	name := namespace + "." + strings.ToLower(t.Name())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[t] = name
	r.byName[name] = token
	return name
}

// Lookup returns the descriptor registered for token's type.
func (r *Registry) Lookup(token any) (string, error) {
	t := indirectType(token)

	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byType[t]
	if !ok {
		return "", fmt.Errorf("contenttypes: no descriptor registered for %v", t)
	}
	return name, nil
}

// ByName returns the registered token for a descriptor. Wire sources that
// receive the descriptor as a string use this to recover the type token.
func (r *Registry) ByName(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("contenttypes: unknown descriptor %q", name)
	}
	return token, nil
}

func indirectType(token any) reflect.Type {
	t := reflect.TypeOf(token)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

package core

import (
	"context"
	"fmt"
	"sync"
)

type HandlerFunc func(ctx context.Context) ([]byte, error)

type Route struct {
	Pattern string
	Handler HandlerFunc
}

// RouteTable keeps routes in registration order. Lookups and registration may
// happen concurrently once the table is served over HTTP. No two routes may
// freeze to the same output file.
type RouteTable struct {
	mu      sync.RWMutex
	routes  []Route
	index   map[string]int
	outputs map[string]string
}

func NewRouteTable() *RouteTable {
	return &RouteTable{
		index:   make(map[string]int),
		outputs: make(map[string]string),
	}
}

func (t *RouteTable) Add(route Route) error {
	if err := ValidateRoutePath(route.Pattern); err != nil {
		return fmt.Errorf("route %q: %w", route.Pattern, err)
	}
	if route.Handler == nil {
		return fmt.Errorf("route %q: %w: nil handler", route.Pattern, ErrInvalidRoute)
	}

	route.Pattern = NormalizePath(route.Pattern)
	out := OutputPath(route.Pattern)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.index[route.Pattern]; ok {
		return fmt.Errorf("route %q: %w", route.Pattern, ErrDuplicateRoute)
	}
	if owner, ok := t.outputs[out]; ok {
		return fmt.Errorf("route %q: %w: %s is already written by %q", route.Pattern, ErrDuplicateRoute, out, owner)
	}

	t.index[route.Pattern] = len(t.routes)
	t.outputs[out] = route.Pattern
	t.routes = append(t.routes, route)
	return nil
}

func (t *RouteTable) Lookup(path string) (Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.index[NormalizePath(path)]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

func (t *RouteTable) Patterns() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.Pattern
	}
	return out
}

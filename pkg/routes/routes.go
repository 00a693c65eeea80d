// Package routes provides the static route table: route and group
// registration plus handler building over the net/http multiplexer.
package routes

import (
	"log/slog"
	"net/http"
)

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

// System defines the interface for route registration and HTTP handler
// building. The table is append-only and frozen once Build is called.
type System interface {
	RegisterGroup(group Group)
	RegisterRoute(route Route)
	Build() http.Handler
	Groups() []Group
	Routes() []Route
}

type table struct {
	routes []Route
	groups []Group
	logger *slog.Logger
}

// New creates an empty route table with the specified logger.
func New(logger *slog.Logger) System {
	return &table{
		logger: logger,
		groups: []Group{},
		routes: []Route{},
	}
}

func (t *table) Groups() []Group {
	return t.groups
}

func (t *table) Routes() []Route {
	return t.routes
}

// RegisterRoute adds a route to the table.
func (t *table) RegisterRoute(route Route) {
	t.routes = append(t.routes, route)
}

// RegisterGroup adds a route group to the table.
func (t *table) RegisterGroup(group Group) {
	t.groups = append(t.groups, group)
}

// Build constructs an http.Handler from all registered routes and groups.
func (t *table) Build() http.Handler {
	mux := http.NewServeMux()

	for _, route := range t.routes {
		t.register(mux, "", route)
	}

	for _, group := range t.groups {
		t.registerGroup(mux, "", group)
	}

	return mux
}

func (t *table) register(mux *http.ServeMux, prefix string, route Route) {
	pattern := prefix + route.Pattern
	mux.HandleFunc(route.Method+" "+pattern, route.Handler)
	t.logger.Debug("route registered", "method", route.Method, "pattern", pattern)
}

func (t *table) registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		t.register(mux, fullPrefix, route)
	}
	for _, child := range group.Children {
		t.registerGroup(mux, fullPrefix, child)
	}
}

package web

import (
	"net/http"

	log "github.com/elemental-io/elemental/pkg/logger"
)

// Middleware chains handlers.
type Middleware func(http.Handler) http.Handler

// Route is one static route definition.
type Route struct {
	Method  string
	Path    string
	Handler HandlerFunc
}

// Registry collects routes declared by the application and mounts them on a
// mux in one pass. It exists so feature packages can declare routes without
// touching the server wiring.
type Registry struct {
	routes []Route
}

func NewRegistry() *Registry { return &Registry{} }

// Add registers one route. Registration order is preserved.
func (reg *Registry) Add(method, path string, h HandlerFunc) *Registry {
	reg.routes = append(reg.routes, Route{Method: method, Path: path, Handler: h})
	return reg
}

func (reg *Registry) Get(path string, h HandlerFunc) *Registry {
	return reg.Add(http.MethodGet, path, h)
}

func (reg *Registry) Post(path string, h HandlerFunc) *Registry {
	return reg.Add(http.MethodPost, path, h)
}

func (reg *Registry) Put(path string, h HandlerFunc) *Registry {
	return reg.Add(http.MethodPut, path, h)
}

func (reg *Registry) Delete(path string, h HandlerFunc) *Registry {
	return reg.Add(http.MethodDelete, path, h)
}

// Routes returns a copy of the registered routes.
func (reg *Registry) Routes() []Route {
	out := make([]Route, len(reg.routes))
	copy(out, reg.routes)
	return out
}

// Apply mounts every route on mux through the dispatcher, wrapping each
// handler with the given middleware, outermost first.
func (reg *Registry) Apply(mux *http.ServeMux, d *Dispatcher, mws ...Middleware) {
	for _, rt := range reg.routes {
		var h http.Handler = d.Wrap(rt.Handler)
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		mux.Handle(rt.Method+" "+rt.Path, h)
		log.WithFields(log.Fields{"method": rt.Method, "path": rt.Path}).Debug("route registered")
	}
}

package router

import (
	"strings"

	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/method"
)

// Wildcard is the path of the route catching every request no other route matched.
const Wildcard = "*"

type Route struct {
	Handler http.Handler
	Methods method.Set
}

// Router is a plain route table. It must be populated before the server starts, as it
// isn't safe for concurrent modification.
type Router struct {
	routes map[string]Route
}

func New() *Router {
	return &Router{
		routes: make(map[string]Route),
	}
}

// Route registers the handler for the path. GET is the only allowed method, if none
// passed. Registering the same path again replaces the previous route.
func (r *Router) Route(path string, handler http.Handler, methods ...method.Method) *Router {
	if path != Wildcard && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if len(methods) == 0 {
		methods = []method.Method{method.GET}
	}

	r.routes[path] = Route{
		Handler: handler,
		Methods: method.NewSet(methods...),
	}

	return r
}

// Lookup returns the handler for the exact path, or the wildcard one if there's none.
// A route not allowing the method doesn't match, and the wildcard isn't tried then.
func (r *Router) Lookup(path string, m method.Method) (http.Handler, bool) {
	route, found := r.routes[path]
	if !found {
		route, found = r.routes[Wildcard]
	}

	if !found || !route.Methods.Has(m) {
		return nil, false
	}

	return route.Handler, true
}

// Len returns the number of registered routes, including the wildcard.
func (r *Router) Len() int {
	return len(r.routes)
}

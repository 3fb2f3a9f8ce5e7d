package listing

import "sync"

// Registry keeps one controller per session (or per session+scope) so a
// screen's pagination and dialog state survive across requests. The key is
// passed to the factory so scoped screens can bind their office.
type Registry[E, P any] struct {
	mu          sync.Mutex
	controllers map[string]*Controller[E, P]
	build       func(key string) *Controller[E, P]
}

// NewRegistry constructs a registry with a controller factory.
func NewRegistry[E, P any](build func(key string) *Controller[E, P]) *Registry[E, P] {
	return &Registry[E, P]{
		controllers: make(map[string]*Controller[E, P]),
		build:       build,
	}
}

// For returns the controller for the key, creating it on first use.
func (r *Registry[E, P]) For(key string) *Controller[E, P] {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctrl, ok := r.controllers[key]
	if !ok {
		ctrl = r.build(key)
		r.controllers[key] = ctrl
	}
	return ctrl
}

// DropSession discards every controller belonging to the session, typically
// on logout. Scoped keys carry the session ID as their prefix.
func (r *Registry[E, P]) DropSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.controllers {
		if key == sessionID || len(key) > len(sessionID) && key[:len(sessionID)] == sessionID && key[len(sessionID)] == '|' {
			delete(r.controllers, key)
		}
	}
}

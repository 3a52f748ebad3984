package routes

import (
	"sort"
	"sync"

	"github.com/arthur-debert/modshell/pkg/errors"
)

type nodeID int

// node holds a route without its children; the tree shape lives in
// children so that attaching a parked fragment never copies a subtree.
type node struct {
	route    Route
	children []nodeID
}

// Snapshot is an immutable view of the route tree. A new Snapshot is
// published after every successful insertion.
type Snapshot struct {
	Revision uint64
	Routes   []Route
}

// Registry accumulates route fragments. It is safe for concurrent use; every
// Add runs as a single critical section.
type Registry struct {
	mu sync.Mutex

	nodes []node
	roots []nodeID

	// <indexKey, node>
	index map[string]nodeID

	// <parentPath | parentName, routes waiting for that parent>
	pending map[string][]Route

	outletName string

	revision uint64
	snapshot *Snapshot
}

// Option configures a Registry.
type Option func(*Registry)

// WithManagedRoutesOutletName overrides the implicit parent of routes that
// are neither hoisted nor nested.
func WithManagedRoutesOutletName(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.outletName = name
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		index:      make(map[string]nodeID),
		pending:    make(map[string][]Route),
		outletName: ManagedRoutesOutletName,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.snapshot = &Snapshot{Routes: []Route{}}
	return r
}

// ManagedRoutesOutletName returns the name of the implicit parent route.
func (r *Registry) ManagedRoutesOutletName() string {
	return r.outletName
}

// OutletRoute returns the placeholder route hosts nest in their layout.
func (r *Registry) OutletRoute() Route {
	return Route{Name: r.outletName}
}

func (r *Registry) isOutlet(route Route) bool {
	return route.Name == r.outletName
}

// Add inserts route. Without Hoist or an explicit parent the route is nested
// under the managed routes outlet. When the parent is not known yet the
// route is parked and the result status is StatusPending.
func (r *Registry) Add(route Route, opts RegisterRouteOptions) (AddResult, error) {
	if err := validateOptions(route, opts); err != nil {
		return AddResult{}, err
	}

	parentName := opts.ParentName
	if !opts.Hoist && parentName == "" && opts.ParentPath == "" && !r.isOutlet(route) {
		parentName = r.outletName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx := r.begin()

	var (
		result AddResult
		err    error
	)
	switch {
	case opts.ParentPath != "":
		result, err = r.addNested(tx, []Route{route}, NormalizePath(opts.ParentPath))
	case parentName != "":
		result, err = r.addNested(tx, []Route{route}, parentName)
	default:
		result, err = r.addRoot(tx, []Route{route})
	}
	if err != nil {
		r.rollback(tx)
		return AddResult{}, err
	}

	if result.Status == StatusRegistered {
		r.revision++
	}
	return result, nil
}

func validateOptions(route Route, opts RegisterRouteOptions) error {
	if opts.Hoist && opts.ParentPath != "" {
		return errors.Newf(errors.ErrRouteOptions,
			"a route cannot have the hoist option when a parentPath option is provided (route %q)", route.identifier()).
			WithDetail("route", route.identifier())
	}
	if opts.Hoist && opts.ParentName != "" {
		return errors.Newf(errors.ErrRouteOptions,
			"a route cannot have the hoist option when a parentName option is provided (route %q)", route.identifier()).
			WithDetail("route", route.identifier())
	}
	return nil
}

func (r *Registry) addRoot(tx *txn, routes []Route) (AddResult, error) {
	ids, completed, err := r.recursivelyAdd(tx, routes)
	if err != nil {
		return AddResult{}, err
	}

	r.roots = append(r.roots, ids...)

	return AddResult{Status: StatusRegistered, CompletedPendingRegistrations: completed}, nil
}

func (r *Registry) addNested(tx *txn, routes []Route, parentKey string) (AddResult, error) {
	parentID, ok := r.index[parentKey]
	if !ok {
		r.pending[parentKey] = append(r.pending[parentKey], routes...)
		return AddResult{Status: StatusPending, CompletedPendingRegistrations: []Route{}}, nil
	}

	ids, completed, err := r.recursivelyAdd(tx, routes)
	if err != nil {
		return AddResult{}, err
	}

	r.nodes[parentID].children = append(r.nodes[parentID].children, ids...)

	return AddResult{Status: StatusRegistered, CompletedPendingRegistrations: completed}, nil
}

// recursivelyAdd creates nodes for routes and their descendants. A node's
// children are visited before its own index key is resolved against the
// pending registrations, otherwise a parked route that is also a literal
// child would be registered twice.
func (r *Registry) recursivelyAdd(tx *txn, routes []Route) ([]nodeID, []Route, error) {
	ids := make([]nodeID, 0, len(routes))
	completed := []Route{}

	for _, route := range routes {
		children := route.Children
		route.Children = nil
		if route.Visibility == "" {
			route.Visibility = VisibilityProtected
		}

		id := nodeID(len(r.nodes))
		r.nodes = append(r.nodes, node{route: route})

		if len(children) > 0 {
			childIDs, childCompleted, err := r.recursivelyAdd(tx, children)
			if err != nil {
				return nil, nil, err
			}
			r.nodes[id].children = childIDs
			completed = append(completed, childCompleted...)
		}

		key, err := r.addIndex(tx, id)
		if err != nil {
			return nil, nil, err
		}

		if key != "" {
			resolved, err := r.tryRegisterPending(tx, key)
			if err != nil {
				return nil, nil, err
			}
			if len(resolved) > 0 {
				completed = append(append([]Route{}, resolved...), completed...)
			}
		}

		ids = append(ids, id)
	}

	return ids, completed, nil
}

func (r *Registry) addIndex(tx *txn, id nodeID) (string, error) {
	key := CreateIndexKey(r.nodes[id].route)
	if key == "" {
		return "", nil
	}

	if _, exists := r.index[key]; exists {
		return "", errors.Newf(errors.ErrDuplicateRouteKey,
			"a route index has already been registered for the key %q; did you register two routes with the same path or name?", key).
			WithDetail("key", key)
	}

	r.index[key] = id
	tx.addedKeys = append(tx.addedKeys, key)
	return key, nil
}

// tryRegisterPending attaches the routes parked under parentKey. The result
// also lists routes that became resolvable transitively.
func (r *Registry) tryRegisterPending(tx *txn, parentKey string) ([]Route, error) {
	parked, ok := r.pending[parentKey]
	if !ok {
		return nil, nil
	}

	result, err := r.addNested(tx, parked, parentKey)
	if err != nil {
		return nil, err
	}
	if result.Status != StatusRegistered {
		return nil, nil
	}

	delete(r.pending, parentKey)
	return append(parked, result.CompletedPendingRegistrations...), nil
}

// txn records enough state to undo a failed Add. Existing nodes are only
// modified after the whole subtree was built, so truncating the arena is
// sufficient for node state.
type txn struct {
	nodeCount int
	rootCount int
	addedKeys []string
	pending   map[string][]Route
}

func (r *Registry) begin() *txn {
	pending := make(map[string][]Route, len(r.pending))
	for key, parked := range r.pending {
		pending[key] = append([]Route(nil), parked...)
	}
	return &txn{
		nodeCount: len(r.nodes),
		rootCount: len(r.roots),
		pending:   pending,
	}
}

func (r *Registry) rollback(tx *txn) {
	r.nodes = r.nodes[:tx.nodeCount]
	r.roots = r.roots[:tx.rootCount]
	for _, key := range tx.addedKeys {
		delete(r.index, key)
	}
	r.pending = tx.pending
}

// Snapshot returns the current tree. The returned pointer stays the same
// until the next successful insertion.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot.Revision != r.revision {
		r.snapshot = &Snapshot{
			Revision: r.revision,
			Routes:   r.materialize(r.roots),
		}
	}
	return r.snapshot
}

// Routes returns the top-level routes of the current snapshot.
func (r *Registry) Routes() []Route {
	return r.Snapshot().Routes
}

// PendingRegistrations returns a copy of the routes still waiting for their
// parent. It is empty at steady state; leftovers point at a parent that was
// never registered.
func (r *Registry) PendingRegistrations() map[string][]Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]Route, len(r.pending))
	for key, parked := range r.pending {
		out[key] = append([]Route(nil), parked...)
	}
	return out
}

// PendingKeys returns the sorted parent keys that routes are waiting for.
func (r *Registry) PendingKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.pending))
	for key := range r.pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Find returns the registered route with the given index key, including its
// current children.
func (r *Registry) Find(key string) (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.index[key]
	if !ok {
		return Route{}, false
	}
	return r.materialize([]nodeID{id})[0], true
}

func (r *Registry) materialize(ids []nodeID) []Route {
	out := make([]Route, 0, len(ids))
	for _, id := range ids {
		n := r.nodes[id]
		route := n.route
		if len(n.children) > 0 {
			route.Children = r.materialize(n.children)
		}
		out = append(out, route)
	}
	return out
}

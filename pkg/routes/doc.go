// Package routes assembles a tree of route fragments contributed by
// independently authored modules.
//
// Fragments may arrive before the route they are nested under. Such
// fragments are parked under their parent's index key and attached as soon
// as a route carrying that key is added, so the final tree does not depend
// on the order in which modules call Add.
//
// Every route with a path or a name gets an index key (the normalized path,
// else the name). Index keys are unique across the whole tree; adding a
// second route with the same key fails with a DUPLICATE_ROUTE_KEY error and
// leaves the registry untouched.
//
// The registry stores routes in an arena of nodes addressed by integer ids.
// Each successful insertion publishes a new *Snapshot, so consumers can
// detect changes by comparing snapshot pointers.
package routes

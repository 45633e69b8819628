// Package permission answers who may run an import and on which locations.
//
// Store.CheckPermission gates a batch before it starts (module + action, optionally
// bound to an access key). Store.ResolveScope implements reconcile.ScopeResolver from
// active user_locations rows; roles flagged AllLocations are not location-scoped.
package permission

// Package tabs contains the tab-level screens: the home summary and one
// records tab per table.
//
// Allowed here:
// - loading and persisting records through the store, mount/unmount policy, tab layouts
//
// Not allowed here:
// - shared app routing logic (core) or low-level drawing primitives (widgets)
package tabs

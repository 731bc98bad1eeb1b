// Package state implements persistence for the conditioned input snapshot.
//
// The FileRepository stores and loads the snapshot as JSON on disk and
// exposes a Repository interface that the monitor service depends on.
package state

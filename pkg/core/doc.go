// Package core implements the open-data conventions over a hierarchical
// attributed store: creation helpers for subjects, acquisition dates,
// sessions and domains, dataset and file attachment, attribute staging,
// copy and export.
//
// All operations are synchronous convenience calls: they take a context
// and a target store entry, check their structural preconditions before
// any write, and commit attributes before returning unless documented
// otherwise.
package core

// Package store defines the hierarchical attributed store consumed by the
// odtools conventions: entries form a tree, every entry carries an ordered
// attribute dictionary with path-delimited keys and transactional commit,
// plus named dataset payloads.
//
// Backends live in sub-packages: localfs persists entries as directories on
// an afero filesystem, badgerdb persists them in a badger database.
// The instrumented sub-package decorates any backend with tracing and
// logging, and mockstore provides overridable fakes for tests.
package store

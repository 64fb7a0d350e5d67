package localfs

import "os"

// Option customizes the localfs store.
type Option func(*localStore)

// WithDirMode sets the permissions of created entry directories.
func WithDirMode(mode os.FileMode) Option {
	return func(s *localStore) {
		s.dirMode = mode
	}
}

// WithFileMode sets the permissions of written attribute documents and
// dataset payloads.
func WithFileMode(mode os.FileMode) Option {
	return func(s *localStore) {
		s.fileMode = mode
	}
}

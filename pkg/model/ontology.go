package model

import "fmt"

// Level situates an entry in the data hierarchy.
type Level string

const (
	// LevelRoot is the store root, above any subject
	LevelRoot Level = "root"

	// LevelSubject is a subject entry
	LevelSubject Level = "subject"

	// LevelDate is an acquisition date entry
	LevelDate Level = "date"

	// LevelSession is a numbered session entry
	LevelSession Level = "session"

	// LevelDomain is a domain entry under a session, runs included
	LevelDomain Level = "domain"
)

func (l Level) String() string {
	return string(l)
}

// IsValid tells if the level is one of the known hierarchy levels.
func (l Level) IsValid() bool {
	switch l {
	case LevelRoot, LevelSubject, LevelDate, LevelSession, LevelDomain:
		return true
	}
	return false
}

// Levels yields all hierarchy levels, topmost first.
func Levels() []Level {
	return []Level{LevelRoot, LevelSubject, LevelDate, LevelSession, LevelDomain}
}

// The predicates below classify an entry from its metadata dictionary, the
// value of its metadata attribute. A nil dictionary classifies as root.

// WithinSubject tells if the metadata situates an entry at or below a subject.
func WithinSubject(meta *AttrMap) bool {
	return meta.Has(SubjectKey)
}

// WithinDate tells if the metadata situates an entry at or below a date.
func WithinDate(meta *AttrMap) bool {
	return meta.Has(DateKey)
}

// WithinSession tells if the metadata situates an entry at or below a session.
func WithinSession(meta *AttrMap) bool {
	return meta.Has(SessionKey)
}

// WithinDomain tells if the metadata situates an entry at or below a domain.
func WithinDomain(meta *AttrMap) bool {
	return meta.Has(DomainKey)
}

// IsRoot tells if the metadata classifies an entry as the root.
func IsRoot(meta *AttrMap) bool {
	return !WithinSubject(meta)
}

// IsSubject tells if the metadata classifies an entry as a subject.
func IsSubject(meta *AttrMap) bool {
	return WithinSubject(meta) && !WithinDate(meta)
}

// IsDate tells if the metadata classifies an entry as a date.
func IsDate(meta *AttrMap) bool {
	return WithinDate(meta) && !WithinSession(meta)
}

// IsSession tells if the metadata classifies an entry as a session.
func IsSession(meta *AttrMap) bool {
	return WithinSession(meta) && !WithinDomain(meta)
}

// IsDomain tells if the metadata classifies an entry as a domain.
func IsDomain(meta *AttrMap) bool {
	return WithinDomain(meta)
}

// LevelOf yields the level an entry with this metadata sits at.
//
// For well-formed metadata (see ValidateChain) exactly one of the Is
// predicates holds, and LevelOf yields that one level.
func LevelOf(meta *AttrMap) Level {
	switch {
	case IsRoot(meta):
		return LevelRoot
	case IsSubject(meta):
		return LevelSubject
	case IsDate(meta):
		return LevelDate
	case IsSession(meta):
		return LevelSession
	default:
		return LevelDomain
	}
}

// ValidateChain verifies that metadata marks form a monotonic chain: a date
// mark implies a subject mark, a session mark implies a date mark, a domain
// mark implies a session mark.
func ValidateChain(meta *AttrMap) error {
	if WithinDate(meta) && !WithinSubject(meta) {
		return fmt.Errorf("metadata carries %q without %q", DateKey, SubjectKey)
	}
	if WithinSession(meta) && !WithinDate(meta) {
		return fmt.Errorf("metadata carries %q without %q", SessionKey, DateKey)
	}
	if WithinDomain(meta) && !WithinSession(meta) {
		return fmt.Errorf("metadata carries %q without %q", DomainKey, SessionKey)
	}
	return nil
}

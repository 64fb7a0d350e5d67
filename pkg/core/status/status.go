// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/odtools/pkg/errors"
)

var (
	// ErrNameRequired indicates a creation helper called without a name
	ErrNameRequired = errors.New("name is required")

	// ErrDateRequired indicates a date helper called without a date
	ErrDateRequired = errors.New("date is required")

	// ErrSessionNumber indicates a session value that does not parse as an integer
	ErrSessionNumber = errors.New("session number must be an integer")

	// ErrNotRoot indicates an operation requiring the store root
	ErrNotRoot = errors.New("entry is not the root")

	// ErrNotSubject indicates an operation requiring a subject entry
	ErrNotSubject = errors.New("entry is not a subject")

	// ErrNotDate indicates an operation requiring a date entry
	ErrNotDate = errors.New("entry is not a date")

	// ErrNotSession indicates an operation requiring an entry within a session
	ErrNotSession = errors.New("entry is not within a session")

	// ErrNotFound indicates a missing entry or dataset
	ErrNotFound = errors.New("not found")

	// ErrFingerprintMismatch indicates a copied dataset whose content does not
	// match its recorded fingerprint
	ErrFingerprintMismatch = errors.New("dataset fingerprint mismatch")

	// ErrMetadataChain indicates entry metadata violating the subject-date-
	// session-domain chain
	ErrMetadataChain = errors.New("malformed metadata chain")
)

// Package status declares the error constants returned by implementations
// of the store interfaces.
//
// NOTE: such constants are located in a separate package to avoid creating
// undue cyclical dependencies between pkg/store and its implementations.
package status

import "github.com/oneconcern/odtools/pkg/errors"

const (
	// ErrNotFound indicates that the target entry or dataset does not exist
	ErrNotFound = errors.Sentinel("not found")

	// ErrAttrNotFound indicates that an attribute key does not resolve
	ErrAttrNotFound = errors.Sentinel("attribute not found")

	// ErrExists indicates that the target already exists and may not be overwritten
	ErrExists = errors.Sentinel("exists already")

	// ErrInvalidName indicates an entry or dataset name rejected by the naming rules
	ErrInvalidName = errors.Sentinel("invalid name")

	// ErrReservedName indicates a name colliding with internal backend files
	ErrReservedName = errors.Sentinel("reserved name")

	// ErrKeyConflict indicates an attribute write below an existing scalar value
	ErrKeyConflict = errors.Sentinel("attribute key conflicts with an existing value")

	// ErrNotSupported indicates that the backend does not support this call
	ErrNotSupported = errors.Sentinel("not supported")

	// ErrClosed indicates an operation on a closed store
	ErrClosed = errors.Sentinel("store is closed")
)

/*
 * Copyright © 2019 One Concern
 *
 */

package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Metadata conventions shared by every implementation of the open-data
// format. These literals appear in serialized documents and must not change.
const (
	// MetadataEntry is the attribute holding the metadata dictionary of an entry
	MetadataEntry = "metadata"

	// DescriptionKey qualifies the experiment description on the root entry
	DescriptionKey = "description"

	// SubjectKey qualifies the subject name
	SubjectKey = "subject"

	// DateKey qualifies the acquisition date
	DateKey = "date"

	// SessionKey qualifies the session number
	SessionKey = "session_number"

	// DomainKey qualifies the domain definition
	DomainKey = "domain"

	// DefinitionKey qualifies the definition of an attribute or dataset
	DefinitionKey = "definition"

	// ValueKey qualifies the value of an attribute
	ValueKey = "value"

	// UnitKey qualifies the physical unit of an attribute or dataset
	UnitKey = "unit"

	// FingerprintKey qualifies the content fingerprint of a dataset
	FingerprintKey = "fingerprint"

	// SizeKey qualifies the size in bytes of a dataset
	SizeKey = "size"
)

// AttrPathSeparator delimits the segments of attribute keys.
const AttrPathSeparator = "/"

// JoinAttrPath builds a path-delimited attribute key from segments.
func JoinAttrPath(elems ...string) string {
	return strings.Join(elems, AttrPathSeparator)
}

// SplitAttrPath cuts a path-delimited attribute key into its segments.
func SplitAttrPath(pth string) []string {
	if pth == "" {
		return nil
	}
	return strings.Split(pth, AttrPathSeparator)
}

// MetadataPath builds an attribute key under the metadata dictionary.
func MetadataPath(keys ...string) string {
	return JoinAttrPath(append([]string{MetadataEntry}, keys...)...)
}

// ValidateName verifies a name for subjects, dates, domains, datasets and
// attached files: non-empty, no path separators, built from unicode letters,
// digits, hyphens, underscores and dots.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty field: name is empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name: %q is reserved", name)
	}
	for _, c := range name {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) &&
			!unicode.Is(unicode.Hyphen, c) && c != '_' && c != '.' {
			return fmt.Errorf("invalid name: %s contains unsupported character %q",
				name, string(c))
		}
	}
	return nil
}

// FormatSession renders a session number as its entry name.
func FormatSession(number int) string {
	return strconv.Itoa(number)
}

// ParseSession parses a session entry name, or a user supplied session
// value, into its number.
func ParseSession(name string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("session number cannot be parsed as integer: %q", name)
	}
	return number, nil
}

// DateStamp renders a time as the conventional YYYY-MM-DD date name.
//
// Dates remain opaque names: any name accepted by ValidateName works as a
// date entry.
func DateStamp(t time.Time) string {
	return t.Format("2006-01-02")
}

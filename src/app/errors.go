package app

import "fmt"

// ArchiveError reports that the input bytes are not a valid set archive.
type ArchiveError struct {
	Err error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive: not a valid set archive: %v", e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// MissingEntryError reports that a required archive entry is absent.
type MissingEntryError struct {
	Name string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("archive: entry %q not found", e.Name)
}

// SyntaxError reports a structural violation in the set description text.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse: line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// ValidationError reports a missing or unusable semantic field during mapping.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("map: field %q: %s", e.Field, e.Reason)
}

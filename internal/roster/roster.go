// Package roster holds the participant list an author builds before adding
// users to an exam.
package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-authoring/internal/importer"
)

const initialEntries = 4

var (
	ErrFull       = fmt.Errorf("maximum number of users reached (%d)", importer.MaxUsers)
	ErrNoEntry    = errors.New("no such user entry")
	ErrNoneValid  = errors.New("please enter at least one valid phone number")
	ErrHasInvalid = errors.New("some phone numbers are invalid")
)

// Roster is the editable list of phone numbers for one exam. It is created
// per editing session and never shared.
type Roster struct {
	entries []string
	max     int
}

// New returns a roster with the four empty entries an author starts with.
func New() *Roster {
	return &Roster{entries: make([]string, initialEntries), max: importer.MaxUsers}
}

func (r *Roster) Len() int          { return len(r.entries) }
func (r *Roster) Remaining() int    { return r.max - len(r.entries) }
func (r *Roster) Entries() []string { return append([]string(nil), r.entries...) }

// Add appends an empty entry and returns its index.
func (r *Roster) Add() (int, error) {
	if len(r.entries) >= r.max {
		return 0, ErrFull
	}
	r.entries = append(r.entries, "")
	return len(r.entries) - 1, nil
}

func (r *Roster) Set(i int, phone string) error {
	if i < 0 || i >= len(r.entries) {
		return ErrNoEntry
	}
	r.entries[i] = phone
	return nil
}

func (r *Roster) Remove(i int) error {
	if i < 0 || i >= len(r.entries) {
		return ErrNoEntry
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return nil
}

// Replace swaps the entries for an imported list, keeping at most the
// maximum in their original order. It returns how many were dropped.
func (r *Roster) Replace(phones []string) int {
	kept := importer.Truncate(phones, r.max)
	r.entries = append([]string(nil), kept...)
	return len(phones) - len(kept)
}

// Validate splits non-blank entries into valid numbers and per-entry error
// messages.
func (r *Roster) Validate() (valid []string, errs []string) {
	for i, e := range r.entries {
		v := strings.TrimSpace(e)
		if v == "" {
			continue
		}
		if importer.ValidPhone(v) {
			valid = append(valid, v)
		} else {
			errs = append(errs, fmt.Sprintf("User %d: Invalid phone number format", i+1))
		}
	}
	return valid, errs
}

// Ready returns the numbers to save, or an error when the roster cannot be
// saved as is.
func (r *Roster) Ready() ([]string, error) {
	valid, errs := r.Validate()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrHasInvalid, strings.Join(errs, "; "))
	}
	if len(valid) == 0 {
		return nil, ErrNoneValid
	}
	return valid, nil
}

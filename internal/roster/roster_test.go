package roster_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mind-engage/mindengage-authoring/internal/roster"
)

func TestNewRosterStartsWithFourEntries(t *testing.T) {
	r := roster.New()
	if r.Len() != 4 || r.Remaining() != 16 {
		t.Fatalf("len=%d remaining=%d", r.Len(), r.Remaining())
	}
}

func TestAddStopsAtMaximum(t *testing.T) {
	r := roster.New()
	for r.Remaining() > 0 {
		if _, err := r.Add(); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if r.Len() != 20 {
		t.Fatalf("expected 20 entries, got %d", r.Len())
	}
	if _, err := r.Add(); !errors.Is(err, roster.ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if err := r.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := r.Add(); err != nil {
		t.Fatalf("add after remove: %v", err)
	}
}

func TestValidate(t *testing.T) {
	r := roster.New()
	_ = r.Set(0, "01840000000")
	_ = r.Set(1, "12345")
	_ = r.Set(3, " 01912345678 ")
	valid, errs := r.Validate()
	if len(valid) != 2 || valid[1] != "01912345678" {
		t.Fatalf("valid = %v", valid)
	}
	if len(errs) != 1 || errs[0] != "User 2: Invalid phone number format" {
		t.Fatalf("errs = %v", errs)
	}
	if _, err := r.Ready(); !errors.Is(err, roster.ErrHasInvalid) {
		t.Fatalf("expected ErrHasInvalid, got %v", err)
	}
	_ = r.Set(1, "")
	got, err := r.Ready()
	if err != nil || len(got) != 2 {
		t.Fatalf("ready = %v, %v", got, err)
	}
}

func TestReadyNeedsOneNumber(t *testing.T) {
	if _, err := roster.New().Ready(); !errors.Is(err, roster.ErrNoneValid) {
		t.Fatalf("expected ErrNoneValid, got %v", err)
	}
}

func TestReplaceTruncates(t *testing.T) {
	var phones []string
	for i := 0; i < 23; i++ {
		phones = append(phones, fmt.Sprintf("0171%07d", i))
	}
	r := roster.New()
	if dropped := r.Replace(phones); dropped != 3 {
		t.Fatalf("dropped = %d", dropped)
	}
	got := r.Entries()
	if len(got) != 20 || got[19] != phones[19] {
		t.Fatalf("entries = %v", got)
	}
	if strings.Join(got, ",") != strings.Join(phones[:20], ",") {
		t.Fatalf("order changed")
	}
}

func TestOutOfRange(t *testing.T) {
	r := roster.New()
	if err := r.Set(9, "x"); !errors.Is(err, roster.ErrNoEntry) {
		t.Fatalf("set: %v", err)
	}
	if err := r.Remove(-1); !errors.Is(err, roster.ErrNoEntry) {
		t.Fatalf("remove: %v", err)
	}
}

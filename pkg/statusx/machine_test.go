package statusx

import (
	"errors"
	"slices"
	"testing"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
)

type state string

const (
	stPending     state = "pending"
	stShortlisted state = "shortlisted"
	stApproved    state = "approved"
	stRejected    state = "rejected"
)

func newMachine() *Machine[state] {
	return NewMachine("application", stPending, stShortlisted, stApproved, stRejected).
		Allow(stPending, stShortlisted, stRejected).
		Allow(stShortlisted, stApproved, stRejected)
}

func TestPermissiveAllowsAnyKnownStatus(t *testing.T) {
	m := newMachine()
	if err := m.Check(stApproved, stPending); err != nil {
		t.Fatalf("expected permissive transition, got %v", err)
	}
	if err := m.Check(stPending, stPending); err != nil {
		t.Fatalf("expected no-op transition, got %v", err)
	}
}

func TestUnknownStatusRejectedInEveryMode(t *testing.T) {
	for _, mode := range []Mode{ModePermissive, ModeStrict} {
		err := newMachine().WithMode(mode).Check(stPending, "archived")
		if !errx.IsCode(err, CodeUnknownStatus) {
			t.Fatalf("mode %s: expected unknown status, got %v", mode, err)
		}
	}
}

func TestStrictFollowsGraph(t *testing.T) {
	m := newMachine().WithMode(ModeStrict)
	if err := m.Check(stPending, stShortlisted); err != nil {
		t.Fatalf("expected allowed edge, got %v", err)
	}
	if err := m.Check(stShortlisted, stShortlisted); err != nil {
		t.Fatalf("expected self transition, got %v", err)
	}
	err := m.Check(stApproved, stPending)
	if !errors.Is(err, ErrTransitionNotAllowed()) {
		t.Fatalf("expected transition not allowed, got %v", err)
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Details["from"] != "approved" {
		t.Fatalf("expected from detail, got %+v", e)
	}
}

func TestWithModeDoesNotMutateOriginal(t *testing.T) {
	m := newMachine()
	_ = m.WithMode(ModeStrict)
	if m.Mode() != ModePermissive {
		t.Fatalf("original mode changed to %s", m.Mode())
	}
}

func TestParse(t *testing.T) {
	m := newMachine()
	s, err := m.Parse("  Shortlisted ")
	if err != nil || s != stShortlisted {
		t.Fatalf("got %q, %v", s, err)
	}
	if _, err := m.Parse("hired"); !errx.IsCode(err, CodeUnknownStatus) {
		t.Fatalf("expected unknown status, got %v", err)
	}
}

func TestNextAndTerminal(t *testing.T) {
	m := newMachine()
	if got := m.Next(stPending); !slices.Equal(got, []state{stShortlisted, stApproved, stRejected}) {
		t.Fatalf("permissive next = %v", got)
	}
	strict := m.WithMode(ModeStrict)
	if got := strict.Next(stPending); !slices.Equal(got, []state{stShortlisted, stRejected}) {
		t.Fatalf("strict next = %v", got)
	}
	if !m.IsTerminal(stApproved) || m.IsTerminal(stPending) {
		t.Fatal("terminal detection wrong")
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("STRICT") != ModeStrict || ParseMode("") != ModePermissive || ParseMode("bogus") != ModePermissive {
		t.Fatal("unexpected mode parsing")
	}
}

func TestPaletteFallback(t *testing.T) {
	p := Palette[state]{stApproved: {Color: "green", Icon: "check", Label: "Approved"}}
	if p.Style(stApproved).Color != "green" {
		t.Fatal("expected configured style")
	}
	if p.Style("mystery") != DefaultStyle {
		t.Fatal("expected default style")
	}
}

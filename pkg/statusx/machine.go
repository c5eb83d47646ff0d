// Package statusx holds the status transition rules shared by jobs and
// applications.
package statusx

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("STATUS")

var (
	CodeUnknownStatus        = ErrRegistry.Register("UNKNOWN_STATUS", errx.TypeValidation, http.StatusBadRequest, "Unknown status")
	CodeTransitionNotAllowed = ErrRegistry.Register("TRANSITION_NOT_ALLOWED", errx.TypeBusiness, http.StatusConflict, "Status transition not allowed")
)

func ErrUnknownStatus() *errx.Error {
	return ErrRegistry.New(CodeUnknownStatus)
}

func ErrTransitionNotAllowed() *errx.Error {
	return ErrRegistry.New(CodeTransitionNotAllowed)
}

// Mode selects how strictly transitions are checked
type Mode string

const (
	// ModePermissive allows any known status to any known status
	ModePermissive Mode = "permissive"
	// ModeStrict allows only declared edges and self transitions
	ModeStrict Mode = "strict"
)

// ParseMode reads a mode from configuration. Anything unrecognised is permissive.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeStrict {
		return ModeStrict
	}
	return ModePermissive
}

// Machine validates status changes for one entity
type Machine[S ~string] struct {
	entity string
	known  []S
	edges  map[S][]S
	mode   Mode
}

// NewMachine creates a permissive machine over the given statuses
func NewMachine[S ~string](entity string, known ...S) *Machine[S] {
	return &Machine[S]{
		entity: entity,
		known:  slices.Clone(known),
		edges:  make(map[S][]S),
		mode:   ModePermissive,
	}
}

// Allow declares forward edges used in strict mode
func (m *Machine[S]) Allow(from S, to ...S) *Machine[S] {
	m.edges[from] = append(m.edges[from], to...)
	return m
}

// WithMode returns a copy of the machine running in mode
func (m *Machine[S]) WithMode(mode Mode) *Machine[S] {
	cp := *m
	cp.mode = mode
	return &cp
}

func (m *Machine[S]) Mode() Mode { return m.mode }

// Statuses returns the known statuses in declaration order
func (m *Machine[S]) Statuses() []S { return slices.Clone(m.known) }

// IsKnown reports whether s is a declared status
func (m *Machine[S]) IsKnown(s S) bool { return slices.Contains(m.known, s) }

// Parse converts raw input to a known status
func (m *Machine[S]) Parse(raw string) (S, error) {
	s := S(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsKnown(s) {
		return s, m.unknown(s)
	}
	return s, nil
}

// Next lists the statuses reachable from from under the current mode
func (m *Machine[S]) Next(from S) []S {
	if m.mode != ModeStrict {
		return slices.DeleteFunc(slices.Clone(m.known), func(s S) bool { return s == from })
	}
	return slices.Clone(m.edges[from])
}

// IsTerminal reports whether no edge leaves s
func (m *Machine[S]) IsTerminal(s S) bool {
	return len(m.edges[s]) == 0
}

// Check validates from -> to
func (m *Machine[S]) Check(from, to S) error {
	if !m.IsKnown(to) {
		return m.unknown(to)
	}
	if m.mode != ModeStrict || from == to {
		return nil
	}
	if slices.Contains(m.edges[from], to) {
		return nil
	}
	return ErrTransitionNotAllowed().
		WithDetail("entity", m.entity).
		WithDetail("from", string(from)).
		WithDetail("to", string(to)).
		WithDetail("allowed", toStrings(m.edges[from]))
}

func (m *Machine[S]) unknown(s S) *errx.Error {
	return ErrUnknownStatus().
		WithDetail("entity", m.entity).
		WithDetail("status", string(s)).
		WithDetail("known", toStrings(m.known))
}

func (m *Machine[S]) String() string {
	return fmt.Sprintf("%s(%s)", m.entity, m.mode)
}

func toStrings[S ~string](in []S) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

package application

import (
	"testing"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/pkg/statusx"
)

func TestSetStatusKeepsNoteUnlessGiven(t *testing.T) {
	submitted := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	a := &Application{ID: "a1", Status: ApplicationStatusPending, SubmittedAt: submitted}

	note := "strong wine knowledge"
	a.SetStatus(ApplicationStatusShortlisted, &note, submitted.Add(time.Hour))
	note = "mutated after the call"

	a.SetStatus(ApplicationStatusInterview, nil, submitted.Add(2*time.Hour))
	if a.Note == nil || *a.Note != "strong wine knowledge" {
		t.Fatalf("note = %v", a.Note)
	}
	if !a.LastActivity().Equal(submitted.Add(2 * time.Hour)) {
		t.Fatalf("last activity = %v", a.LastActivity())
	}
}

func TestCanWithdraw(t *testing.T) {
	for _, status := range Statuses {
		a := &Application{ID: "a1", Status: status}
		err := a.CanWithdraw()
		decided := status == ApplicationStatusApproved || status == ApplicationStatusRejected
		if decided != errx.IsCode(err, CodeCannotWithdraw) {
			t.Errorf("%s: err = %v", status, err)
		}
	}
}

func TestStrictPipeline(t *testing.T) {
	m := NewMachine(statusx.ModeStrict)
	allowed := [][2]ApplicationStatus{
		{ApplicationStatusPending, ApplicationStatusShortlisted},
		{ApplicationStatusShortlisted, ApplicationStatusInterview},
		{ApplicationStatusInterview, ApplicationStatusApproved},
		{ApplicationStatusPending, ApplicationStatusRejected},
		{ApplicationStatusInterview, ApplicationStatusRejected},
	}
	for _, tr := range allowed {
		if err := m.Check(tr[0], tr[1]); err != nil {
			t.Errorf("%s -> %s: %v", tr[0], tr[1], err)
		}
	}
	rejected := [][2]ApplicationStatus{
		{ApplicationStatusPending, ApplicationStatusApproved},
		{ApplicationStatusApproved, ApplicationStatusPending},
		{ApplicationStatusRejected, ApplicationStatusShortlisted},
		{ApplicationStatusInterview, ApplicationStatusShortlisted},
	}
	for _, tr := range rejected {
		if err := m.Check(tr[0], tr[1]); !errx.IsCode(err, statusx.CodeTransitionNotAllowed) {
			t.Errorf("%s -> %s: expected rejection, got %v", tr[0], tr[1], err)
		}
	}

	permissive := NewMachine(statusx.ModePermissive)
	if err := permissive.Check(ApplicationStatusApproved, ApplicationStatusPending); err != nil {
		t.Fatalf("permissive: %v", err)
	}
}

func TestSchemaSearchesNote(t *testing.T) {
	note := "Speaks Italian"
	apps := []Application{
		{ID: "a1", JobTitle: "Sommelier", ApplicantName: "Rui", Status: ApplicationStatusPending},
		{ID: "a2", JobTitle: "Waiter", ApplicantName: "Lia", Note: &note, Status: ApplicationStatusShortlisted},
	}
	got := listx.Filter(apps, Schema, listx.FilterState{Search: "italian"})
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("got %v", got)
	}
	got = listx.Filter(apps, Schema, listx.FilterState{}.WithField(FieldStatus, "pending", "approved"))
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("got %v", got)
	}
}

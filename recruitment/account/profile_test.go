package account

import (
	"slices"
	"testing"

	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
)

func student() *UserAccount {
	return &UserAccount{FirstName: "Ana", LastName: "Silva", Email: "ana@example.com", Role: auth.RoleStudent}
}

func TestProfileCompletionStudent(t *testing.T) {
	u := student()
	if got := ProfileCompletion(u); got != 20 {
		t.Fatalf("name only: got %d, want 20", got)
	}
	if got := NaiveProfileCompletion(u); got != 20 {
		t.Fatalf("naive name only: got %d, want 20", got)
	}

	u.Phone = "+351 900 000 000"
	u.Location = "Porto"
	u.Skills = []string{"barista"}
	u.ResumeURL = "https://files.example.com/cv.pdf"
	if got := ProfileCompletion(u); got != 100 {
		t.Fatalf("complete: got %d, want 100", got)
	}
	if got := NaiveProfileCompletion(u); got != 100 {
		t.Fatalf("naive complete: got %d, want 100", got)
	}
}

func TestProfileCompletionAdminExcludesStudentChecks(t *testing.T) {
	u := student()
	u.Role = auth.RoleAdmin
	u.Phone = "+33 1 00 00 00 00"
	u.Location = "Paris"

	if got := ProfileCompletion(u); got != 100 {
		t.Fatalf("corrected: got %d, want 100", got)
	}
	if got := NaiveProfileCompletion(u); got != 60 {
		t.Fatalf("naive: got %d, want 60", got)
	}
	if missing := MissingProfileChecks(u); len(missing) != 0 {
		t.Fatalf("admin missing = %v, want none", missing)
	}
}

func TestProfileCompletionRounds(t *testing.T) {
	u := student()
	u.Role = auth.RoleAdmin
	u.Phone = "1"
	// 2 of 3 applicable
	if got := ProfileCompletion(u); got != 67 {
		t.Fatalf("got %d, want 67", got)
	}
}

func TestMissingProfileChecks(t *testing.T) {
	u := student()
	u.Skills = []string{"cocktails"}
	want := []string{"phone", "location", "resume"}
	if got := MissingProfileChecks(u); !slices.Equal(got, want) {
		t.Fatalf("missing = %v, want %v", got, want)
	}
}

func TestUpdateProfileNormalizesSkills(t *testing.T) {
	u := student()
	skills := []string{" wine ", "", "wine", "front desk"}
	if !u.UpdateProfile(UpdateProfileRequest{Skills: &skills}, u.UpdatedAt) {
		t.Fatal("expected a change")
	}
	if want := []string{"wine", "front desk"}; !slices.Equal(u.Skills, want) {
		t.Fatalf("skills = %v, want %v", u.Skills, want)
	}

	same := u.FirstName
	if u.UpdateProfile(UpdateProfileRequest{FirstName: &same}, u.UpdatedAt) {
		t.Fatal("unchanged first name reported as a change")
	}
}

func TestChangeRoleRejectsUnknown(t *testing.T) {
	u := student()
	if err := u.ChangeRole("owner", u.UpdatedAt); err == nil {
		t.Fatal("expected invalid role")
	}
	if err := u.ChangeRole(auth.RoleAdmin, u.UpdatedAt); err != nil || !u.IsAdmin() {
		t.Fatalf("promote: err=%v admin=%v", err, u.IsAdmin())
	}
}

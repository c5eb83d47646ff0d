package seed

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountinfra"
	"github.com/Abraxas-365/shiftboard/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/shiftboard/recruitment/job/jobinfra"
)

var (
	now       = time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	passwords = Passwords{Admin: "admin-secret", Student: "student-secret"}
)

func TestBuildIsConsistent(t *testing.T) {
	f, err := Build(now, passwords)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(f.Jobs) != len(jobSpecs) || len(f.Accounts) != len(accountSpecs) || len(f.Applications) != len(applicationSpecs) {
		t.Fatalf("sizes = %d/%d/%d", len(f.Jobs), len(f.Accounts), len(f.Applications))
	}

	counts := map[kernel.JobID]int{}
	for _, a := range f.Applications {
		counts[a.JobID]++
		if a.JobTitle == "" || a.ApplicantName == "" {
			t.Fatalf("application %s not denormalised", a.ID)
		}
	}
	for _, j := range f.Jobs {
		if j.ApplicationCount != counts[j.ID] {
			t.Fatalf("job %s count = %d, want %d", j.ID, j.ApplicationCount, counts[j.ID])
		}
	}

	admin := f.Accounts[0]
	if admin.Role != auth.RoleAdmin {
		t.Fatalf("first account role = %s", admin.Role)
	}
	if err := auth.CheckPassword(admin.PasswordHash, passwords.Admin); err != nil {
		t.Fatalf("admin password: %v", err)
	}
}

func TestBuildRejectsWeakPassword(t *testing.T) {
	if _, err := Build(now, Passwords{Admin: "short", Student: "student-secret"}); err == nil {
		t.Fatal("expected weak password error")
	}
}

func TestValidateCatchesBadRecord(t *testing.T) {
	f, err := Build(now, passwords)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f.Jobs[0].Status = "archived"
	if err := f.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadOnlyOnce(t *testing.T) {
	ctx := context.Background()
	f, err := Build(now, passwords)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	repos := Repositories{
		Jobs:         jobinfra.NewMemoryJobRepository(),
		Accounts:     accountinfra.NewMemoryAccountRepository(),
		Applications: applicationinfra.NewMemoryApplicationRepository(),
	}
	for range 2 {
		if err := Load(ctx, f, repos); err != nil {
			t.Fatalf("load: %v", err)
		}
	}

	jobs, _ := repos.Jobs.List(ctx)
	apps, _ := repos.Applications.List(ctx)
	accounts, _ := repos.Accounts.List(ctx)
	if len(jobs) != len(f.Jobs) || len(apps) != len(f.Applications) || len(accounts) != len(f.Accounts) {
		t.Fatalf("loaded %d/%d/%d", len(jobs), len(apps), len(accounts))
	}
}

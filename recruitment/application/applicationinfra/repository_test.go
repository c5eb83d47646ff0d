package applicationinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/shiftboard/internal/database"
	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
)

func sampleApplication(id, jobID, applicant string, submitted time.Time) *application.Application {
	return &application.Application{
		ID:             kernel.ApplicationID(id),
		JobID:          kernel.JobID(jobID),
		ApplicantID:    kernel.UserID(applicant),
		Status:         application.ApplicationStatusPending,
		CoverLetter:    "I have three summers of beach bar experience.",
		JobTitle:       "Beach Bartender",
		JobCategory:    "bar",
		ApplicantName:  "Iris Novak",
		ApplicantEmail: "iris@example.com",
		SubmittedAt:    submitted,
	}
}

func repositories(t *testing.T) map[string]application.Repository {
	t.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return map[string]application.Repository{
		"memory": NewMemoryApplicationRepository(),
		"sqlite": NewSQLApplicationRepository(db),
	}
}

func TestRepositoryContract(t *testing.T) {
	base := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := repo.Create(ctx, sampleApplication("a1", "j1", "u1", base)); err != nil {
				t.Fatalf("create a1: %v", err)
			}
			if err := repo.Create(ctx, sampleApplication("a2", "j2", "u1", base.Add(time.Hour))); err != nil {
				t.Fatalf("create a2: %v", err)
			}
			if err := repo.Create(ctx, sampleApplication("a3", "j1", "u1", base)); !errx.IsCode(err, application.CodeAlreadyApplied) {
				t.Fatalf("expected duplicate, got %v", err)
			}

			exists, err := repo.ExistsByJobAndApplicant(ctx, "j1", "u1")
			if err != nil || !exists {
				t.Fatalf("exists = %v, %v", exists, err)
			}
			exists, _ = repo.ExistsByJobAndApplicant(ctx, "j1", "u2")
			if exists {
				t.Fatal("unexpected application for u2")
			}

			got, err := repo.GetByID(ctx, "a1")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Note != nil || got.UpdatedAt != nil {
				t.Fatalf("optional fields should be empty: %+v", got)
			}
			note := "call back Monday"
			got.SetStatus(application.ApplicationStatusShortlisted, &note, base.Add(2*time.Hour))
			if err := repo.Update(ctx, "a1", got); err != nil {
				t.Fatalf("update: %v", err)
			}
			again, _ := repo.GetByID(ctx, "a1")
			if again.Status != application.ApplicationStatusShortlisted || again.Note == nil || *again.Note != note {
				t.Fatalf("update not persisted: %+v", again)
			}
			if again.UpdatedAt == nil || !again.UpdatedAt.Equal(base.Add(2*time.Hour)) {
				t.Fatalf("updated at = %v", again.UpdatedAt)
			}

			all, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(all) != 2 || all[0].ID != "a1" || all[1].ID != "a2" {
				t.Fatalf("list order = %v", all)
			}

			if err := repo.Delete(ctx, "a1"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := repo.Delete(ctx, "a1"); !errx.IsCode(err, application.CodeApplicationNotFound) {
				t.Fatalf("second delete: %v", err)
			}
			if exists, _ := repo.ExistsByJobAndApplicant(ctx, "j1", "u1"); exists {
				t.Fatal("pair still registered after delete")
			}
			if err := repo.Create(ctx, sampleApplication("a4", "j1", "u1", base.Add(3*time.Hour))); err != nil {
				t.Fatalf("re-apply after withdraw: %v", err)
			}
		})
	}
}

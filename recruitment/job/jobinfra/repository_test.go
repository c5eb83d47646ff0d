package jobinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/shiftboard/internal/database"
	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

func sampleJob(id string, created time.Time) *job.Job {
	return &job.Job{
		ID:        kernel.JobID(id),
		Title:     "Line Cook",
		Employer:  "Harbour Hotel",
		Location:  "Lisbon",
		Category:  "kitchen",
		Type:      job.JobTypeSeasonal,
		Salary:    kernel.SalaryRange{Min: 1200, Max: 1400, Currency: "EUR", Period: kernel.SalaryPeriodMonth},
		Deadline:  created.Add(30 * 24 * time.Hour),
		Status:    job.JobStatusActive,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func repositories(t *testing.T) map[string]job.Repository {
	t.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return map[string]job.Repository{
		"memory": NewMemoryJobRepository(),
		"sqlite": NewSQLJobRepository(db),
	}
}

func TestRepositoryContract(t *testing.T) {
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i, id := range []string{"j1", "j2", "j3"} {
				if err := repo.Create(ctx, sampleJob(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
					t.Fatalf("create %s: %v", id, err)
				}
			}
			if err := repo.Create(ctx, sampleJob("j1", base)); !errx.IsCode(err, job.CodeJobAlreadyExists) {
				t.Fatalf("expected already exists, got %v", err)
			}

			all, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(all) != 3 || all[0].ID != "j1" || all[2].ID != "j3" {
				t.Fatalf("unexpected order %+v", all)
			}

			got, err := repo.GetByID(ctx, "j2")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Salary.Currency != "EUR" || !got.Deadline.Equal(base.Add(time.Hour+30*24*time.Hour)) {
				t.Fatalf("round trip lost data: %+v", got)
			}

			got.Status = job.JobStatusPaused
			if err := repo.Update(ctx, "j2", got); err != nil {
				t.Fatalf("update: %v", err)
			}
			if err := repo.AdjustApplicationCount(ctx, "j2", 2); err != nil {
				t.Fatalf("adjust: %v", err)
			}
			if err := repo.AdjustApplicationCount(ctx, "j2", -5); err != nil {
				t.Fatalf("adjust: %v", err)
			}
			got, _ = repo.GetByID(ctx, "j2")
			if got.Status != job.JobStatusPaused || got.ApplicationCount != 0 {
				t.Fatalf("unexpected job %+v", got)
			}

			if err := repo.Delete(ctx, "j2"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := repo.GetByID(ctx, "j2"); !errx.IsCode(err, job.CodeJobNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
			if err := repo.Delete(ctx, "j2"); !errx.IsCode(err, job.CodeJobNotFound) {
				t.Fatalf("expected not found on second delete, got %v", err)
			}
		})
	}
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository(*sampleJob("j1", time.Now()))
	got, _ := repo.GetByID(ctx, "j1")
	got.Title = "changed"
	again, _ := repo.GetByID(ctx, "j1")
	if again.Title == "changed" {
		t.Fatal("repository exposed internal state")
	}
}

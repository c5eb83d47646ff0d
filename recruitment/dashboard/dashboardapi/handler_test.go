package dashboardapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/fiberx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountinfra"
	"github.com/Abraxas-365/shiftboard/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/shiftboard/recruitment/dashboard"
	"github.com/Abraxas-365/shiftboard/recruitment/dashboard/dashboardsrv"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
	"github.com/Abraxas-365/shiftboard/recruitment/job/jobinfra"
)

func TestDashboardNeedsAdmin(t *testing.T) {
	tokens := auth.NewJWTService("test-secret", time.Hour, "shiftboard")
	svc := dashboardsrv.NewDashboardService(
		jobinfra.NewMemoryJobRepository(job.Job{ID: "j1", Status: job.JobStatusPaused}),
		applicationinfra.NewMemoryApplicationRepository(),
		accountinfra.NewMemoryAccountRepository(),
	)
	app := fiberx.NewApp("test")
	RegisterRoutes(app, NewHandlers(svc), auth.NewTokenMiddleware(tokens))

	student, _ := tokens.GenerateAccessToken(kernel.UserID("s1"), "s1@x.io", auth.RoleStudent)
	admin, _ := tokens.GenerateAccessToken(kernel.UserID("a1"), "a1@x.io", auth.RoleAdmin)

	get := func(token string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		return resp
	}

	if resp := get(""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", resp.StatusCode)
	}
	if resp := get(student); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("student status = %d", resp.StatusCode)
	}

	resp := get(admin)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin status = %d", resp.StatusCode)
	}
	var overview dashboard.Overview
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if overview.TotalJobs != 1 {
		t.Fatalf("overview = %+v", overview)
	}
}

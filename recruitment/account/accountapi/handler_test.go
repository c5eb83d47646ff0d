package accountapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/fiberx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountinfra"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountsrv"
)

type testServer struct {
	app    *fiber.App
	tokens *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	seed := []account.UserAccount{
		{ID: "admin-1", FirstName: "Ada", LastName: "Admin", Email: "ada@board.io", Role: auth.RoleAdmin},
	}
	tokens := auth.NewJWTService("test-secret", time.Hour, "shiftboard")
	svc := accountsrv.NewAccountService(accountinfra.NewMemoryAccountRepository(seed...), tokens)

	app := fiberx.NewApp("test")
	RegisterRoutes(app, NewHandlers(svc), auth.NewTokenMiddleware(tokens))
	return &testServer{app: app, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestRegisterLoginAndProfile(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/register", "",
		`{"first_name":"Noa","last_name":"Levi","email":"noa@example.com","password":"sea-breeze-42"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	registered := decode[account.AuthResponse](t, resp)
	if registered.TokenType != "Bearer" || registered.AccessToken == "" {
		t.Fatalf("unexpected auth response %+v", registered)
	}

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"noa@example.com","password":"nope-nope"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", resp.StatusCode)
	}
	resp = s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"noa@example.com","password":"sea-breeze-42"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	token := decode[account.AuthResponse](t, resp).AccessToken

	if resp := s.do(t, http.MethodGet, "/api/auth/me", "", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous me status = %d", resp.StatusCode)
	}

	resp = s.do(t, http.MethodPut, "/api/auth/me", token, `{"location":"Eilat","skills":["diving","reception"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	me := decode[account.UserResponse](t, resp)
	if me.ProfileCompletion != 60 || len(me.Skills) != 2 {
		t.Fatalf("unexpected profile %+v", me)
	}
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.tokens.GenerateAccessToken("admin-1", "ada@board.io", auth.RoleAdmin)

	resp := s.do(t, http.MethodPost, "/api/auth/register", "",
		`{"first_name":"Noa","last_name":"Levi","email":"noa@example.com","password":"sea-breeze-42"}`)
	registered := decode[account.AuthResponse](t, resp)

	if resp := s.do(t, http.MethodGet, "/api/users", registered.AccessToken, ""); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("student list status = %d", resp.StatusCode)
	}

	resp = s.do(t, http.MethodGet, "/api/users?role=student", admin, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin list status = %d", resp.StatusCode)
	}
	page := decode[account.PaginatedUsersResponse](t, resp)
	if page.Page.Total != 1 || page.Items[0].Email != "noa@example.com" {
		t.Fatalf("unexpected page %+v", page.Paginated)
	}

	resp = s.do(t, http.MethodPatch, "/api/users/"+registered.User.ID.String()+"/role", admin, `{"role":"admin"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("promote status = %d", resp.StatusCode)
	}
	if got := decode[account.UserResponse](t, resp); got.Role != auth.RoleAdmin {
		t.Fatalf("role = %s", got.Role)
	}

	resp = s.do(t, http.MethodPatch, "/api/users/admin-1/role", admin, `{"role":"student"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("self demotion status = %d", resp.StatusCode)
	}
}

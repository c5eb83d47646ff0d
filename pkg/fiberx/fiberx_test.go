package fiberx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

func TestErrorHandlerRendersErrx(t *testing.T) {
	reg := errx.NewRegistry("TESTFX")
	code := reg.Register("GONE", errx.TypeNotFound, http.StatusNotFound, "Gone")

	app := NewApp("test")
	app.Get("/x", func(c *fiber.Ctx) error {
		return errx.Wrap(reg.New(code), "lookup failed", errx.TypeInternal)
	})
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["code"] != "TESTFX.GONE" {
		t.Fatalf("body = %v", body)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestParsePaginationAndFilter(t *testing.T) {
	app := NewApp("test")
	var opts kernel.PaginationOptions
	var fields []string
	var search string
	app.Get("/list", func(c *fiber.Ctx) error {
		opts = ParsePagination(c, 9)
		f := ParseFilter(c, []string{"status"})
		search = f.Search
		fields = f.Selections["status"]
		return c.SendStatus(http.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/list?page=abc&page_size=500&search=bar&status=active&status=paused", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if opts.Page != 1 || opts.PageSize != kernel.MaxPageSize {
		t.Fatalf("opts = %+v", opts)
	}
	if search != "bar" || len(fields) != 2 {
		t.Fatalf("search=%q fields=%v", search, fields)
	}
}

// Package fiberx holds the HTTP plumbing shared by every API package
package fiberx

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/pkg/logx"
)

// NewApp creates a fiber app that renders errors with ErrorHandler
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})
}

// ErrorHandler converts internal errors to standard HTTP responses
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	var e *errx.Error
	if errors.As(err, &e) {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Error("request failed", "path", c.Path(), "code", e.Code, "err", err)
		}
		return c.Status(errx.HTTPStatus(e)).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}

// ParsePagination reads page and page_size. Malformed values fall back to defaults.
func ParsePagination(c *fiber.Ctx, defaultSize int) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultSize)))
	return kernel.PaginationOptions{Page: page, PageSize: size}.Normalize(defaultSize)
}

// ParseFilter reads the search text and the given filter fields from the query string
func ParseFilter(c *fiber.Ctx, fields []string) listx.FilterState {
	return listx.FromRawQuery(string(c.Request().URI().QueryString()), fields)
}

// Invalid builds a validation error for a malformed request body
func Invalid(err error) *errx.Error {
	return errx.New("Invalid request body", errx.TypeValidation).WithCause(err)
}

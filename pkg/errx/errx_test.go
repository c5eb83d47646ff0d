package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

var testRegistry = NewRegistry("TEST")

var (
	codeMissing = testRegistry.Register("MISSING", TypeNotFound, http.StatusNotFound, "thing not found")
	codeBroken  = testRegistry.Register("BROKEN", TypeBusiness, http.StatusBadRequest, "thing is broken")
)

func TestRegistryNew(t *testing.T) {
	err := testRegistry.New(codeMissing).WithDetail("id", "42")
	if err.Code != "TEST.MISSING" {
		t.Fatalf("unexpected code %s", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected status %d", err.HTTPStatus)
	}
	if err.Details["id"] != "42" {
		t.Fatalf("detail not attached: %v", err.Details)
	}
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", testRegistry.New(codeMissing).WithDetail("id", "1"))
	if !errors.Is(wrapped, testRegistry.New(codeMissing)) {
		t.Fatal("expected errors.Is to match on code")
	}
	if errors.Is(wrapped, testRegistry.New(codeBroken)) {
		t.Fatal("different codes must not match")
	}
}

func TestWrapKeepsRegisteredCode(t *testing.T) {
	inner := testRegistry.New(codeBroken)
	err := Wrap(inner, "while saving", TypeInternal)
	if err.Code != codeBroken || err.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("wrap lost code/status: %s %d", err.Code, err.HTTPStatus)
	}
	if !IsCode(err, codeBroken) {
		t.Fatal("IsCode should see the wrapped code")
	}
}

func TestWrapPlainError(t *testing.T) {
	err := Wrap(errors.New("boom"), "failed", TypeInternal)
	if HTTPStatus(err) != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", HTTPStatus(err))
	}
	if err.Type != TypeInternal {
		t.Fatalf("unexpected type %s", err.Type)
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	r := NewRegistry("DUP")
	r.Register("X", TypeInternal, 500, "x")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate code")
		}
	}()
	r.Register("X", TypeInternal, 500, "x")
}

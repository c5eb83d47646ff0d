package account

import (
	"net/http"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("ACCOUNT")

// Error codes
var (
	CodeAccountNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Account not found")
	CodeEmailAlreadyExists = ErrRegistry.Register("EMAIL_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Email already registered")
	CodeInvalidRole        = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Invalid account role")
	CodeSelfRoleChange     = ErrRegistry.Register("SELF_ROLE_CHANGE", errx.TypeBusiness, http.StatusConflict, "Administrators cannot change their own role")
)

// Helper functions
func ErrAccountNotFound() *errx.Error {
	return ErrRegistry.New(CodeAccountNotFound)
}

func ErrEmailAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyExists)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}

func ErrSelfRoleChange() *errx.Error {
	return ErrRegistry.New(CodeSelfRoleChange)
}

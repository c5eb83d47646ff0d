package session

import (
	"net/http"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SESSION")

var (
	CodeSessionNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Session not found")
	CodeReservedAction   = ErrRegistry.Register("RESERVED_ACTION", errx.TypeValidation, http.StatusBadRequest, "Action can only be issued by the server")
	CodeSessionCorrupted = ErrRegistry.Register("CORRUPTED", errx.TypeInternal, http.StatusInternalServerError, "Stored session could not be decoded")
)

func ErrSessionNotFound() *errx.Error {
	return ErrRegistry.New(CodeSessionNotFound)
}

func ErrReservedAction() *errx.Error {
	return ErrRegistry.New(CodeReservedAction)
}

func ErrSessionCorrupted() *errx.Error {
	return ErrRegistry.New(CodeSessionCorrupted)
}

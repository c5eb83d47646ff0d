package job

import (
	"net/http"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job already exists")
	CodeJobHasApplications = ErrRegistry.Register("HAS_APPLICATIONS", errx.TypeBusiness, http.StatusConflict, "Cannot delete job with applications")
	CodeJobNotAccepting    = ErrRegistry.Register("NOT_ACCEPTING", errx.TypeBusiness, http.StatusConflict, "Job is not accepting applications")
	CodeDeadlinePassed     = ErrRegistry.Register("DEADLINE_PASSED", errx.TypeBusiness, http.StatusConflict, "Application deadline has passed")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrJobHasApplications() *errx.Error {
	return ErrRegistry.New(CodeJobHasApplications)
}

func ErrJobNotAccepting() *errx.Error {
	return ErrRegistry.New(CodeJobNotAccepting)
}

func ErrDeadlinePassed() *errx.Error {
	return ErrRegistry.New(CodeDeadlinePassed)
}

package application

import "github.com/Abraxas-365/shiftboard/pkg/statusx"

// Statuses lists the pipeline in review order
var Statuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusShortlisted,
	ApplicationStatusInterview,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
}

// NewMachine returns the application status rules running in mode. Strict mode
// only moves forward: pending -> shortlisted -> interview -> approved, with
// rejection possible from any open stage.
func NewMachine(mode statusx.Mode) *statusx.Machine[ApplicationStatus] {
	return statusx.NewMachine("application", Statuses...).
		Allow(ApplicationStatusPending, ApplicationStatusShortlisted, ApplicationStatusRejected).
		Allow(ApplicationStatusShortlisted, ApplicationStatusInterview, ApplicationStatusRejected).
		Allow(ApplicationStatusInterview, ApplicationStatusApproved, ApplicationStatusRejected).
		WithMode(mode)
}

var Palette = statusx.Palette[ApplicationStatus]{
	ApplicationStatusPending:     {Color: "amber", Icon: "clock", Label: "Pending"},
	ApplicationStatusShortlisted: {Color: "blue", Icon: "star", Label: "Shortlisted"},
	ApplicationStatusInterview:   {Color: "purple", Icon: "calendar", Label: "Interview"},
	ApplicationStatusApproved:    {Color: "green", Icon: "check-circle", Label: "Approved"},
	ApplicationStatusRejected:    {Color: "red", Icon: "x-circle", Label: "Rejected"},
}

package job

import "github.com/Abraxas-365/shiftboard/pkg/statusx"

// Statuses lists every job status in lifecycle order
var Statuses = []JobStatus{JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed}

// NewMachine returns the job status rules running in mode
func NewMachine(mode statusx.Mode) *statusx.Machine[JobStatus] {
	return statusx.NewMachine("job", Statuses...).
		Allow(JobStatusDraft, JobStatusActive, JobStatusClosed).
		Allow(JobStatusActive, JobStatusPaused, JobStatusClosed).
		Allow(JobStatusPaused, JobStatusActive, JobStatusClosed).
		WithMode(mode)
}

var Palette = statusx.Palette[JobStatus]{
	JobStatusActive: {Color: "green", Icon: "check-circle", Label: "Active"},
	JobStatusDraft:  {Color: "gray", Icon: "pencil", Label: "Draft"},
	JobStatusPaused: {Color: "amber", Icon: "pause-circle", Label: "Paused"},
	JobStatusClosed: {Color: "red", Icon: "x-circle", Label: "Closed"},
}

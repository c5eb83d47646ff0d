package application

import "github.com/Abraxas-365/shiftboard/pkg/listx"

// Filter keys accepted by application list views
const (
	FieldStatus      = "status"
	FieldJobID       = "job_id"
	FieldApplicantID = "applicant_id"
	FieldCategory    = "category"
)

// Schema searches job title, applicant name, applicant email and the reviewer note
var Schema = listx.Schema[Application]{
	Search: []func(Application) string{
		func(a Application) string { return string(a.JobTitle) },
		func(a Application) string { return a.ApplicantName },
		func(a Application) string { return string(a.ApplicantEmail) },
		func(a Application) string {
			if a.Note == nil {
				return ""
			}
			return *a.Note
		},
	},
	Fields: map[string]listx.Accessor[Application]{
		FieldStatus:      func(a Application) (string, bool) { return string(a.Status), a.Status != "" },
		FieldJobID:       func(a Application) (string, bool) { return a.JobID.String(), !a.JobID.IsEmpty() },
		FieldApplicantID: func(a Application) (string, bool) { return a.ApplicantID.String(), !a.ApplicantID.IsEmpty() },
		FieldCategory:    func(a Application) (string, bool) { return string(a.JobCategory), a.JobCategory != "" },
	},
}

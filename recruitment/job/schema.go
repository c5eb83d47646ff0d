package job

import "github.com/Abraxas-365/shiftboard/pkg/listx"

// Filter keys accepted by job list views
const (
	FieldStatus   = "status"
	FieldCategory = "category"
	FieldType     = "type"
	FieldEmployer = "employer"
	FieldLocation = "location"
)

func nonEmpty(s string) (string, bool) { return s, s != "" }

// Schema searches title, employer and location
var Schema = listx.Schema[Job]{
	Search: []func(Job) string{
		func(j Job) string { return string(j.Title) },
		func(j Job) string { return string(j.Employer) },
		func(j Job) string { return string(j.Location) },
	},
	Fields: map[string]listx.Accessor[Job]{
		FieldStatus:   func(j Job) (string, bool) { return nonEmpty(string(j.Status)) },
		FieldCategory: func(j Job) (string, bool) { return nonEmpty(string(j.Category)) },
		FieldType:     func(j Job) (string, bool) { return nonEmpty(string(j.Type)) },
		FieldEmployer: func(j Job) (string, bool) { return nonEmpty(string(j.Employer)) },
		FieldLocation: func(j Job) (string, bool) { return nonEmpty(string(j.Location)) },
	},
}

package kernel

import (
	"fmt"
	"strings"
)

type JobTitle string

type JobDescription string

type EmployerName string

type Location string

type JobCategory string

type Email string

// Normalize lower-cases and trims the address
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

type Phone string

type FirstName string

type LastName string

type BucketURL string

// SalaryPeriod is the unit a salary range is quoted in
type SalaryPeriod string

const (
	SalaryPeriodHour  SalaryPeriod = "hour"
	SalaryPeriodMonth SalaryPeriod = "month"
	SalaryPeriodYear  SalaryPeriod = "year"
)

// SalaryRange is the advertised pay of a posting
type SalaryRange struct {
	Min      int          `json:"min" db:"salary_min" validate:"gte=0"`
	Max      int          `json:"max" db:"salary_max" validate:"gtefield=Min"`
	Currency string       `json:"currency" db:"salary_currency" validate:"omitempty,len=3"`
	Period   SalaryPeriod `json:"period" db:"salary_period" validate:"omitempty,oneof=hour month year"`
}

// IsZero reports whether no salary was advertised
func (s SalaryRange) IsZero() bool {
	return s.Min == 0 && s.Max == 0
}

// String renders the range the way listings show it, e.g. "1200-1500 EUR/month"
func (s SalaryRange) String() string {
	if s.IsZero() {
		return ""
	}
	out := fmt.Sprintf("%d-%d", s.Min, s.Max)
	if s.Min == s.Max {
		out = fmt.Sprintf("%d", s.Min)
	}
	if s.Currency != "" {
		out += " " + s.Currency
	}
	if s.Period != "" {
		out += "/" + string(s.Period)
	}
	return out
}

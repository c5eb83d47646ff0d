package account

import (
	"math"
	"strings"
)

// ProfileCheck is one item of the profile checklist shown to job seekers
type ProfileCheck struct {
	Name string
	// StudentOnly checks are not applicable to administrators
	StudentOnly bool
	Done        func(u *UserAccount) bool
}

// ProfileChecks is the checklist, each item worth a fifth of the naive score
var ProfileChecks = []ProfileCheck{
	{Name: "name", Done: func(u *UserAccount) bool {
		return strings.TrimSpace(string(u.FirstName)) != "" && strings.TrimSpace(string(u.LastName)) != ""
	}},
	{Name: "phone", Done: func(u *UserAccount) bool { return strings.TrimSpace(string(u.Phone)) != "" }},
	{Name: "location", Done: func(u *UserAccount) bool { return strings.TrimSpace(string(u.Location)) != "" }},
	{Name: "skills", StudentOnly: true, Done: func(u *UserAccount) bool { return len(u.Skills) > 0 }},
	{Name: "resume", StudentOnly: true, Done: (*UserAccount).HasResume},
}

const naiveCheckWeight = 20

// NaiveProfileCompletion sums 20 points per satisfied check over the whole
// checklist, whether or not the check applies to the account's role. An
// admin with every applicable field filled in scores 60.
func NaiveProfileCompletion(u *UserAccount) int {
	score := 0
	for _, c := range ProfileChecks {
		if c.Done(u) {
			score += naiveCheckWeight
		}
	}
	return score
}

// ProfileCompletion is the percentage of applicable checks satisfied, rounded
// to the nearest integer. An account with no applicable checks is complete.
func ProfileCompletion(u *UserAccount) int {
	applicable, satisfied := 0, 0
	for _, c := range ProfileChecks {
		if c.StudentOnly && u.IsAdmin() {
			continue
		}
		applicable++
		if c.Done(u) {
			satisfied++
		}
	}
	if applicable == 0 {
		return 100
	}
	return int(math.Round(100 * float64(satisfied) / float64(applicable)))
}

// MissingProfileChecks names the applicable checks not yet satisfied
func MissingProfileChecks(u *UserAccount) []string {
	var missing []string
	for _, c := range ProfileChecks {
		if c.StudentOnly && u.IsAdmin() {
			continue
		}
		if !c.Done(u) {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

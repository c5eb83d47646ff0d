// Package dashboard aggregates the admin overview of the board
package dashboard

import (
	"github.com/Abraxas-365/shiftboard/pkg/statusx"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
)

// RecentLimit is how many applications the overview lists
const RecentLimit = 5

// Count is the number of records sharing one key
type Count struct {
	Key     string         `json:"key"`
	Count   int            `json:"count"`
	Display *statusx.Style `json:"display,omitempty"`
}

// Overview - DTO for the admin dashboard
type Overview struct {
	TotalJobs            int                               `json:"total_jobs"`
	TotalApplications    int                               `json:"total_applications"`
	TotalUsers           int                               `json:"total_users"`
	JobsByStatus         []Count                           `json:"jobs_by_status"`
	ApplicationsByStatus []Count                           `json:"applications_by_status"`
	UsersByRole          []Count                           `json:"users_by_role"`
	RecentApplications   []application.ApplicationResponse `json:"recent_applications"`
}

// Tally counts values under the given keys, in key order. Keys with no
// records are reported as zero; values outside keys are dropped.
func Tally[K ~string](keys []K, values []K) []Count {
	index := make(map[K]int, len(keys))
	out := make([]Count, len(keys))
	for i, k := range keys {
		index[k] = i
		out[i] = Count{Key: string(k)}
	}
	for _, v := range values {
		if i, ok := index[v]; ok {
			out[i].Count++
		}
	}
	return out
}

// WithPalette attaches the display style of each key
func WithPalette[S ~string](counts []Count, palette statusx.Palette[S]) []Count {
	for i := range counts {
		style := palette.Style(S(counts[i].Key))
		counts[i].Display = &style
	}
	return counts
}

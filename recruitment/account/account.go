package account

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

// UserAccount is a registered job seeker or administrator
type UserAccount struct {
	ID           kernel.UserID    `db:"id" json:"id"`
	FirstName    kernel.FirstName `db:"first_name" json:"first_name" validate:"required,max=60"`
	LastName     kernel.LastName  `db:"last_name" json:"last_name" validate:"required,max=60"`
	Email        kernel.Email     `db:"email" json:"email" validate:"required,email"`
	Phone        kernel.Phone     `db:"phone" json:"phone,omitempty" validate:"omitempty,max=32"`
	Location     kernel.Location  `db:"location" json:"location,omitempty"`
	Bio          string           `db:"bio" json:"bio,omitempty" validate:"max=2000"`
	Skills       []string         `db:"skills" json:"skills,omitempty" validate:"dive,required,max=40"`
	ResumeURL    string           `db:"resume_url" json:"resume_url,omitempty" validate:"omitempty,url"`
	PasswordHash string           `db:"password_hash" json:"-"`
	Role         auth.Role        `db:"role" json:"role" validate:"required,oneof=student admin"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// FullName returns "First Last"
func (u *UserAccount) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", u.FirstName, u.LastName))
}

// IsAdmin checks if the account administers the board
func (u *UserAccount) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}

// HasResume checks if a resume has been linked
func (u *UserAccount) HasResume() bool {
	return strings.TrimSpace(u.ResumeURL) != ""
}

// UpdateProfile applies the non-nil fields of req. Reports whether anything changed.
func (u *UserAccount) UpdateProfile(req UpdateProfileRequest, now time.Time) bool {
	changed := false
	if req.FirstName != nil && *req.FirstName != u.FirstName {
		u.FirstName = *req.FirstName
		changed = true
	}
	if req.LastName != nil && *req.LastName != u.LastName {
		u.LastName = *req.LastName
		changed = true
	}
	if req.Phone != nil && *req.Phone != u.Phone {
		u.Phone = *req.Phone
		changed = true
	}
	if req.Location != nil && *req.Location != u.Location {
		u.Location = *req.Location
		changed = true
	}
	if req.Bio != nil && *req.Bio != u.Bio {
		u.Bio = *req.Bio
		changed = true
	}
	if req.Skills != nil && !slices.Equal(*req.Skills, u.Skills) {
		u.Skills = normalizeSkills(*req.Skills)
		changed = true
	}
	if req.ResumeURL != nil && *req.ResumeURL != u.ResumeURL {
		u.ResumeURL = *req.ResumeURL
		changed = true
	}
	if changed {
		u.UpdatedAt = now
	}
	return changed
}

// ChangeRole assigns a new role
func (u *UserAccount) ChangeRole(role auth.Role, now time.Time) error {
	if !role.IsValid() {
		return ErrInvalidRole().WithDetail("role", string(role))
	}
	u.Role = role
	u.UpdatedAt = now
	return nil
}

// normalizeSkills trims entries and drops blanks and duplicates, keeping order
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

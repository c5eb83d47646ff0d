package account

import (
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
)

// RegisterRequest - DTO for creating a job seeker account
type RegisterRequest struct {
	FirstName kernel.FirstName `json:"first_name" validate:"required,max=60"`
	LastName  kernel.LastName  `json:"last_name" validate:"required,max=60"`
	Email     kernel.Email     `json:"email" validate:"required,email"`
	Password  string           `json:"password" validate:"required"`
	Phone     kernel.Phone     `json:"phone,omitempty" validate:"omitempty,max=32"`
	Location  kernel.Location  `json:"location,omitempty"`
}

// LoginRequest - DTO for exchanging credentials for an access token
type LoginRequest struct {
	Email    kernel.Email `json:"email" validate:"required,email"`
	Password string       `json:"password" validate:"required"`
}

// UpdateProfileRequest - DTO for editing one's own profile
type UpdateProfileRequest struct {
	FirstName *kernel.FirstName `json:"first_name,omitempty" validate:"omitempty,max=60"`
	LastName  *kernel.LastName  `json:"last_name,omitempty" validate:"omitempty,max=60"`
	Phone     *kernel.Phone     `json:"phone,omitempty" validate:"omitempty,max=32"`
	Location  *kernel.Location  `json:"location,omitempty"`
	Bio       *string           `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Skills    *[]string         `json:"skills,omitempty"`
	ResumeURL *string           `json:"resume_url,omitempty" validate:"omitempty,url"`
}

// ChangeRoleRequest - DTO for promoting or demoting an account
type ChangeRoleRequest struct {
	Role auth.Role `json:"role" validate:"required"`
}

// ListUsersRequest - filter and page of the admin user list
type ListUsersRequest struct {
	Filters    listx.FilterState
	Pagination kernel.PaginationOptions
}

// UserResponse - DTO for returning account data
type UserResponse struct {
	ID                kernel.UserID    `json:"id"`
	FirstName         kernel.FirstName `json:"first_name"`
	LastName          kernel.LastName  `json:"last_name"`
	FullName          string           `json:"full_name"`
	Email             kernel.Email     `json:"email"`
	Phone             kernel.Phone     `json:"phone,omitempty"`
	Location          kernel.Location  `json:"location,omitempty"`
	Bio               string           `json:"bio,omitempty"`
	Skills            []string         `json:"skills"`
	ResumeURL         string           `json:"resume_url,omitempty"`
	Role              auth.Role        `json:"role"`
	ProfileCompletion int              `json:"profile_completion"`
	MissingProfile    []string         `json:"missing_profile,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ToResponse converts the entity to its API shape
func (u UserAccount) ToResponse() UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		FullName:          u.FullName(),
		Email:             u.Email,
		Phone:             u.Phone,
		Location:          u.Location,
		Bio:               u.Bio,
		Skills:            skills,
		ResumeURL:         u.ResumeURL,
		Role:              u.Role,
		ProfileCompletion: ProfileCompletion(&u),
		MissingProfile:    MissingProfileChecks(&u),
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// AuthResponse - DTO returned by register and login
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// PaginatedUsersResponse is one page of a filtered user list
type PaginatedUsersResponse struct {
	kernel.Paginated[UserResponse]
	Filters listx.FilterState `json:"filters"`
	Query   string            `json:"query"`
}

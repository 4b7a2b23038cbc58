package user

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxNameLen = 100
	maxRoleLen = 50
)

// User is a registered person records can be assigned to.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput carries the fields accepted when creating a user.
type CreateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// Filter narrows List results; zero values match everything.
type Filter struct {
	Role string
}

// Validate reports field-level problems with a create payload.
func (in CreateInput) Validate() []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name: is required")
	} else if len(in.Name) > maxNameLen {
		errs = append(errs, fmt.Sprintf("name: must be at most %d characters", maxNameLen))
	}
	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, "email: is required")
	} else if !strings.Contains(in.Email, "@") {
		errs = append(errs, "email: must be a valid address")
	}
	if len(in.Role) > maxRoleLen {
		errs = append(errs, fmt.Sprintf("role: must be at most %d characters", maxRoleLen))
	}
	return errs
}

// Validate reports field-level problems with an update payload.
func (in UpdateInput) Validate() []string {
	var errs []string
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			errs = append(errs, "name: must not be empty")
		} else if len(*in.Name) > maxNameLen {
			errs = append(errs, fmt.Sprintf("name: must be at most %d characters", maxNameLen))
		}
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			errs = append(errs, "email: must not be empty")
		} else if !strings.Contains(*in.Email, "@") {
			errs = append(errs, "email: must be a valid address")
		}
	}
	if in.Role != nil && len(*in.Role) > maxRoleLen {
		errs = append(errs, fmt.Sprintf("role: must be at most %d characters", maxRoleLen))
	}
	return errs
}

// Apply copies the non-nil fields of in onto u.
func (in UpdateInput) Apply(u *User) {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
}

// Matches reports whether u passes the filter.
func (f Filter) Matches(u User) bool {
	return f.Role == "" || u.Role == f.Role
}

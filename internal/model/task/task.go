package task

import (
	"fmt"
	"strings"
	"time"
)

// Priority levels accepted for a task item.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
)

// Task is a single work item tracked by the service.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput carries the fields accepted when creating a task.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// Filter narrows List results; zero values match everything.
type Filter struct {
	Priority  string
	Completed *bool
}

// Validate reports field-level problems with a create payload.
func (in CreateInput) Validate() []string {
	var errs []string
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, "title: is required")
	} else if len(in.Title) > maxTitleLen {
		errs = append(errs, fmt.Sprintf("title: must be at most %d characters", maxTitleLen))
	}
	if len(in.Description) > maxDescriptionLen {
		errs = append(errs, fmt.Sprintf("description: must be at most %d characters", maxDescriptionLen))
	}
	if in.Priority != "" && !ValidPriority(in.Priority) {
		errs = append(errs, "priority: must be one of low, medium, high")
	}
	return errs
}

// Validate reports field-level problems with an update payload.
func (in UpdateInput) Validate() []string {
	var errs []string
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			errs = append(errs, "title: must not be empty")
		} else if len(*in.Title) > maxTitleLen {
			errs = append(errs, fmt.Sprintf("title: must be at most %d characters", maxTitleLen))
		}
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLen {
		errs = append(errs, fmt.Sprintf("description: must be at most %d characters", maxDescriptionLen))
	}
	if in.Priority != nil && !ValidPriority(*in.Priority) {
		errs = append(errs, "priority: must be one of low, medium, high")
	}
	return errs
}

// ValidPriority reports whether p names a known priority level.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Apply copies the non-nil fields of in onto t.
func (in UpdateInput) Apply(t *Task) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
}

// Matches reports whether t passes the filter.
func (f Filter) Matches(t Task) bool {
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	return true
}

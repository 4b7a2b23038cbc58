package assignment

import (
	"fmt"
	"strings"
	"time"
)

const maxNoteLen = 500

// Assignment links a task item to the user responsible for it.
type Assignment struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	UserID     string    `json:"userId"`
	Note       string    `json:"note,omitempty"`
	AssignedAt time.Time `json:"assignedAt"`
}

// CreateInput carries the fields accepted when creating an assignment.
type CreateInput struct {
	TaskID string `json:"taskId"`
	UserID string `json:"userId"`
	Note   string `json:"note"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	TaskID *string `json:"taskId"`
	UserID *string `json:"userId"`
	Note   *string `json:"note"`
}

// Filter narrows List results; zero values match everything.
type Filter struct {
	TaskID string
	UserID string
}

// Validate reports field-level problems with a create payload.
func (in CreateInput) Validate() []string {
	var errs []string
	if strings.TrimSpace(in.TaskID) == "" {
		errs = append(errs, "taskId: is required")
	}
	if strings.TrimSpace(in.UserID) == "" {
		errs = append(errs, "userId: is required")
	}
	if len(in.Note) > maxNoteLen {
		errs = append(errs, fmt.Sprintf("note: must be at most %d characters", maxNoteLen))
	}
	return errs
}

// Validate reports field-level problems with an update payload.
func (in UpdateInput) Validate() []string {
	var errs []string
	if in.TaskID != nil && strings.TrimSpace(*in.TaskID) == "" {
		errs = append(errs, "taskId: must not be empty")
	}
	if in.UserID != nil && strings.TrimSpace(*in.UserID) == "" {
		errs = append(errs, "userId: must not be empty")
	}
	if in.Note != nil && len(*in.Note) > maxNoteLen {
		errs = append(errs, fmt.Sprintf("note: must be at most %d characters", maxNoteLen))
	}
	return errs
}

// Apply copies the non-nil fields of in onto a.
func (in UpdateInput) Apply(a *Assignment) {
	if in.TaskID != nil {
		a.TaskID = *in.TaskID
	}
	if in.UserID != nil {
		a.UserID = *in.UserID
	}
	if in.Note != nil {
		a.Note = *in.Note
	}
}

// Matches reports whether a passes the filter.
func (f Filter) Matches(a Assignment) bool {
	if f.TaskID != "" && a.TaskID != f.TaskID {
		return false
	}
	if f.UserID != "" && a.UserID != f.UserID {
		return false
	}
	return true
}

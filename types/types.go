package types

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

// Course is a single Canvas course as returned by the courses endpoints.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

// Student is one enrolled user of a course. SortableName is the
// "Last, First" form Canvas maintains alongside the display name.
type Student struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	SortableName string      `json:"sortable_name"`
	Email        null.String `json:"email"`
}

// LastFirst splits the sortable name into its last and first parts.
// A name without a comma comes back whole in last with an empty first.
func (s *Student) LastFirst() (last, first string) {
	last, first, _ = strings.Cut(s.SortableName, ", ")
	return last, first
}

// Assignment is a single Canvas assignment.
type Assignment struct {
	ID             int64   `json:"id"`
	CourseID       int64   `json:"course_id"`
	Name           string  `json:"name"`
	PointsPossible float64 `json:"points_possible"`
}

// Attachment is one uploaded file attached to a submission.
type Attachment struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	ContentType string `json:"content-type"`
	URL         string `json:"url"`
}

// Submission is one student's turned-in work for one assignment.
// Grade, Score, and URL are null when Canvas has nothing for them,
// so callers check presence explicitly instead of probing attributes.
type Submission struct {
	ID                            int64         `json:"id"`
	AssignmentID                  int64         `json:"assignment_id"`
	UserID                        int64         `json:"user_id"`
	Attachments                   []*Attachment `json:"attachments"`
	URL                           null.String   `json:"url"`
	Grade                         null.String   `json:"grade"`
	Score                         null.Float64  `json:"score"`
	GradeMatchesCurrentSubmission bool          `json:"grade_matches_current_submission"`
	WorkflowState                 string        `json:"workflow_state"`
	Late                          bool          `json:"late"`
}

// HasAttachments reports whether the submission carries at least one
// uploaded file.
func (s *Submission) HasAttachments() bool {
	return len(s.Attachments) > 0
}

// Ungraded reports whether no grade has been posted for the submission.
func (s *Submission) Ungraded() bool {
	return !s.Grade.Valid
}

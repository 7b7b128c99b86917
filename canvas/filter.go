package canvas

import "github.com/gradetools/canvasnb/types"

// Filter narrows a list of submissions. Filters are pure and compose by
// sequential application; ordering only affects how much work later
// filters see, never the result.
type Filter func([]*types.Submission) []*types.Submission

// HasAttachments keeps submissions carrying at least one attachment.
func HasAttachments(subs []*types.Submission) []*types.Submission {
	return keep(subs, func(s *types.Submission) bool {
		return s.HasAttachments()
	})
}

// HasURL keeps submissions with a direct URL.
func HasURL(subs []*types.Submission) []*types.Submission {
	return keep(subs, func(s *types.Submission) bool {
		return s.URL.Valid
	})
}

// HasAttachmentOrURL keeps submissions with either an attachment or a
// direct URL.
func HasAttachmentOrURL(subs []*types.Submission) []*types.Submission {
	return keep(subs, func(s *types.Submission) bool {
		return s.HasAttachments() || s.URL.Valid
	})
}

// Ungraded keeps submissions with no posted grade.
func Ungraded(subs []*types.Submission) []*types.Submission {
	return keep(subs, func(s *types.Submission) bool {
		return s.Ungraded()
	})
}

// UnmatchingGrade keeps submissions whose posted grade no longer
// matches the current submission (resubmissions).
func UnmatchingGrade(subs []*types.Submission) []*types.Submission {
	return keep(subs, func(s *types.Submission) bool {
		return !s.GradeMatchesCurrentSubmission
	})
}

// UngradedOrUnmatching keeps submissions that are ungraded or have been
// resubmitted since grading.
func UngradedOrUnmatching(subs []*types.Submission) []*types.Submission {
	return keep(subs, func(s *types.Submission) bool {
		return s.Ungraded() || !s.GradeMatchesCurrentSubmission
	})
}

// FromUser builds a filter keeping only one user's submissions.
func FromUser(userID int64) Filter {
	return func(subs []*types.Submission) []*types.Submission {
		return keep(subs, func(s *types.Submission) bool {
			return s.UserID == userID
		})
	}
}

// AttachmentURLs returns the first attachment URL of each submission,
// in submission order.
func AttachmentURLs(subs []*types.Submission) []string {
	urls := make([]string, len(subs))
	for i, s := range subs {
		urls[i] = s.Attachments[0].URL
	}
	return urls
}

func keep(subs []*types.Submission, pred func(*types.Submission) bool) []*types.Submission {
	var out []*types.Submission
	for _, s := range subs {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

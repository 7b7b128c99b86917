package canvas

import (
	"reflect"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/gradetools/canvasnb/types"
)

func sub(id int64, mods ...func(*types.Submission)) *types.Submission {
	s := &types.Submission{UserID: id, GradeMatchesCurrentSubmission: true}
	for _, mod := range mods {
		mod(s)
	}
	return s
}

func withAttachment(url string) func(*types.Submission) {
	return func(s *types.Submission) {
		s.Attachments = append(s.Attachments, &types.Attachment{URL: url})
	}
}

func withURL(url string) func(*types.Submission) {
	return func(s *types.Submission) { s.URL = null.StringFrom(url) }
}

func withGrade(grade string) func(*types.Submission) {
	return func(s *types.Submission) { s.Grade = null.StringFrom(grade) }
}

func resubmitted(s *types.Submission) {
	s.GradeMatchesCurrentSubmission = false
}

func ids(subs []*types.Submission) []int64 {
	out := make([]int64, len(subs))
	for i, s := range subs {
		out[i] = s.UserID
	}
	return out
}

func TestHasAttachments(t *testing.T) {
	with := sub(1, withAttachment("foo"))
	without := sub(2)

	got := HasAttachments([]*types.Submission{with, without})
	if !reflect.DeepEqual(got, []*types.Submission{with}) {
		t.Errorf("HasAttachments() kept %v, want only submission 1", ids(got))
	}
}

func TestUngraded(t *testing.T) {
	subs := []*types.Submission{
		sub(1, withGrade("ok")),
		sub(2),
		sub(3, withGrade("not ok")),
		sub(4),
	}

	got := Ungraded(subs)
	if !reflect.DeepEqual(ids(got), []int64{2, 4}) {
		t.Errorf("Ungraded() kept %v, want [2 4]", ids(got))
	}
}

func TestHasURL(t *testing.T) {
	with := sub(1, withURL("http://x"))
	without := sub(2)

	got := HasURL([]*types.Submission{with, without})
	if !reflect.DeepEqual(got, []*types.Submission{with}) {
		t.Errorf("HasURL() kept %v, want only submission 1", ids(got))
	}
}

func TestHasAttachmentOrURL(t *testing.T) {
	subs := []*types.Submission{
		sub(1, withAttachment("foo")),
		sub(2, withURL("http://x")),
		sub(3),
	}

	got := HasAttachmentOrURL(subs)
	if !reflect.DeepEqual(ids(got), []int64{1, 2}) {
		t.Errorf("HasAttachmentOrURL() kept %v, want [1 2]", ids(got))
	}
}

func TestUnmatchingGrade(t *testing.T) {
	subs := []*types.Submission{
		sub(1, withGrade("5")),
		sub(2, withGrade("3"), resubmitted),
		sub(3),
	}

	got := UnmatchingGrade(subs)
	if !reflect.DeepEqual(ids(got), []int64{2}) {
		t.Errorf("UnmatchingGrade() kept %v, want [2]", ids(got))
	}
}

func TestUngradedOrUnmatching(t *testing.T) {
	subs := []*types.Submission{
		sub(1, withGrade("5")),
		sub(2, withGrade("3"), resubmitted),
		sub(3),
	}

	got := UngradedOrUnmatching(subs)
	if !reflect.DeepEqual(ids(got), []int64{2, 3}) {
		t.Errorf("UngradedOrUnmatching() kept %v, want [2 3]", ids(got))
	}
}

func TestFromUser(t *testing.T) {
	subs := []*types.Submission{sub(1), sub(2), sub(1)}

	got := FromUser(1)(subs)
	if !reflect.DeepEqual(ids(got), []int64{1, 1}) {
		t.Errorf("FromUser(1) kept %v, want [1 1]", ids(got))
	}
}

func TestFilterComposition(t *testing.T) {
	subs := []*types.Submission{
		sub(1, withAttachment("a")),
		sub(2, withAttachment("b"), withGrade("ok")),
		sub(3),
		sub(4, withAttachment("c")),
	}

	got := HasAttachments(subs)
	for _, f := range []Filter{Ungraded, FromUser(4)} {
		got = f(got)
	}
	if !reflect.DeepEqual(ids(got), []int64{4}) {
		t.Errorf("composed filters kept %v, want [4]", ids(got))
	}
}

func TestAttachmentURLs(t *testing.T) {
	subs := []*types.Submission{
		sub(1, withAttachment("http://a")),
		sub(2, withAttachment("http://b"), withAttachment("http://extra")),
	}

	got := AttachmentURLs(subs)
	if !reflect.DeepEqual(got, []string{"http://a", "http://b"}) {
		t.Errorf("AttachmentURLs() = %v", got)
	}
}

package types

import (
	"encoding/json"
	"testing"
)

func TestLastFirst(t *testing.T) {
	tests := []struct {
		name      string
		sortable  string
		wantLast  string
		wantFirst string
	}{
		{name: "simple", sortable: "Doe, Jane", wantLast: "Doe", wantFirst: "Jane"},
		{name: "spaced parts", sortable: "van Dyke, Mary Ann", wantLast: "van Dyke", wantFirst: "Mary Ann"},
		{name: "no comma", sortable: "Cher", wantLast: "Cher", wantFirst: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Student{SortableName: tt.sortable}
			last, first := s.LastFirst()
			if last != tt.wantLast || first != tt.wantFirst {
				t.Errorf("LastFirst() = %q, %q, want %q, %q", last, first, tt.wantLast, tt.wantFirst)
			}
		})
	}
}

func TestSubmissionDecode(t *testing.T) {
	raw := `{
		"id": 10,
		"assignment_id": 7,
		"user_id": 88,
		"grade": null,
		"url": null,
		"grade_matches_current_submission": true,
		"attachments": [{"id": 2, "url": "https://x/files/2/download"}]
	}`
	var s Submission
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !s.Ungraded() {
		t.Error("null grade should decode as ungraded")
	}
	if s.URL.Valid {
		t.Error("null url should decode as absent")
	}
	if !s.HasAttachments() || s.Attachments[0].URL != "https://x/files/2/download" {
		t.Errorf("attachments decoded as %+v", s.Attachments)
	}
}

package canvas

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"

	"github.com/gradetools/canvasnb/config"
)

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr error
	}{
		{name: "no url", cfg: &config.Config{}, wantErr: ErrConfig},
		{name: "no url hides missing token", cfg: &config.Config{CanvasToken: "bar"}, wantErr: ErrConfig},
		{name: "no token", cfg: &config.Config{CanvasURL: "foo"}, wantErr: ErrToken},
		{name: "ok", cfg: &config.Config{CanvasURL: "foo", CanvasToken: "bar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewClient() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && client == nil {
				t.Error("NewClient() returned nil client without error")
			}
		})
	}
}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(&config.Config{CanvasURL: srv.URL, CanvasToken: "token"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestCoursesPaginated(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id": 3, "name": "Chemistry"}]`)
			return
		}
		next := "http://" + r.Host + "/api/v1/courses?page=2"
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
		fmt.Fprint(w, `[{"id": 1, "name": "Physics"}, {"id": 2, "name": "Biology"}]`)
	})
	client := testClient(t, mux)

	courses, err := client.Courses()
	if err != nil {
		t.Fatalf("Courses() error = %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("Courses() returned %d courses, want 3", len(courses))
	}
	if courses[2].Name != "Chemistry" {
		t.Errorf("last course = %q, want Chemistry", courses[2].Name)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("Authorization = %q, want Bearer token", gotAuth)
	}
}

func TestListCourses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "name": "Physics"}, {"id": 2, "name": "Biology"}]`)
	})
	client := testClient(t, mux)

	var buf bytes.Buffer
	if err := client.ListCourses(&buf); err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	want := "1 Physics\n2 Biology\n"
	if buf.String() != want {
		t.Errorf("ListCourses() output = %q, want %q", buf.String(), want)
	}
}

func TestSubmissionsErrorStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))

	if _, err := client.Submissions(1, 2); err == nil {
		t.Error("Submissions() expected error on 401 response")
	}
}

func TestNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name: "next present",
			header: `<https://x/api/v1/courses?page=1>; rel="current",` +
				`<https://x/api/v1/courses?page=2>; rel="next",` +
				`<https://x/api/v1/courses?page=9>; rel="last"`,
			want: "https://x/api/v1/courses?page=2",
		},
		{
			name:   "last page",
			header: `<https://x/api/v1/courses?page=9>; rel="current"`,
			want:   "",
		},
		{name: "empty", header: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextLink(tt.header); got != tt.want {
				t.Errorf("nextLink() = %q, want %q", got, tt.want)
			}
		})
	}
}

package canvas

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func fetchServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "content of %s", r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSequentialAndConcurrentFetchAgree(t *testing.T) {
	srv := fetchServer(t)

	urls := make([]string, 20)
	for i := range urls {
		urls[i] = fmt.Sprintf("%s/files/%d/download", srv.URL, i)
	}

	sequential, err := Downloads(urls)
	if err != nil {
		t.Fatalf("Downloads() error = %v", err)
	}
	concurrent, err := FetchAll(urls)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}

	if !reflect.DeepEqual(sequential, concurrent) {
		t.Errorf("sequential and concurrent downloads differ:\n%v\n%v", sequential, concurrent)
	}
	for i, body := range concurrent {
		want := fmt.Sprintf("content of /files/%d/download", i)
		if body != want {
			t.Errorf("download %d = %q, want %q", i, body, want)
		}
	}
}

func TestFetchAllEmpty(t *testing.T) {
	got, err := FetchAll(nil)
	if err != nil {
		t.Fatalf("FetchAll(nil) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("FetchAll(nil) = %v, want empty", got)
	}
}

func TestFetchAllAbortsOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "fine")
	}))
	t.Cleanup(srv.Close)

	urls := []string{srv.URL + "/good", srv.URL + "/bad", srv.URL + "/good"}
	if _, err := FetchAll(urls); err == nil {
		t.Error("FetchAll() expected error when one fetch fails")
	}
	if _, err := Downloads(urls); err == nil {
		t.Error("Downloads() expected error when one fetch fails")
	}
}

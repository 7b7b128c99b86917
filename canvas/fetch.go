package canvas

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Downloads fetches every URL in order, one blocking request at a time.
func Downloads(urls []string) ([]string, error) {
	out := make([]string, len(urls))
	for i, u := range urls {
		body, err := fetch(u)
		if err != nil {
			return nil, err
		}
		out[i] = body
	}
	return out, nil
}

// FetchAll fetches every URL concurrently. Results come back in input
// order and are identical to what Downloads would return; the first
// failure aborts the whole batch.
func FetchAll(urls []string) ([]string, error) {
	out := make([]string, len(urls))
	g := new(errgroup.Group)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			body, err := fetch(u)
			out[i] = body
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func fetch(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status from %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", url)
	}
	return string(body), nil
}

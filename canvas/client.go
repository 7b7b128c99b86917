// Package canvas talks to the Canvas LMS REST API: listing courses,
// rosters and submissions, downloading submission attachments, and
// posting grades back.
package canvas

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gradetools/canvasnb/config"
	"github.com/gradetools/canvasnb/types"
)

const apiPrefix = "/api/v1"

// perPage is the page size requested from Canvas list endpoints.
const perPage = 100

var (
	// ErrConfig means the Canvas base URL was not configured.
	ErrConfig = errors.New("canvas_url not defined")

	// ErrToken means the Canvas access token was not configured.
	ErrToken = errors.New("canvas_token not defined")
)

// Client is a connection to one Canvas instance.
type Client struct {
	base  string
	token string
	http  *http.Client
}

// NewClient validates the resolved configuration and returns a client.
// The URL is checked before the token.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.CanvasURL == "" {
		return nil, ErrConfig
	}
	if cfg.CanvasToken == "" {
		return nil, ErrToken
	}
	return &Client{
		base:  strings.TrimRight(cfg.CanvasURL, "/"),
		token: cfg.CanvasToken,
		http:  http.DefaultClient,
	}, nil
}

// getObject fetches a single API object into download.
func (c *Client) getObject(path string, params url.Values, download interface{}) error {
	return c.doRequest("GET", path, params, download)
}

// putObject issues a PUT with params encoded in the query string,
// decoding any response into download when it is non-nil.
func (c *Client) putObject(path string, params url.Values, download interface{}) error {
	return c.doRequest("PUT", path, params, download)
}

func (c *Client) doRequest(method, path string, params url.Values, download interface{}) error {
	if !strings.HasPrefix(path, "/") {
		return errors.Errorf("request path %q must start with /", path)
	}
	resp, err := c.do(method, c.base+apiPrefix+path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if download == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(download); err != nil {
		return errors.Wrapf(err, "decoding response from %s", path)
	}
	return nil
}

// getPaged fetches every page of a list endpoint, handing each page
// body to decode and following Link rel="next" headers.
func (c *Client) getPaged(path string, params url.Values, decode func(io.Reader) error) error {
	if params == nil {
		params = make(url.Values)
	}
	params.Set("per_page", fmt.Sprint(perPage))

	next := c.base + apiPrefix + path
	for next != "" {
		resp, err := c.do("GET", next, params)
		if err != nil {
			return err
		}
		err = decode(resp.Body)
		link := nextLink(resp.Header.Get("Link"))
		resp.Body.Close()
		if err != nil {
			return errors.Wrapf(err, "decoding response from %s", path)
		}
		// the next link already carries the query parameters
		next, params = link, nil
	}
	return nil
}

func (c *Client) do(method, rawurl string, params url.Values) (*http.Response, error) {
	req, err := http.NewRequest(method, rawurl, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating http request")
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Add("Authorization", "Bearer "+c.token)
	req.Header.Add("Accept", "application/json")
	logrus.Debugf("%s %s", method, req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", c.base)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status from %s: %s", req.URL, resp.Status)
	}
	return resp, nil
}

// nextLink extracts the rel="next" URL from an RFC 5988 Link header,
// which is how Canvas communicates pagination.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		if len(fields) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(fields[0]), "<>")
		for _, param := range fields[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return target
			}
		}
	}
	return ""
}

// Courses lists every course visible to the credential.
func (c *Client) Courses() ([]*types.Course, error) {
	var all []*types.Course
	err := c.getPaged("/courses", nil, func(body io.Reader) error {
		var page []*types.Course
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return err
		}
		all = append(all, page...)
		return nil
	})
	return all, err
}

// ListCourses prints an "id name" line per visible course. This is a
// connectivity diagnostic, not used programmatically.
func (c *Client) ListCourses(w io.Writer) error {
	courses, err := c.Courses()
	if err != nil {
		return err
	}
	for _, course := range courses {
		fmt.Fprintf(w, "%d %s\n", course.ID, course.Name)
	}
	return nil
}

// Course fetches one course by ID.
func (c *Client) Course(courseID int64) (*types.Course, error) {
	course := new(types.Course)
	if err := c.getObject(fmt.Sprintf("/courses/%d", courseID), nil, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Students lists the users enrolled in a course as students.
func (c *Client) Students(courseID int64) ([]*types.Student, error) {
	params := make(url.Values)
	params.Add("enrollment_type[]", "student")
	var all []*types.Student
	err := c.getPaged(fmt.Sprintf("/courses/%d/users", courseID), params, func(body io.Reader) error {
		var page []*types.Student
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return err
		}
		all = append(all, page...)
		return nil
	})
	return all, err
}

// Assignment fetches one assignment of a course.
func (c *Client) Assignment(courseID, assignmentID int64) (*types.Assignment, error) {
	asst := new(types.Assignment)
	path := fmt.Sprintf("/courses/%d/assignments/%d", courseID, assignmentID)
	if err := c.getObject(path, nil, asst); err != nil {
		return nil, err
	}
	return asst, nil
}

// Submissions lists every submission for an assignment.
func (c *Client) Submissions(courseID, assignmentID int64) ([]*types.Submission, error) {
	var all []*types.Submission
	path := fmt.Sprintf("/courses/%d/assignments/%d/submissions", courseID, assignmentID)
	err := c.getPaged(path, nil, func(body io.Reader) error {
		var page []*types.Submission
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return err
		}
		all = append(all, page...)
		return nil
	})
	return all, err
}

// Submission fetches one user's current submission for an assignment.
func (c *Client) Submission(courseID, assignmentID, userID int64) (*types.Submission, error) {
	sub := new(types.Submission)
	path := fmt.Sprintf("/courses/%d/assignments/%d/submissions/%d", courseID, assignmentID, userID)
	if err := c.getObject(path, nil, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// EditSubmission updates one user's submission. Params use the Canvas
// form naming, e.g. submission[posted_grade] or comment[text_comment].
func (c *Client) EditSubmission(courseID, assignmentID, userID int64, params url.Values) error {
	path := fmt.Sprintf("/courses/%d/assignments/%d/submissions/%d", courseID, assignmentID, userID)
	return c.putObject(path, params, nil)
}

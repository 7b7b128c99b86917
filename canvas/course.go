package canvas

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gradetools/canvasnb/config"
	"github.com/gradetools/canvasnb/roster"
	"github.com/gradetools/canvasnb/types"
)

const (
	passLabel = "\033[32mPASSED\033[00m"
	failLabel = "\033[31mFAILED\033[00m"
)

var fileIDPattern = regexp.MustCompile(`files/(\d+)/download`)

// Course is the central object of the tool: one Canvas course with its
// roster loaded. Students and Names are populated once at construction
// and never mutated afterward.
type Course struct {
	client   *Client
	course   *types.Course
	Students map[int64]*types.Student
	Names    map[int64]string
}

// CourseOption adjusts course construction.
type CourseOption func(*Course)

// WithTestStudent merges a synthetic student into the roster. Canvas
// test students submit work but are not enrolled as students.
func WithTestStudent(s *types.Student) CourseOption {
	return func(c *Course) {
		c.Students[s.ID] = s
	}
}

// NewCourse connects to Canvas, resolves the configured course, and
// loads its enrolled students.
func NewCourse(cfg *config.Config, opts ...CourseOption) (*Course, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	course, err := client.Course(cfg.CourseID)
	if err != nil {
		return nil, err
	}
	students, err := client.Students(course.ID)
	if err != nil {
		return nil, err
	}

	c := &Course{
		client:   client,
		course:   course,
		Students: make(map[int64]*types.Student, len(students)),
		Names:    make(map[int64]string, len(students)),
	}
	for _, s := range students {
		c.Students[s.ID] = s
	}
	for _, opt := range opts {
		opt(c)
	}
	for id, s := range c.Students {
		c.Names[id] = s.SortableName
	}
	logrus.Debugf("loaded %d students for course %d", len(c.Students), course.ID)
	return c, nil
}

func (c *Course) String() string {
	return c.course.Name
}

// ID returns the Canvas course ID.
func (c *Course) ID() int64 {
	return c.course.ID
}

// Submissions fetches the submissions for one assignment. Nothing is
// cached; every call queries Canvas again.
func (c *Course) Submissions(assignmentID int64) ([]*types.Submission, error) {
	return c.client.Submissions(c.course.ID, assignmentID)
}

// DownloadStudents writes the roster to students.csv for import with
// nbgrader.
func (c *Course) DownloadStudents() error {
	rows := roster.FromStudents(c.studentList())
	if err := roster.ExportCSV("students.csv", rows); err != nil {
		return err
	}
	fmt.Println("Student list saved as students.csv")
	return nil
}

// DownloadStudentsXLSX writes the roster as a spreadsheet.
func (c *Course) DownloadStudentsXLSX() error {
	rows := roster.FromStudents(c.studentList())
	if err := roster.ExportXLSX("students.xlsx", rows); err != nil {
		return err
	}
	fmt.Println("Student list saved as students.xlsx")
	return nil
}

func (c *Course) studentList() []*types.Student {
	students := make([]*types.Student, 0, len(c.Students))
	for _, s := range c.Students {
		students = append(students, s)
	}
	return students
}

// DownloadSubmissionsWithAttachments bundles submission attachments
// into a zip archive the way the Canvas web client does. Submissions
// without attachments are skipped, then each extra filter is applied in
// sequence. All attachment URLs are fetched concurrently and the
// results written to downloaded/<lab>/archive/submissions.zip.
func (c *Course) DownloadSubmissionsWithAttachments(assignmentID int64, lab, nbName string, filters ...Filter) error {
	subs, err := c.Submissions(assignmentID)
	if err != nil {
		return err
	}
	subs = HasAttachments(subs)
	for _, f := range filters {
		subs = f(subs)
	}

	names := make([]string, len(subs))
	for i, s := range subs {
		if names[i], err = c.UniqueFilename(s, nbName); err != nil {
			return err
		}
	}

	start := time.Now()
	downloads, err := FetchAll(AttachmentURLs(subs))
	if err != nil {
		return err
	}
	fmt.Printf("downloads: %.2f\n", time.Since(start).Seconds())

	zipName := fmt.Sprintf("downloaded/%s/archive/submissions.zip", lab)
	if err := os.MkdirAll(filepath.Dir(zipName), 0755); err != nil {
		return errors.Wrap(err, "creating archive directory")
	}
	return WriteArchive(zipName, names, downloads)
}

// UniqueFilename derives the archive entry name for a submission:
// lower-cased "lastfirst" with spaces removed, the user ID, the file ID
// extracted from the attachment URL, and the nbgrader assignment name,
// with an .ipynb suffix guaranteed.
func (c *Course) UniqueFilename(sub *types.Submission, nbName string) (string, error) {
	if !sub.HasAttachments() {
		return "", errors.Errorf("submission for user %d has no attachments", sub.UserID)
	}
	m := fileIDPattern.FindStringSubmatch(sub.Attachments[0].URL)
	if m == nil {
		return "", errors.Errorf("no file id found in attachment url %q", sub.Attachments[0].URL)
	}
	student, ok := c.Students[sub.UserID]
	if !ok {
		return "", errors.Errorf("user %d is not in the course roster", sub.UserID)
	}
	last, first := student.LastFirst()
	lastfirst := strings.ToLower(strings.ReplaceAll(last+first, " ", ""))

	name := fmt.Sprintf("%s_%d_%s_%s", lastfirst, sub.UserID, m[1], nbName)
	if !strings.HasSuffix(name, ".ipynb") {
		name += ".ipynb"
	}
	return name, nil
}

// LMSGrades queries the current grade of every rostered student for
// one assignment.
func (c *Course) LMSGrades(assignmentID int64) (map[int64]string, error) {
	grades := make(map[int64]string, len(c.Students))
	for id := range c.Students {
		sub, err := c.client.Submission(c.course.ID, assignmentID, id)
		if err != nil {
			return nil, err
		}
		grades[id] = sub.Grade.String
	}
	return grades, nil
}

// UpdateToPass marks every submission complete.
func (c *Course) UpdateToPass(subs []*types.Submission) error {
	for _, s := range subs {
		fmt.Printf("%d %s\n", s.UserID, passLabel)
		if err := c.postGrade(s, "complete"); err != nil {
			return err
		}
	}
	return nil
}

// UpdateToFail marks every submission incomplete.
func (c *Course) UpdateToFail(subs []*types.Submission) error {
	for _, s := range subs {
		fmt.Printf("%d %s\n", s.UserID, failLabel)
		if err := c.postGrade(s, "incomplete"); err != nil {
			return err
		}
	}
	return nil
}

// SetScore posts a numeric score per submission. A submission whose
// user is missing from scores is an error.
func (c *Course) SetScore(subs []*types.Submission, scores map[int64]float64) error {
	for _, s := range subs {
		score, ok := scores[s.UserID]
		if !ok {
			return errors.Errorf("no score for user %d", s.UserID)
		}
		fmt.Printf("%d %d\n", s.UserID, int(score))
		if err := c.postGrade(s, strconv.Itoa(int(score))); err != nil {
			return err
		}
	}
	return nil
}

// SetGrade posts an arbitrary grade value per submission. A submission
// whose user is missing from grades is skipped with a notice.
func (c *Course) SetGrade(subs []*types.Submission, grades map[int64]string) error {
	for _, s := range subs {
		grade, ok := grades[s.UserID]
		if !ok {
			fmt.Printf("%d not in grades\n", s.UserID)
			continue
		}
		fmt.Printf("%d %s\n", s.UserID, grade)
		if err := c.postGrade(s, grade); err != nil {
			return err
		}
	}
	return nil
}

// AddComment attaches the same text comment to every submission.
func (c *Course) AddComment(subs []*types.Submission, text string) error {
	params := make(url.Values)
	params.Add("comment[text_comment]", text)
	for _, s := range subs {
		if err := c.client.EditSubmission(c.course.ID, s.AssignmentID, s.UserID, params); err != nil {
			return err
		}
	}
	return nil
}

func (c *Course) postGrade(s *types.Submission, grade string) error {
	params := make(url.Values)
	params.Add("submission[posted_grade]", grade)
	return c.client.EditSubmission(c.course.ID, s.AssignmentID, s.UserID, params)
}

// Package nbgrader shells out to the nbgrader command-line tool for
// roster import, autograding, grade export, and feedback collection.
package nbgrader

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/blang/semver"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gradetools/canvasnb/types"
)

const (
	okGlyph = "\033[32m✓\033[00m"
	xxGlyph = "\033[31m✗\033[00m"
)

// MinVersion is the oldest nbgrader release the fixed argument
// sequences below are known to work with.
const MinVersion = "0.6.1"

var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// runCommand invokes the external tool and returns its combined
// output. Package-level so tests can substitute it.
var runCommand = func(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}

// Result is the structured outcome of autograding one submission.
type Result struct {
	Success bool
	Error   string
	Log     string
}

// Failure pairs a failed result with its submission.
type Failure struct {
	Result     Result
	Submission *types.Submission
}

// Tool drives the nbgrader command-line program.
type Tool struct{}

func New() *Tool {
	return &Tool{}
}

// CheckVersion runs nbgrader --version and fails if the installed
// release is older than MinVersion.
func (t *Tool) CheckVersion() error {
	out, err := runCommand("nbgrader", "--version")
	if err != nil {
		return errors.Wrapf(err, "nbgrader --version: %s", out)
	}
	m := versionPattern.FindStringSubmatch(string(out))
	if m == nil {
		return errors.Errorf("no version number in nbgrader output %q", out)
	}
	installed, err := semver.Parse(m[1])
	if err != nil {
		return errors.Wrapf(err, "parsing nbgrader version %q", m[1])
	}
	if semver.MustParse(MinVersion).GT(installed) {
		return errors.Errorf("nbgrader %s is installed, but %s or higher is required", installed, MinVersion)
	}
	return nil
}

// ImportStudents loads students.csv into the nbgrader database.
func (t *Tool) ImportStudents() error {
	out, err := runCommand("nbgrader", "db", "student", "import", "students.csv")
	if err != nil {
		return errors.Wrapf(err, "nbgrader db student import: %s", out)
	}
	return nil
}

// InitDownloadsArea creates the download directory tree for a lab.
func (t *Tool) InitDownloadsArea(lab string) error {
	path := filepath.Join("downloaded", lab, "archive")
	return errors.Wrapf(os.MkdirAll(path, 0755), "creating %s", path)
}

// Autograde grades each submission in turn, printing a per-student
// pass/fail glyph. Failures are collected and returned, never raised;
// the error and log text of each failure is dumped as it happens.
func (t *Tool) Autograde(name string, subs []*types.Submission) []*Failure {
	var failed []*Failure
	for _, s := range subs {
		r := t.gradeOne(name, s)
		if r.Success {
			fmt.Printf("%d %s %s\n", s.UserID, s.Grade.String, okGlyph)
			continue
		}
		fmt.Printf("%d %s %s\n", s.UserID, s.Grade.String, xxGlyph)
		fmt.Printf("---ERROR---\n%s\n\n", r.Error)
		fmt.Printf("---LOG---\n%s\n\n", r.Log)
		failed = append(failed, &Failure{Result: r, Submission: s})
	}
	return failed
}

func (t *Tool) gradeOne(name string, s *types.Submission) Result {
	logrus.Debugf("autograding %s for user %d", name, s.UserID)
	out, err := runCommand("nbgrader", "autograde", name, "--force",
		fmt.Sprintf("--student=%d", s.UserID))
	if err != nil {
		return Result{Success: false, Error: err.Error(), Log: string(out)}
	}
	return Result{Success: true, Log: string(out)}
}

// Export writes the grade database out as grades.csv.
func (t *Tool) Export() error {
	out, err := runCommand("nbgrader", "export")
	if err != nil {
		return errors.Wrapf(err, "nbgrader export: %s", out)
	}
	return nil
}

// ZipCollect extracts an archive of downloaded submissions into the
// nbgrader exchange layout.
func (t *Tool) ZipCollect(name string) error {
	out, err := runCommand("nbgrader", "zip_collect", name, "--force")
	if err != nil {
		return errors.Wrapf(err, "nbgrader zip_collect: %s", out)
	}
	return nil
}

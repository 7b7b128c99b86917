package nbgrader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ReadGrades loads an nbgrader grade export and returns a mapping from
// student ID to score. When assignment is non-empty only that
// assignment's rows are kept. Columns are located by header name, so
// extra columns in the export are fine.
func ReadGrades(csvFile, assignment string) (map[int64]float64, error) {
	f, err := os.Open(csvFile)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", csvFile)
	}
	defer f.Close()
	return readGrades(f, assignment)
}

func readGrades(r io.Reader, assignment string) (map[int64]float64, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading grades header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range []string{"assignment", "student_id", "score"} {
		if _, ok := cols[name]; !ok {
			return nil, errors.Errorf("grades file has no %q column", name)
		}
	}

	grades := make(map[int64]float64)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading grades row")
		}
		if assignment != "" && record[cols["assignment"]] != assignment {
			continue
		}
		id, err := strconv.ParseInt(record[cols["student_id"]], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad student_id %q", record[cols["student_id"]])
		}
		score, err := strconv.ParseFloat(record[cols["score"]], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad score %q for student %d", record[cols["score"]], id)
		}
		grades[id] = score
	}
	return grades, nil
}

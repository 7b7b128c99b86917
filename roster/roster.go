// Package roster shapes a course's enrolled students into the tabular
// form nbgrader imports, and exports it as CSV or XLSX.
package roster

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/gradetools/canvasnb/types"
)

var header = []string{"id", "last_name", "first_name", "email"}

// Row is one roster line in nbgrader's student import format.
type Row struct {
	ID        int64
	LastName  string
	FirstName string
	Email     string
}

// FromStudents shapes students into roster rows, ordered by ID so the
// export is deterministic.
func FromStudents(students []*types.Student) []Row {
	rows := make([]Row, 0, len(students))
	for _, s := range students {
		last, first := s.LastFirst()
		rows = append(rows, Row{
			ID:        s.ID,
			LastName:  last,
			FirstName: first,
			Email:     s.Email.String,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// WriteCSV writes the roster with the fixed nbgrader column set.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "writing roster header")
	}
	for _, r := range rows {
		record := []string{strconv.FormatInt(r.ID, 10), r.LastName, r.FirstName, r.Email}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "writing roster row for %d", r.ID)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing roster")
}

// ExportCSV writes the roster to a CSV file.
func ExportCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	return WriteCSV(f, rows)
}

// ExportXLSX writes the roster to a spreadsheet with a single
// "students" sheet, header row first.
func ExportXLSX(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return errors.Wrap(err, "creating students sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "removing default sheet")
	}

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return errors.Wrap(err, "writing header row")
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.ID, r.LastName, r.FirstName, r.Email}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row for %d", r.ID)
		}
	}
	return errors.Wrapf(f.SaveAs(path), "saving %s", path)
}

package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrInputNotFound  = errors.New("input workbook not found or unreadable")
	ErrNoSheets       = errors.New("workbook has no sheets")
	ErrColumnNotFound = errors.New("column not found")
)

var columnLetters = regexp.MustCompile(`^[A-Za-z]{1,3}$`)

// Sheet is the active worksheet of an inspection workbook, as display strings.
// Numeric and date cells come through in their formatted form.
type Sheet struct {
	Name string
	Rows [][]string
}

// Columns names the inspection columns, by letter ("C") or header text ("Status").
type Columns struct {
	Status string
	Reason string
	Cover  string
}

// DefaultColumns is the layout of the inspection sheets: status in C,
// reason and cover-mismatch marker in D.
var DefaultColumns = Columns{Status: "C", Reason: "D", Cover: "D"}

// Cells are the extracted data cells below the header rows.
type Cells struct {
	Status []string
	Reason []string
	Cover  []string
}

// Open loads the active sheet of the workbook at path.
func Open(path string) (*Sheet, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, path, err)
	}
	defer func() { _ = f.Close() }()
	return activeSheet(f)
}

// Read loads the active sheet of a workbook from r.
func Read(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}
	defer func() { _ = f.Close() }()
	return activeSheet(f)
}

func activeSheet(f *excelize.File) (*Sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		name = sheets[0]
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return &Sheet{Name: name, Rows: rows}, nil
}

// ColumnIndex resolves ref to a zero-based column index. A header cell in
// the first row matching ref (case-insensitive) wins over a column letter.
func (s *Sheet) ColumnIndex(ref string, headerRows int) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%w: empty column reference", ErrColumnNotFound)
	}
	if headerRows > 0 && len(s.Rows) > 0 {
		for i, h := range s.Rows[0] {
			if strings.EqualFold(strings.TrimSpace(h), ref) {
				return i, nil
			}
		}
	}
	if columnLetters.MatchString(ref) {
		n, err := excelize.ColumnNameToNumber(strings.ToUpper(ref))
		if err != nil {
			return -1, fmt.Errorf("%w: %q: %v", ErrColumnNotFound, ref, err)
		}
		return n - 1, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, ref)
}

// Column returns the cells of column ref below the header rows. Rows
// shorter than the column yield "".
func (s *Sheet) Column(ref string, headerRows int) ([]string, error) {
	idx, err := s.ColumnIndex(ref, headerRows)
	if err != nil {
		return nil, err
	}
	if headerRows < 0 {
		headerRows = 0
	}
	var out []string
	for i, r := range s.Rows {
		if i < headerRows {
			continue
		}
		v := ""
		if idx < len(r) {
			v = r[idx]
		}
		out = append(out, v)
	}
	return out, nil
}

// Extract pulls the status, reason and cover columns. An empty Cover
// reference yields no cover cells.
func (s *Sheet) Extract(cols Columns, headerRows int) (Cells, error) {
	var (
		c   Cells
		err error
	)
	if c.Status, err = s.Column(cols.Status, headerRows); err != nil {
		return Cells{}, fmt.Errorf("status column: %w", err)
	}
	if c.Reason, err = s.Column(cols.Reason, headerRows); err != nil {
		return Cells{}, fmt.Errorf("reason column: %w", err)
	}
	if strings.TrimSpace(cols.Cover) != "" {
		if c.Cover, err = s.Column(cols.Cover, headerRows); err != nil {
			return Cells{}, fmt.Errorf("cover column: %w", err)
		}
	}
	return c, nil
}

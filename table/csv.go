package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMissingColumn is returned when a required column header is absent.
	ErrMissingColumn = errors.New("table: missing column")
	// ErrBadValue is returned for cells that are neither numbers nor missing values.
	ErrBadValue = errors.New("table: bad value")
)

// sheet is a parsed CSV file with a header row.
type sheet struct {
	name   string
	header map[string]int
	rows   [][]string
}

func readSheet(fsys fs.FS, name string) (*sheet, error) {
	fp, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	sh := &sheet{name: name, header: make(map[string]int)}
	if len(records) == 0 {
		return sh, nil
	}
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		sh.header[strings.TrimSpace(h)] = i
	}
	for _, rec := range records[1:] {
		if !blank(rec) {
			sh.rows = append(sh.rows, rec)
		}
	}
	return sh, nil
}

// column returns the values of the named column. Missing cells and cells
// of short rows are NaN.
func (sh *sheet) column(name string) ([]float64, error) {
	idx, ok := sh.header[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", sh.name, ErrMissingColumn, name)
	}
	col := make([]float64, len(sh.rows))
	for i, rec := range sh.rows {
		if idx >= len(rec) {
			col[i] = math.NaN()
			continue
		}
		v, err := parseCell(rec[idx])
		if err != nil {
			// Row numbers count the header as row 1.
			return nil, fmt.Errorf("%s: row %d column %q: %w", sh.name, i+2, name, err)
		}
		col[i] = v
	}
	return col, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN(), fmt.Errorf("%w %q", ErrBadValue, s)
	}
	return v, nil
}

func blank(rec []string) bool {
	for _, s := range rec {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// Package tabular reads the semicolon-delimited CSV inputs shared by the
// loaders: one header line, empty lines tolerated, fields consumed left
// to right. Parse failures name the file, line and column so the user can
// fix the sheet.
package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"drainroute/pkg/fault"
)

// Row is one data line of an input file. Fields are consumed in order by
// the Take methods; reading past the last field yields the empty string,
// which lets loaders treat trailing columns as optional.
type Row struct {
	file   string
	line   int
	fields []string
	next   int
}

// Line returns the 1-based line number of the row in its file.
func (r *Row) Line() int {
	return r.line
}

// TakeString consumes the next field, trimmed of surrounding space.
func (r *Row) TakeString() string {
	if r.next >= len(r.fields) {
		return ""
	}
	s := strings.TrimSpace(r.fields[r.next])
	r.next++
	return s
}

// TakeUint consumes the next field as an unsigned integer.
func (r *Row) TakeUint(column string) (uint, error) {
	s := r.TakeString()
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, r.Failf(column, "expected a non-negative integer, got %q", s)
	}
	return uint(v), nil
}

// TakeOptionalUint consumes the next field as an unsigned integer, mapping
// an empty field to zero.
func (r *Row) TakeOptionalUint(column string) (uint, error) {
	s := r.TakeString()
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, r.Failf(column, "expected a non-negative integer, got %q", s)
	}
	return uint(v), nil
}

// TakeFloat consumes the next field as a floating-point number.
func (r *Row) TakeFloat(column string) (float64, error) {
	s := r.TakeString()
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.Failf(column, "expected a number, got %q", s)
	}
	return v, nil
}

// TakeOptionalFloat consumes the next field as a floating-point number,
// mapping an empty field to zero.
func (r *Row) TakeOptionalFloat(column string) (float64, error) {
	s := r.TakeString()
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.Failf(column, "expected a number, got %q", s)
	}
	return v, nil
}

// Failf builds a parse error pointing at the given column of this row.
func (r *Row) Failf(column, format string, args ...any) error {
	detail := fault.Parsef(format, args...)
	return fault.Parsef("%s line %d, column %q: %s", r.file, r.line, column, detail.Msg)
}

// ForEach reads the file and calls fn for every data row in order. The
// first line is the header and is skipped; fully empty lines are skipped.
// A non-nil error from fn stops the scan and is returned as is.
func ForEach(path string, fn func(*Row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fault.Parsef("cannot open %s: %v", path, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.Comma = ';'
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	header := true
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fault.Parsef("cannot read %s: %v", path, err)
		}
		line, _ := rd.FieldPos(0)
		if header {
			header = false
			continue
		}
		if blank(rec) {
			continue
		}
		row := &Row{file: path, line: line, fields: rec}
		if err := fn(row); err != nil {
			return err
		}
	}
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

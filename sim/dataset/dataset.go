// Package dataset loads desired course sections from a CSV file into
// validated sim.Section values.
//
// Each row is handled on its own: rows with missing or unparseable fields
// are skipped and reported as diagnostics, unknown day characters are
// dropped with a warning, and only a dataset-level failure (missing file,
// unreadable CSV, nothing left to simulate) is returned as an error.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/enlist-sim/enlist-sim/sim"
)

// Column headers expected in the CSV file.
const (
	ColSubject        = "Subject"
	ColClassName      = "Class Name"
	ColAvailableSlots = "Available Slots"
	ColDemand         = "Demand"
	ColRank           = "Rank"
	ColDays           = "Days"
	ColStartTime      = "Start Time"
	ColEndTime        = "End Time"
)

// SectionRecord is one raw CSV row. All fields are kept as strings so that a
// bad value only costs its own row.
type SectionRecord struct {
	Subject        string `csv:"Subject" validate:"required"`
	ClassName      string `csv:"Class Name" validate:"required"`
	AvailableSlots string `csv:"Available Slots" validate:"required"`
	Demand         string `csv:"Demand" validate:"required"`
	Rank           string `csv:"Rank" validate:"required"`
	Days           string `csv:"Days" validate:"required"`
	StartTime      string `csv:"Start Time" validate:"required"`
	EndTime        string `csv:"End Time" validate:"required"`
}

// Diagnostic is a per-row problem found while loading.
type Diagnostic struct {
	Line      int    // 1-based line in the file; the header is line 1
	ClassName string // may be empty if the column itself is missing
	Skipped   bool   // true if the row was dropped, false for warnings
	Err       error
}

func (d Diagnostic) String() string {
	verdict := "warning"
	if d.Skipped {
		verdict = "skipped"
	}
	return fmt.Sprintf("line %d (%s): %s: %v", d.Line, d.ClassName, verdict, d.Err)
}

// Dataset is the outcome of a load: rank-sorted sections plus diagnostics.
type Dataset struct {
	Sections    []sim.Section
	Diagnostics []Diagnostic
	Rows        int // data rows read, including skipped ones
}

// Skipped counts rows that were dropped.
func (d *Dataset) Skipped() int {
	n := 0
	for _, diag := range d.Diagnostics {
		if diag.Skipped {
			n++
		}
	}
	return n
}

var (
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
	errNegative = errors.New("must not be negative")
	validate    = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report CSV column names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("csv")
	})
	return v
}

// LoadFile opens path and reads sections from it.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrDataSourceRead, err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return ds, fmt.Errorf("loading %s: %w", path, err)
	}
	return ds, nil
}

// Read decodes CSV section rows from r.
// The returned sections are stable-sorted by rank. When every row is skipped
// the Dataset is still returned, with its diagnostics, alongside ErrEmptyDataset.
func Read(r io.Reader) (*Dataset, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []*SectionRecord
	if err := gocsv.UnmarshalCSV(cr, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("%w: %v", ErrDataSourceRead, err)
	}

	ds := &Dataset{Rows: len(records)}
	for i, rec := range records {
		line := i + 2
		section, diags := convert(rec, line)
		for _, d := range diags {
			logDiagnostic(d)
		}
		ds.Diagnostics = append(ds.Diagnostics, diags...)
		if section != nil {
			ds.Sections = append(ds.Sections, *section)
		}
	}

	if len(ds.Sections) == 0 {
		return ds, ErrEmptyDataset
	}
	sim.SortByRank(ds.Sections)
	logrus.Debugf("loaded %d sections from %d rows (%d skipped)", len(ds.Sections), ds.Rows, ds.Skipped())
	return ds, nil
}

// convert validates and types one record. A nil section means the row is skipped.
func convert(rec *SectionRecord, line int) (*sim.Section, []Diagnostic) {
	skip := func(err error) (*sim.Section, []Diagnostic) {
		return nil, []Diagnostic{{Line: line, ClassName: rec.ClassName, Skipped: true, Err: err}}
	}

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return skip(err)
		}
		missing := &MissingFieldError{}
		for _, fe := range verrs {
			missing.Fields = append(missing.Fields, fe.Field())
		}
		return skip(missing)
	}

	slots, err := parseCount(ColAvailableSlots, rec.AvailableSlots)
	if err != nil {
		return skip(err)
	}
	demand, err := parseCount(ColDemand, rec.Demand)
	if err != nil {
		return skip(err)
	}
	rank, err := parseInt(ColRank, rec.Rank)
	if err != nil {
		return skip(err)
	}
	start, err := parseClock(ColStartTime, rec.StartTime)
	if err != nil {
		return skip(err)
	}
	end, err := parseClock(ColEndTime, rec.EndTime)
	if err != nil {
		return skip(err)
	}

	var diags []Diagnostic
	days, unknown := sim.ParseDays(rec.Days)
	for _, r := range unknown {
		diags = append(diags, Diagnostic{Line: line, ClassName: rec.ClassName, Err: &UnknownDaySymbolError{Symbol: r}})
	}

	s := sim.NewSection(strings.TrimSpace(rec.Subject), rec.ClassName, slots, demand, rank, days, start, end)
	return &s, diags
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &sim.ParseError{Field: field, Value: value, Err: err}
	}
	return n, nil
}

func parseCount(field, value string) (int, error) {
	n, err := parseInt(field, value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &sim.ParseError{Field: field, Value: value, Err: errNegative}
	}
	return n, nil
}

func parseClock(field, value string) (sim.ClockTime, error) {
	c, err := sim.ParseClockTime(strings.TrimSpace(value))
	if err != nil {
		var pe *sim.ParseError
		if errors.As(err, &pe) {
			return 0, &sim.ParseError{Field: field, Value: value, Err: pe.Err}
		}
		return 0, err
	}
	return c, nil
}

func logDiagnostic(d Diagnostic) {
	entry := logrus.WithFields(logrus.Fields{"line": d.Line, "class": d.ClassName})
	if d.Skipped {
		entry.Warnf("skipping row: %v", d.Err)
		return
	}
	entry.Warn(d.Err.Error())
}

package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMissingField = errors.New("record needs a year and a value field")
	ErrNonFinite    = errors.New("value is not a finite number")
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	HasHeader bool // Whether the first row is a header and skipped (default: true)
	Delimiter rune // Field delimiter (default: ',')
	SkipRows  int  // Number of rows to skip before the header
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		HasHeader: true,
		Delimiter: ',',
	}
}

// SkippedRecord is a data row that could not be converted into a sample.
type SkippedRecord struct {
	Line   int    `json:"line"`
	Record string `json:"record"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// LoadCSV loads year, value samples from a CSV file. A file that cannot be opened is
// returned as an error wrapping the underlying os error.
func LoadCSV(filename string, opts *CSVOptions) (*Dataset, []SkippedRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open input source, %w", err)
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// maxLineBytes bounds a single input line
const maxLineBytes = 1 << 20

// LoadCSVFromReader loads year, value samples from an io.Reader. The first field of each row
// is the year and the second the value; extra fields are ignored. Each physical line is parsed
// on its own so an unbalanced quote only affects the line it appears on. Rows that fail to
// parse are skipped, logged, and returned as SkippedRecords. ErrNoTrainingData is returned if
// no row survives.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Dataset, []SkippedRecord, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}

	toSkip := opts.SkipRows
	if opts.HasHeader {
		toSkip++
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var x, y []float64
	var skipped []SkippedRecord
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		if toSkip > 0 {
			toSkip--
			continue
		}

		record, err := readLine(text, delim)
		if errors.Is(err, io.EOF) {
			continue
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, nil, fmt.Errorf("unable to read input source, %w", err)
			}
			skipped = append(skipped, skip(lineNum, text, perr.Err))
			continue
		}

		year, val, err := parseRecord(record)
		if err != nil {
			skipped = append(skipped, skip(lineNum, text, err))
			continue
		}
		x = append(x, year)
		y = append(y, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("unable to read input source, %w", err)
	}

	ds, err := NewUnivariateDataset(x, y)
	if err != nil {
		return nil, skipped, err
	}
	return ds, skipped, nil
}

// readLine splits a single line into fields
func readLine(text string, delim rune) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.Read()
}

func skip(line int, text string, err error) SkippedRecord {
	s := SkippedRecord{
		Line:   line,
		Record: text,
		Reason: err.Error(),
		Err:    err,
	}
	slog.Warn("skipping malformed record", "line", s.Line, "record", s.Record, "error", s.Reason)
	return s
}

func parseRecord(record []string) (float64, float64, error) {
	if len(record) < 2 {
		return 0, 0, ErrMissingField
	}
	year, err := parseField(record[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year, %w", err)
	}
	val, err := parseField(record[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value, %w", err)
	}
	return year, val, nil
}

func parseField(field string) (float64, error) {
	field = strings.TrimSpace(strings.Trim(field, "\""))
	if field == "" {
		return 0, ErrMissingField
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

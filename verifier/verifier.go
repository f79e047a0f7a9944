// Package verifier checks matrix files against the shape encoded in their names.
package verifier

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"matgen/generator"
)

// ErrBadFileName is returned when a file name is not of the form M_<rows>_<cols> or N_<rows>_<cols>.
var ErrBadFileName = errors.New("verifier: not a matrix file name")

// Rule IDs reported in violations.
const (
	RuleFormat = "format"
	RuleRange  = "range"
	RuleBounds = "bounds"
	RuleOrder  = "order"
	RuleCount  = "count"
)

// Violation is one problem found in a matrix file. Line is 1-based, 0 for whole-file problems.
type Violation struct {
	Line    int
	Rule    string
	Message string
}

func (v Violation) String() string {
	if v.Line == 0 {
		return v.Rule + ": " + v.Message
	}
	return fmt.Sprintf("line %d: %s: %s", v.Line, v.Rule, v.Message)
}

// ParseFileName extracts the label and shape from a matrix file's base name.
func ParseFileName(name string) (label string, rows, cols int, err error) {
	parts := strings.Split(filepath.Base(name), "_")
	if len(parts) != 3 || (parts[0] != generator.LabelM && parts[0] != generator.LabelN) {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrBadFileName, name)
	}
	rows, err = strconv.Atoi(parts[1])
	if err != nil || rows < 0 {
		return "", 0, 0, fmt.Errorf("%w: %q has bad row count", ErrBadFileName, name)
	}
	cols, err = strconv.Atoi(parts[2])
	if err != nil || cols < 0 {
		return "", 0, 0, fmt.Errorf("%w: %q has bad column count", ErrBadFileName, name)
	}
	return parts[0], rows, cols, nil
}

// Check reads cell records from r and reports every deviation from a
// rows x cols matrix in row-major order. The error is only set for read failures.
func Check(r io.Reader, rows, cols int) ([]Violation, error) {
	var violations []Violation
	add := func(line int, rule, format string, args ...any) {
		violations = append(violations, Violation{Line: line, Rule: rule, Message: fmt.Sprintf(format, args...)})
	}

	want := rows * cols
	// expected coordinate of the next record
	nextRow, nextCol := 1, 1
	n := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		n++
		wantRow, wantCol := nextRow, nextCol
		nextCol++
		if nextCol > cols {
			nextCol = 1
			nextRow++
		}

		row, col, val, ok := parseRecord(scanner.Text())
		if !ok {
			add(n, RuleFormat, "expected <row>,<col>\\t<value>, got %q", scanner.Text())
			continue
		}
		if val < 0 || val >= generator.MaxValue {
			add(n, RuleRange, "value %d not in [0,%d]", val, generator.MaxValue-1)
		}
		if row < 1 || row > rows || col < 1 || col > cols {
			add(n, RuleBounds, "cell %d,%d outside %dx%d", row, col, rows, cols)
		}
		// lines past the expected count are reported once, as a count violation
		if n <= want && (row != wantRow || col != wantCol) {
			add(n, RuleOrder, "expected cell %d,%d, got %d,%d", wantRow, wantCol, row, col)
		}
	}
	if err := scanner.Err(); err != nil {
		return violations, err
	}
	if n != want {
		add(0, RuleCount, "expected %d lines, got %d", want, n)
	}
	return violations, nil
}

// CheckFile verifies the file at path using the shape from its name.
func CheckFile(path string) ([]Violation, error) {
	_, rows, cols, err := ParseFileName(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Check(file, rows, cols)
}

// parseRecord splits "<row>,<col>\t<value>" strictly, no spaces allowed.
func parseRecord(s string) (row, col, val int, ok bool) {
	coords, value, found := strings.Cut(s, "\t")
	if !found {
		return 0, 0, 0, false
	}
	r, c, found := strings.Cut(coords, ",")
	if !found {
		return 0, 0, 0, false
	}
	var err error
	if row, err = strconv.Atoi(r); err != nil {
		return 0, 0, 0, false
	}
	if col, err = strconv.Atoi(c); err != nil {
		return 0, 0, 0, false
	}
	if val, err = strconv.Atoi(value); err != nil {
		return 0, 0, 0, false
	}
	return row, col, val, true
}

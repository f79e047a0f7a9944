// Package generator writes pairs of random integer matrices, M and N, shaped
// so that M x N is defined. Each matrix goes to its own file, one cell per line:
//
//	<row>,<col>\t<value>
//
// Rows and columns are 1-based and cells are written in row-major order.
package generator

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// MaxValue is the exclusive upper bound of a cell value.
const MaxValue = 100

const (
	LabelM = "M"
	LabelN = "N"
)

// Generator fills matrices from a single random source.
// The source is seeded once and never re-seeded, so M and N draw from one stream.
type Generator struct {
	rng  *rand.Rand
	seed int64
}

// NewSeed returns a wall-clock seed with nanosecond resolution.
func NewSeed() int64 {
	return time.Now().UnixNano()
}

// New creates a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// FileName builds the name of a matrix file, e.g. M_2_3.
func FileName(label string, rows, cols int) string {
	return label + "_" + strconv.Itoa(rows) + "_" + strconv.Itoa(cols)
}

// WriteMatrix writes rows*cols cell records to w.
func (g *Generator) WriteMatrix(w io.Writer, rows, cols int) error {
	// reused across lines, a record is at most a few dozen bytes
	line := make([]byte, 0, 48)
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			line = strconv.AppendInt(line[:0], int64(i), 10)
			line = append(line, ',')
			line = strconv.AppendInt(line, int64(j), 10)
			line = append(line, '\t')
			line = strconv.AppendInt(line, int64(g.rng.Intn(MaxValue)), 10)
			line = append(line, '\n')
			if _, err := w.Write(line); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateFile creates (or truncates) dir/<label>_<rows>_<cols> and fills it.
// The file is closed on every path. A failed write leaves the partial file behind.
func (g *Generator) GenerateFile(dir, label string, rows, cols int) (path string, err error) {
	path = filepath.Join(dir, FileName(label, rows, cols))
	// os.Create will truncate a file if it already exists
	file, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("creating matrix %s file %s: %w", label, path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing matrix %s file %s: %w", label, path, cerr)
		}
	}()

	bw := bufio.NewWriter(file)
	if err = g.WriteMatrix(bw, rows, cols); err != nil {
		return path, fmt.Errorf("writing matrix %s file %s: %w", label, path, err)
	}
	if err = bw.Flush(); err != nil {
		return path, fmt.Errorf("writing matrix %s file %s: %w", label, path, err)
	}
	return path, nil
}

// Run generates M (RowsM x Inner) and then N (Inner x ColsN) into dir,
// printing a progress line to progress right before each matrix.
func (g *Generator) Run(dir string, d Dims, progress io.Writer) error {
	steps := []struct {
		label      string
		rows, cols int
	}{
		{LabelM, d.RowsM, d.Inner},
		{LabelN, d.Inner, d.ColsN},
	}
	for _, s := range steps {
		fmt.Fprintf(progress, "matrix %s %d,%d\n", s.label, s.rows, s.cols)
		if _, err := g.GenerateFile(dir, s.label, s.rows, s.cols); err != nil {
			return err
		}
	}
	return nil
}

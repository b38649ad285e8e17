package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names of the smFISH copy-number data files.
const (
	ProbabilityColumn = "Probability"
	ErrorColumn       = "Error in probability"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("dataio: missing column")

// Distribution is a measured copy-number distribution: Prob[i] is the
// probability of finding i copies, Err[i] its uncertainty (nil if not provided).
type Distribution struct {
	Prob []float64
	Err  []float64
}

// Counts returns the copy numbers 0..len(Prob)-1.
func (d Distribution) Counts() []float64 {
	c := make([]float64, len(d.Prob))
	for i := range c {
		c[i] = float64(i)
	}
	return c
}

// ReadDistribution reads a comma separated distribution. The columns are
// found by header name; any other column is ignored.
func ReadDistribution(r io.Reader) (Distribution, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return Distribution{}, fmt.Errorf("dataio: reading header: %w", err)
	}
	probIdx, errIdx := -1, -1
	for i, name := range hdr {
		switch strings.TrimSpace(name) {
		case ProbabilityColumn:
			probIdx = i
		case ErrorColumn:
			errIdx = i
		}
	}
	if probIdx < 0 {
		return Distribution{}, fmt.Errorf("%w `%s`", ErrMissingColumn, ProbabilityColumn)
	}
	var d Distribution
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return Distribution{}, fmt.Errorf("dataio: line %d: %w", line, err)
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(record[probIdx]), 64)
		if err != nil {
			return Distribution{}, fmt.Errorf("dataio: line %d: %w", line, err)
		}
		d.Prob = append(d.Prob, p)
		if errIdx >= 0 {
			e, err := strconv.ParseFloat(strings.TrimSpace(record[errIdx]), 64)
			if err != nil {
				return Distribution{}, fmt.Errorf("dataio: line %d: %w", line, err)
			}
			d.Err = append(d.Err, e)
		}
	}
	return d, nil
}

// LoadDistribution reads the distribution stored in the given file.
func LoadDistribution(filename string) (Distribution, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Distribution{}, err
	}
	defer f.Close()
	d, err := ReadDistribution(f)
	if err != nil {
		return Distribution{}, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}
